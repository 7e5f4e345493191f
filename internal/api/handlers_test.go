package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacjstriker/blockdrop/internal/auth"
	"github.com/isaacjstriker/blockdrop/internal/config"
	"github.com/isaacjstriker/blockdrop/internal/database"
)

func handlerTestServer(t *testing.T) *APIServer {
	t.Helper()
	db, err := database.Connect(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.CreateTables())
	return NewAPIServer(":0", db, &config.Config{JWTSecret: "handler-secret", AppName: "Blockdrop"})
}

// newPlayer registers a user directly in the database and returns the
// user plus a token the handlers will accept.
func newPlayer(t *testing.T, s *APIServer, username string) (*database.User, string) {
	t.Helper()
	hash, err := auth.HashPassword("drop1234")
	require.NoError(t, err)
	user, err := s.db.CreateUser(username, username+"@example.com", hash)
	require.NoError(t, err)
	token, err := createJWT(user.ID, username, s.config.JWTSecret)
	require.NoError(t, err)
	return user, token
}

func postScore(s *APIServer, token string, submission ScoreSubmission) *httptest.ResponseRecorder {
	body, _ := json.Marshal(submission)
	req := httptest.NewRequest(http.MethodPost, "/api/scores", bytes.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	requireAuth(s, s.handleSubmitScore)(rr, req)
	return rr
}

func TestSubmitScoreRequiresAuth(t *testing.T) {
	s := handlerTestServer(t)
	rr := postScore(s, "", ScoreSubmission{GameType: "blocks", Score: 10})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSubmitScoreRejectsUnknownGameType(t *testing.T) {
	s := handlerTestServer(t)
	_, token := newPlayer(t, s, "rowan")

	rr := postScore(s, token, ScoreSubmission{GameType: "chess", Score: 10})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "unknown game_type")

	rr = postScore(s, token, ScoreSubmission{Score: 10})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSubmitScoreReturnsStanding(t *testing.T) {
	s := handlerTestServer(t)
	_, token := newPlayer(t, s, "rowan")

	rr := postScore(s, token, ScoreSubmission{GameType: "blocks", Score: 120})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = postScore(s, token, ScoreSubmission{GameType: "blocks", Score: 80})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp ScoreResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "rowan", resp.Username)
	assert.Equal(t, 120, resp.BestScore)
	assert.Equal(t, 2, resp.GamesPlayed)
}

func TestLeaderboardDefaultsToBlocks(t *testing.T) {
	s := handlerTestServer(t)
	user, _ := newPlayer(t, s, "rowan")
	require.NoError(t, s.db.SaveGameScore(user.ID, "blocks", 300, nil))

	// No gameType in the path falls back to the block game.
	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard/", nil)
	rr := httptest.NewRecorder()
	s.handleGetLeaderboard(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp LeaderboardResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "blocks", resp.GameType)
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "rowan", resp.Entries[0].Username)
	assert.Equal(t, 300, resp.Entries[0].BestScore)
}

func TestLeaderboardRejectsUnknownGame(t *testing.T) {
	s := handlerTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard/chess", nil)
	req.SetPathValue("gameType", "chess")
	rr := httptest.NewRecorder()
	s.handleGetLeaderboard(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestLeaderboardParamsClampLimit(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard/blocks?limit=500", nil)
	req.SetPathValue("gameType", "blocks")
	gameType, limit, ok := leaderboardParams(req)
	require.True(t, ok)
	assert.Equal(t, "blocks", gameType)
	assert.Equal(t, maxLeaderboardLimit, limit)

	req = httptest.NewRequest(http.MethodGet, "/api/leaderboard/blocks?limit=junk", nil)
	req.SetPathValue("gameType", "blocks")
	_, limit, ok = leaderboardParams(req)
	require.True(t, ok)
	assert.Equal(t, defaultLeaderboardLimit, limit)
}

func TestRecentGamesSurfaceModeMetadata(t *testing.T) {
	s := handlerTestServer(t)
	user, _ := newPlayer(t, s, "rowan")
	meta := map[string]interface{}{"mode": "Blockdrop Adventure", "lines_cleared": 12.0}
	require.NoError(t, s.db.SaveGameScore(user.ID, "blocks", 150, meta))

	req := httptest.NewRequest(http.MethodGet, "/api/recent/blocks", nil)
	req.SetPathValue("gameType", "blocks")
	rr := httptest.NewRecorder()
	s.handleGetRecentGames(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var scores []database.GameScore
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &scores))
	require.Len(t, scores, 1)
	assert.Equal(t, "Blockdrop Adventure", scores[0].AdditionalData["mode"])
	assert.Equal(t, 150, scores[0].Score)
}

func TestLoginReturnsPlayerSettings(t *testing.T) {
	s := handlerTestServer(t)
	user, _ := newPlayer(t, s, "rowan")
	require.NoError(t, s.db.SavePlayerSettings(&database.PlayerSettings{
		UserID:        user.ID,
		UnlockedSlots: 3,
		QueueMode:     "finite",
	}))

	body, _ := json.Marshal(LoginRequest{Username: "rowan", Password: "drop1234"})
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	s.handleLogin(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.Settings)
	assert.Equal(t, 3, resp.Settings.UnlockedSlots)
	assert.Equal(t, "finite", resp.Settings.QueueMode)

	body, _ = json.Marshal(LoginRequest{Username: "rowan", Password: "wrong000"})
	rr = httptest.NewRecorder()
	s.handleLogin(rr, httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body)))
	assert.Equal(t, http.StatusForbidden, rr.Code)
}
