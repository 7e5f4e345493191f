package api

import (
	"net/http"
	"strconv"

	"github.com/isaacjstriker/blockdrop/internal/database"
)

const (
	defaultGameType = "blocks"

	defaultLeaderboardLimit = 15
	maxLeaderboardLimit     = 100
)

// LeaderboardResponse wraps the ranked entries with the table they came
// from, so clients do not have to echo the request back to label it.
type LeaderboardResponse struct {
	GameType string                      `json:"game_type"`
	Count    int                         `json:"count"`
	Entries  []database.LeaderboardEntry `json:"entries"`
}

// leaderboardParams resolves the game type and limit shared by the
// leaderboard and recent-games endpoints. An empty game type falls back
// to the block game; an unknown one is rejected.
func leaderboardParams(r *http.Request) (string, int, bool) {
	gameType := r.PathValue("gameType")
	if gameType == "" {
		gameType = defaultGameType
	}
	if !knownGameTypes[gameType] {
		return "", 0, false
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	return gameType, limit, true
}

// handleGetLeaderboard returns the ranked best scores for a game.
func (s *APIServer) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	gameType, limit, ok := leaderboardParams(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown game type")
		return
	}

	entries, err := s.db.GetLeaderboard(gameType, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch leaderboard")
		return
	}

	writeJSON(w, http.StatusOK, LeaderboardResponse{
		GameType: gameType,
		Count:    len(entries),
		Entries:  entries,
	})
}
