package api

import (
	"encoding/json"
	"log"
	"net/http"
)

// knownGameTypes are the score tables the service maintains. Every mode
// of the block game records under "blocks", with the mode itself in the
// submission metadata.
var knownGameTypes = map[string]bool{
	"blocks": true,
}

type ScoreSubmission struct {
	GameType string                 `json:"game_type"`
	Score    int                    `json:"score"`
	Metadata map[string]interface{} `json:"metadata"`
}

// ScoreResponse echoes the player's standing after the submission so
// the client can show it without a second round trip.
type ScoreResponse struct {
	Success     bool   `json:"success"`
	BestScore   int    `json:"best_score"`
	GamesPlayed int    `json:"games_played"`
	Username    string `json:"username"`
}

// handleSubmitScore records a finished game for the authenticated user.
func (s *APIServer) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	userInfo, ok := GetUserFromContext(r.Context())
	if !ok {
		permissionDenied(w)
		return
	}

	var submission ScoreSubmission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !knownGameTypes[submission.GameType] {
		writeError(w, http.StatusBadRequest, "unknown game_type")
		return
	}
	if submission.Score < 0 {
		writeError(w, http.StatusBadRequest, "score must be non-negative")
		return
	}

	if err := s.db.SaveGameScore(userInfo.UserID, submission.GameType, submission.Score, submission.Metadata); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save score")
		return
	}

	resp := ScoreResponse{Success: true, Username: userInfo.Username}
	if stats, err := s.db.GetUserStats(userInfo.UserID, submission.GameType); err == nil {
		resp.BestScore = stats.BestScore
		resp.GamesPlayed = stats.GamesPlayed
	} else {
		log.Printf("[DEBUG] failed to load stats after score save: %v", err)
	}

	writeJSON(w, http.StatusOK, resp)
}
