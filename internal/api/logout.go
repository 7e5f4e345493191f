package api

import (
	"net/http"
)

// handleLogout acknowledges a logout. Tokens are stateless, so the
// client simply discards its copy; the endpoint exists so the frontend
// has a single auth surface to call.
func (s *APIServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// handleGetRecentGames returns the latest plays across all users,
// including each play's recorded metadata so clients can show which
// mode was played.
func (s *APIServer) handleGetRecentGames(w http.ResponseWriter, r *http.Request) {
	gameType, limit, ok := leaderboardParams(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown game type")
		return
	}

	scores, err := s.db.GetRecentGames(gameType, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch recent games")
		return
	}

	writeJSON(w, http.StatusOK, scores)
}
