package api

import (
	"encoding/json"
	"net/http"

	"github.com/isaacjstriker/blockdrop/internal/database"
)

// handleGetSettings returns the caller's persisted game settings.
func (s *APIServer) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r.Context())
	if !ok {
		permissionDenied(w)
		return
	}

	settings, err := s.db.GetPlayerSettings(user.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// handleSaveSettings persists the caller's game settings.
func (s *APIServer) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r.Context())
	if !ok {
		permissionDenied(w)
		return
	}

	var settings database.PlayerSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if settings.UnlockedSlots < 1 || settings.UnlockedSlots > 4 {
		writeError(w, http.StatusBadRequest, "unlocked_slots must be between 1 and 4")
		return
	}
	if settings.QueueMode != "infinite" && settings.QueueMode != "finite" {
		writeError(w, http.StatusBadRequest, "queue_mode must be infinite or finite")
		return
	}

	settings.UserID = user.UserID
	if err := s.db.SavePlayerSettings(&settings); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}

	writeJSON(w, http.StatusOK, settings)
}
