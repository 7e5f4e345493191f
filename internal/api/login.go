package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/isaacjstriker/blockdrop/internal/auth"
	"github.com/isaacjstriker/blockdrop/internal/database"
)

// LoginRequest defines the shape of the login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the session token plus the player's persisted
// game settings, so the client can restore unlocked queue slots and the
// preferred queue mode without a second request.
type LoginResponse struct {
	Token    string                   `json:"token"`
	Username string                   `json:"username"`
	Settings *database.PlayerSettings `json:"settings,omitempty"`
}

// handleLogin handles user login and JWT generation
func (s *APIServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, passwordHash, err := s.db.GetUserByUsername(req.Username)
	if err != nil {
		permissionDenied(w)
		return
	}

	if !auth.CheckPassword(req.Password, passwordHash) {
		permissionDenied(w)
		return
	}

	if err := s.db.UpdateLastLogin(user.ID); err != nil {
		// Not fatal for login; the stamp is best-effort.
		log.Printf("[DEBUG] failed to update last login: %v", err)
	}

	token, err := createJWT(user.ID, user.Username, s.config.JWTSecret)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create token")
		return
	}

	resp := LoginResponse{
		Token:    token,
		Username: user.Username,
	}
	if settings, err := s.db.GetPlayerSettings(user.ID); err == nil {
		resp.Settings = settings
	} else {
		log.Printf("[DEBUG] failed to load settings at login: %v", err)
	}

	writeJSON(w, http.StatusOK, resp)
}

// createJWT generates a new JWT for a given user
func createJWT(userID int, username, secret string) (string, error) {
	claims := &jwt.MapClaims{
		"expiresAt": jwt.NewNumericDate(time.Now().Add(time.Hour * 24 * 7)), // 1 week
		"issuedAt":  jwt.NewNumericDate(time.Now()),
		"userID":    userID,
		"username":  username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(secret))
}
