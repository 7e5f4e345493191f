package auth

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"
)

// sessionTTL bounds how long a saved login survives on disk. The JWT
// the API hands out lasts a week; the local CLI session matches it so
// both surfaces expire together.
const sessionTTL = 7 * 24 * time.Hour

// Session is the logged-in identity the CLI remembers between runs.
type Session struct {
	UserID   int       `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	SavedAt  time.Time `json:"saved_at"`
}

// SessionManager persists the session in a dotfile next to the binary's
// working directory, so each checkout or install keeps its own login.
type SessionManager struct {
	sessionFile string
	current     *Session
}

// NewSessionManager creates a manager and eagerly loads any session
// left by a previous run.
func NewSessionManager() *SessionManager {
	sm := &SessionManager{sessionFile: ".blockdrop_session"}
	if err := sm.LoadSession(); err != nil {
		// Not fatal; the player just has to log in again.
		log.Printf("[DEBUG] No previous session found or failed to load: %v", err)
	}
	return sm
}

// SaveSession records a login and writes it to disk. The write goes
// through a temp file and rename so a crash mid-write cannot leave a
// half-written session behind.
func (sm *SessionManager) SaveSession(userID int, username, email string) error {
	sm.current = &Session{
		UserID:   userID,
		Username: username,
		Email:    email,
		SavedAt:  time.Now(),
	}

	data, err := json.Marshal(sm.current)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	tmp := sm.sessionFile + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	if err := os.Rename(tmp, sm.sessionFile); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// LoadSession reads the session file if one exists. Expired sessions
// are discarded and their file removed.
func (sm *SessionManager) LoadSession() error {
	data, err := os.ReadFile(sm.sessionFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No session file exists, which is fine
		}
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if !session.SavedAt.IsZero() && time.Since(session.SavedAt) > sessionTTL {
		os.Remove(sm.sessionFile)
		return fmt.Errorf("session expired, please log in again")
	}

	sm.current = &session
	return nil
}

// GetCurrentSession returns the current session data
func (sm *SessionManager) GetCurrentSession() *Session {
	return sm.current
}

// IsLoggedIn returns true if a user is currently logged in
func (sm *SessionManager) IsLoggedIn() bool {
	return sm.current != nil
}

// ClearSession clears the current session
func (sm *SessionManager) ClearSession() error {
	sm.current = nil

	if _, err := os.Stat(sm.sessionFile); err == nil {
		err = os.Remove(sm.sessionFile)
		if err != nil {
			return fmt.Errorf("failed to remove session file: %w", err)
		}
	}

	return nil
}

// GetUserInfo returns formatted user information
func (sm *SessionManager) GetUserInfo() string {
	if sm.current == nil {
		return "Not logged in"
	}
	return fmt.Sprintf("Logged in as: %s (%s)", sm.current.Username, sm.current.Email)
}
