package database

import (
	"fmt"
)

// CreateTestData creates sample data for testing and development
func (db *DB) CreateTestData() error {
	// Only create test data if no users exist
	var userCount int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM users").Scan(&userCount)
	if err != nil {
		return fmt.Errorf("failed to check existing users: %w", err)
	}

	if userCount > 0 {
		return nil // Data already exists
	}

	fmt.Println("[INFO] Creating sample data for testing...")

	testUsers := []struct {
		username string
		email    string
		password string
	}{
		{"gridmaster", "gridmaster@example.com", "hashed_password_123"},
		{"comboqueen", "combo@example.com", "hashed_password_456"},
		{"slowburner", "slow@example.com", "hashed_password_789"},
	}

	userIDs := make([]int, len(testUsers))
	for i, user := range testUsers {
		created, err := db.CreateUser(user.username, user.email, user.password)
		if err != nil {
			return fmt.Errorf("failed to create test user %s: %w", user.username, err)
		}
		userIDs[i] = created.ID
		fmt.Printf("   Created user: %s (ID: %d)\n", user.username, created.ID)
	}

	testScores := []struct {
		userID   int
		score    int
		metadata map[string]interface{}
	}{
		{userIDs[0], 12400, map[string]interface{}{"mode": "Blockdrop", "full_board_clears": 2}},
		{userIDs[0], 8350, map[string]interface{}{"mode": "Blockdrop", "full_board_clears": 0}},
		{userIDs[1], 15800, map[string]interface{}{"mode": "Blockdrop Adventure", "full_board_clears": 3}},
		{userIDs[1], 9100, map[string]interface{}{"mode": "Blockdrop", "full_board_clears": 1}},
		{userIDs[2], 2350, map[string]interface{}{"mode": "Blockdrop", "full_board_clears": 0}},
	}

	for _, ts := range testScores {
		if err := db.SaveGameScore(ts.userID, "blocks", ts.score, ts.metadata); err != nil {
			return fmt.Errorf("failed to create test score: %w", err)
		}
	}

	// Give the top player a couple of unlocked queue slots so the
	// purchase flow has realistic data to load.
	settings := &PlayerSettings{UserID: userIDs[1], UnlockedSlots: 3, QueueMode: "infinite"}
	if err := db.SavePlayerSettings(settings); err != nil {
		return fmt.Errorf("failed to create test settings: %w", err)
	}

	fmt.Println("[INFO] Sample data ready.")
	return nil
}
