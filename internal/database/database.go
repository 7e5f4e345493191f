package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver for local development
)

type DB struct {
	conn   *sql.DB
	dbType string // "postgres" or "sqlite3"
}

type User struct {
	ID        int        `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login"`
}

type GameScore struct {
	ID             int                    `json:"id"`
	UserID         int                    `json:"user_id"`
	GameType       string                 `json:"game_type"`
	Score          int                    `json:"score"`
	AdditionalData map[string]interface{} `json:"additional_data"`
	PlayedAt       time.Time              `json:"played_at"`
}

// LeaderboardEntry represents a single entry in the leaderboard
type LeaderboardEntry struct {
	Username    string    `json:"username"`
	GameType    string    `json:"game_type"`
	BestScore   int       `json:"best_score"`
	AvgScore    float64   `json:"avg_score"`
	GamesPlayed int       `json:"games_played"`
	LastPlayed  time.Time `json:"last_played"`
}

// PlayerSettings is the per-user state the game shell persists between
// sessions: how many queue slots are unlocked and the preferred queue
// mode. The rules engine itself never touches this.
type PlayerSettings struct {
	UserID        int    `json:"user_id"`
	UnlockedSlots int    `json:"unlocked_slots"`
	QueueMode     string `json:"queue_mode"`
}

// Connect establishes a connection to the database. A postgres:// URL
// selects the PostgreSQL driver; anything else is treated as a SQLite
// file path for local development.
func Connect(dbURL string) (*DB, error) {
	if dbURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	driverName := "sqlite3"
	dataSource := dbURL
	if strings.HasPrefix(dbURL, "postgres://") || strings.HasPrefix(dbURL, "postgresql://") {
		driverName = "postgres"
	} else {
		dataSource = strings.TrimPrefix(dbURL, "sqlite://")
	}

	conn, err := sql.Open(driverName, dataSource)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err = conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	fmt.Printf("[INFO] Successfully connected to %s database.\n", driverName)
	return &DB{conn: conn, dbType: driverName}, nil
}

// CreateTables creates the necessary database tables
func (db *DB) CreateTables() error {
	var queries []string

	if db.dbType == "postgres" {
		queries = []string{
			`CREATE TABLE IF NOT EXISTS users (
				id SERIAL PRIMARY KEY,
				username VARCHAR(50) UNIQUE NOT NULL,
				email VARCHAR(100) UNIQUE NOT NULL,
				password_hash VARCHAR(255) NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				last_login TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS game_scores (
				id SERIAL PRIMARY KEY,
				user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
				game_type VARCHAR(50) NOT NULL,
				score INTEGER NOT NULL,
				metadata JSONB,
				played_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS player_settings (
				user_id INTEGER PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
				unlocked_slots INTEGER NOT NULL DEFAULT 1,
				queue_mode VARCHAR(20) NOT NULL DEFAULT 'infinite',
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE INDEX IF NOT EXISTS idx_game_scores_user_game ON game_scores(user_id, game_type)`,
			`CREATE INDEX IF NOT EXISTS idx_game_scores_type_score ON game_scores(game_type, score DESC)`,
		}
	} else {
		queries = []string{
			`CREATE TABLE IF NOT EXISTS users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT UNIQUE NOT NULL,
				email TEXT UNIQUE NOT NULL,
				password_hash TEXT NOT NULL,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				last_login DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS game_scores (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id INTEGER,
				game_type TEXT NOT NULL,
				score INTEGER NOT NULL,
				metadata TEXT,
				played_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (user_id) REFERENCES users (id)
			)`,
			`CREATE TABLE IF NOT EXISTS player_settings (
				user_id INTEGER PRIMARY KEY,
				unlocked_slots INTEGER NOT NULL DEFAULT 1,
				queue_mode TEXT NOT NULL DEFAULT 'infinite',
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (user_id) REFERENCES users (id)
			)`,
		}
	}

	for _, query := range queries {
		if _, err := db.conn.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}

// rebind converts ?-style placeholders to $N for PostgreSQL.
func (db *DB) rebind(query string) string {
	if db.dbType != "postgres" {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&sb, "$%d", n)
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Exec wrapper for convenience
func (db *DB) Exec(query string, args ...interface{}) (sql.Result, error) {
	return db.conn.Exec(db.rebind(query), args...)
}

// Query wrapper for convenience
func (db *DB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return db.conn.Query(db.rebind(query), args...)
}

// QueryRow wrapper for convenience
func (db *DB) QueryRow(query string, args ...interface{}) *sql.Row {
	return db.conn.QueryRow(db.rebind(query), args...)
}

// CreateUser creates a new user in the database
func (db *DB) CreateUser(username, email, passwordHash string) (*User, error) {
	if db.dbType == "postgres" {
		var id int
		err := db.conn.QueryRow(
			`INSERT INTO users (username, email, password_hash) VALUES ($1, $2, $3) RETURNING id`,
			username, email, passwordHash,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return &User{ID: id, Username: username, Email: email, CreatedAt: time.Now()}, nil
	}

	result, err := db.conn.Exec(
		`INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)`,
		username, email, passwordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get user ID: %w", err)
	}

	return &User{
		ID:        int(id),
		Username:  username,
		Email:     email,
		CreatedAt: time.Now(),
	}, nil
}

// GetUserByUsername retrieves a user and its password hash by username
func (db *DB) GetUserByUsername(username string) (*User, string, error) {
	query := `
		SELECT id, username, email, password_hash, created_at, last_login
		FROM users WHERE username = ?
	`

	var user User
	var passwordHash string
	err := db.QueryRow(query, username).Scan(
		&user.ID, &user.Username, &user.Email, &passwordHash,
		&user.CreatedAt, &user.LastLogin,
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	return &user, passwordHash, nil
}

// UpdateLastLogin stamps the user's last login time
func (db *DB) UpdateLastLogin(userID int) error {
	if _, err := db.Exec(`UPDATE users SET last_login = ? WHERE id = ?`, time.Now(), userID); err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// SaveGameScore saves a game score to the database
func (db *DB) SaveGameScore(userID int, gameType string, score int, metadata map[string]interface{}) error {
	query := `
        INSERT INTO game_scores (user_id, game_type, score, metadata, played_at)
        VALUES (?, ?, ?, ?, ?)
    `

	var metadataValue interface{}
	if metadata != nil {
		metadataJSON, err := json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}
		metadataValue = string(metadataJSON) // For SQLite
		if db.dbType == "postgres" {
			metadataValue = metadataJSON // For PostgreSQL JSONB
		}
	}

	if _, err := db.Exec(query, userID, gameType, score, metadataValue, time.Now()); err != nil {
		return fmt.Errorf("failed to save game score: %w", err)
	}

	return nil
}

// GetLeaderboard retrieves the leaderboard for a specific game
func (db *DB) GetLeaderboard(gameType string, limit int) ([]LeaderboardEntry, error) {
	avgExpr := "AVG(CAST(gs.score AS REAL))"
	if db.dbType == "postgres" {
		avgExpr = "AVG(gs.score)"
	}
	query := fmt.Sprintf(`
        SELECT
            u.username,
            MAX(gs.score) as best_score,
            %s as avg_score,
            COUNT(gs.id) as games_played,
            MAX(gs.played_at) as last_played
        FROM users u
        JOIN game_scores gs ON u.id = gs.user_id
        WHERE gs.game_type = ?
        GROUP BY u.id, u.username
        ORDER BY best_score DESC
        LIMIT ?
    `, avgExpr)

	rows, err := db.Query(query, gameType, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var entry LeaderboardEntry
		var lastPlayed interface{}

		err := rows.Scan(
			&entry.Username,
			&entry.BestScore,
			&entry.AvgScore,
			&entry.GamesPlayed,
			&lastPlayed,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}

		entry.LastPlayed = parseDBTime(lastPlayed)
		entry.GameType = gameType
		entries = append(entries, entry)
	}

	return entries, nil
}

// GetRecentGames returns the most recent plays of a game across all
// users, with each play's stored metadata decoded so callers can see
// the mode and end-of-game details.
func (db *DB) GetRecentGames(gameType string, limit int) ([]GameScore, error) {
	query := `
        SELECT id, user_id, game_type, score, metadata, played_at
        FROM game_scores
        WHERE game_type = ?
        ORDER BY played_at DESC
        LIMIT ?
    `

	rows, err := db.Query(query, gameType, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent games: %w", err)
	}
	defer rows.Close()

	var scores []GameScore
	for rows.Next() {
		var gs GameScore
		var metadata sql.NullString
		var playedAt interface{}
		if err := rows.Scan(&gs.ID, &gs.UserID, &gs.GameType, &gs.Score, &metadata, &playedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recent game: %w", err)
		}
		if metadata.Valid && metadata.String != "" {
			if err := json.Unmarshal([]byte(metadata.String), &gs.AdditionalData); err != nil {
				return nil, fmt.Errorf("failed to decode game metadata: %w", err)
			}
		}
		gs.PlayedAt = parseDBTime(playedAt)
		scores = append(scores, gs)
	}

	return scores, nil
}

// GetUserStats retrieves statistics for a specific user and game
func (db *DB) GetUserStats(userID int, gameType string) (*LeaderboardEntry, error) {
	query := `
		SELECT
			u.username,
			COALESCE(MAX(gs.score), 0) as best_score,
			COALESCE(AVG(CAST(gs.score AS REAL)), 0) as avg_score,
			COUNT(gs.id) as games_played,
			MAX(gs.played_at) as last_played
		FROM users u
		LEFT JOIN game_scores gs ON u.id = gs.user_id AND gs.game_type = ?
		WHERE u.id = ?
		GROUP BY u.id, u.username
	`

	var entry LeaderboardEntry
	var lastPlayed interface{}
	err := db.QueryRow(query, gameType, userID).Scan(
		&entry.Username, &entry.BestScore,
		&entry.AvgScore, &entry.GamesPlayed, &lastPlayed,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get user stats: %w", err)
	}

	entry.GameType = gameType
	entry.LastPlayed = parseDBTime(lastPlayed)
	return &entry, nil
}

// GetPlayerSettings loads the persisted shell settings for a user,
// falling back to defaults when none are stored yet.
func (db *DB) GetPlayerSettings(userID int) (*PlayerSettings, error) {
	settings := &PlayerSettings{UserID: userID, UnlockedSlots: 1, QueueMode: "infinite"}

	query := `SELECT unlocked_slots, queue_mode FROM player_settings WHERE user_id = ?`
	err := db.QueryRow(query, userID).Scan(&settings.UnlockedSlots, &settings.QueueMode)
	if err == sql.ErrNoRows {
		return settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player settings: %w", err)
	}

	return settings, nil
}

// SavePlayerSettings upserts the persisted shell settings for a user.
func (db *DB) SavePlayerSettings(settings *PlayerSettings) error {
	var query string
	if db.dbType == "postgres" {
		query = `
            INSERT INTO player_settings (user_id, unlocked_slots, queue_mode, updated_at)
            VALUES (?, ?, ?, ?)
            ON CONFLICT (user_id) DO UPDATE
            SET unlocked_slots = EXCLUDED.unlocked_slots,
                queue_mode = EXCLUDED.queue_mode,
                updated_at = EXCLUDED.updated_at
        `
	} else {
		query = `
            INSERT OR REPLACE INTO player_settings (user_id, unlocked_slots, queue_mode, updated_at)
            VALUES (?, ?, ?, ?)
        `
	}

	if _, err := db.Exec(query, settings.UserID, settings.UnlockedSlots, settings.QueueMode, time.Now()); err != nil {
		return fmt.Errorf("failed to save player settings: %w", err)
	}
	return nil
}

// parseDBTime normalizes the driver-dependent played_at column:
// PostgreSQL hands back time.Time, SQLite a string in one of a few
// datetime layouts.
func parseDBTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case []byte:
		return parseTimeString(string(t))
	case string:
		return parseTimeString(t)
	default:
		return time.Now()
	}
}

func parseTimeString(s string) time.Time {
	formats := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05",
		time.RFC3339,
	}
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Now()
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}
