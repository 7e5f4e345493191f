package types

// GameResult represents the outcome of a single game
type GameResult struct {
	GameName string                 `json:"game_name"`
	Score    int                    `json:"score"`
	Duration float64                `json:"duration"`
	Perfect  bool                   `json:"perfect"`
	Bonus    int                    `json:"bonus"`
	Metadata map[string]interface{} `json:"metadata"`
}

// Game is the interface every playable mode implements. The db and auth
// parameters are passed as interface{} so game packages stay free of the
// shell's import graph; implementations type-assert to *database.DB and
// *auth.CLIAuth and tolerate nil for guest play.
type Game interface {
	// GetName returns the display name of the game
	GetName() string

	// GetDescription returns a brief description
	GetDescription() string

	// Play runs the game and returns the result
	Play(db interface{}, authManager interface{}) *GameResult

	// GetDifficulty returns relative difficulty (1-10)
	GetDifficulty() int

	// IsAvailable checks if game can be played
	IsAvailable() bool
}
