package games

import (
	"github.com/isaacjstriker/blockdrop/internal/types"
)

// ChallengeStats represents the overall performance across a challenge
// run of every registered mode.
type ChallengeStats struct {
	TotalScore    int                `json:"total_score"`
	GamesPlayed   int                `json:"games_played"`
	TotalDuration float64            `json:"total_duration"`
	PerfectGames  int                `json:"perfect_games"`
	Results       []types.GameResult `json:"results"`
}

// Collect folds a game result into the running stats.
func (cs *ChallengeStats) Collect(result *types.GameResult) {
	if result == nil {
		return
	}
	cs.TotalScore += result.Score
	cs.GamesPlayed++
	cs.TotalDuration += result.Duration
	if result.Perfect {
		cs.PerfectGames++
	}
	cs.Results = append(cs.Results, *result)
}
