package games

import (
	"fmt"
	"strings"
	"time"

	"github.com/isaacjstriker/blockdrop/internal/auth"
	"github.com/isaacjstriker/blockdrop/internal/database"
)

// ChallengeMode plays every registered mode back to back
type ChallengeMode struct {
	registry *GameRegistry
}

// NewChallengeMode creates a new challenge mode
func NewChallengeMode(registry *GameRegistry) *ChallengeMode {
	return &ChallengeMode{
		registry: registry,
	}
}

// RunChallenge plays all available modes in a random order. Individual
// game scores are saved if the player is logged in.
func (cm *ChallengeMode) RunChallenge(db *database.DB, authManager *auth.CLIAuth) {
	games := cm.registry.GetRandomOrder()

	if len(games) == 0 {
		fmt.Println("No game modes available for challenge mode!")
		return
	}

	fmt.Println("\n--- CHALLENGE MODE ACTIVATED! ---")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("You will play %d modes in random order.\n", len(games))
	fmt.Println("Individual scores will be saved if you are logged in.")
	fmt.Println(strings.Repeat("=", 50))

	var stats ChallengeStats

	for i, game := range games {
		fmt.Printf("\n--- Mode %d/%d: %s ---\n", i+1, len(games), game.GetName())
		fmt.Printf("Description: %s\n", game.GetDescription())
		fmt.Printf("Difficulty: %d/10\n", game.GetDifficulty())

		fmt.Println("\nPress Enter to start...")
		fmt.Scanln()

		result := game.Play(db, authManager)
		if result != nil {
			stats.Collect(result)
			fmt.Println("\n" + strings.Repeat("-", 40))
			fmt.Printf("Mode Complete: %s\n", result.GameName)
			fmt.Printf("Score: %d\n", result.Score)
			fmt.Println(strings.Repeat("-", 40))
		}

		if i < len(games)-1 {
			fmt.Println("\nGet ready for the next mode...")
			time.Sleep(3 * time.Second)
		}
	}

	fmt.Println("\n" + strings.Repeat("*", 25))
	fmt.Println("CHALLENGE COMPLETE!")
	fmt.Printf("Combined score: %d across %d modes", stats.TotalScore, stats.GamesPlayed)
	if stats.PerfectGames > 0 {
		fmt.Printf(" (%d finished with a clean board!)", stats.PerfectGames)
	}
	fmt.Println()
	fmt.Println(strings.Repeat("*", 25))
}
