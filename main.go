package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/isaacjstriker/blockdrop/games"
	"github.com/isaacjstriker/blockdrop/internal/api"
	"github.com/isaacjstriker/blockdrop/internal/auth"
	"github.com/isaacjstriker/blockdrop/internal/config"
	"github.com/isaacjstriker/blockdrop/internal/database"
	"github.com/isaacjstriker/blockdrop/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		fmt.Printf("[INFO] Running without a database: %v\n", err)
		db = nil
	} else {
		defer db.Close()
		if err := db.CreateTables(); err != nil {
			log.Fatalf("could not create tables: %v", err)
		}
		if cfg.Debug {
			if err := db.CreateTestData(); err != nil {
				fmt.Printf("[INFO] Could not seed test data: %v\n", err)
			}
		}
	}

	if len(os.Args) > 1 {
		runCommand(os.Args[1], cfg, db)
		return
	}

	runMenu(cfg, db)
}

func runCommand(command string, cfg *config.Config, db *database.DB) {
	switch command {
	case "serve":
		addr := fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort)
		api.NewAPIServer(addr, db, cfg).Start()
	case "classic", "adventure":
		factory, ok := games.Games[command]
		if !ok {
			fmt.Println("Unknown mode:", command)
			return
		}
		authManager := auth.NewCLIAuth(db)
		factory().Play(db, authManager)
	default:
		fmt.Println("Usage: blockdrop [serve|classic|adventure]")
		fmt.Printf("Available modes: %s\n", strings.Join(games.GetGameList(), ", "))
	}
}

func runMenu(cfg *config.Config, db *database.DB) {
	authManager := auth.NewCLIAuth(db)

	registry := games.NewGameRegistry()
	for _, factory := range games.Games {
		registry.RegisterGame(factory())
	}

	for {
		menuItems := []ui.MenuItem{
			{Label: "Play Classic", Value: "classic"},
			{Label: "Play Adventure", Value: "adventure"},
			{Label: "Challenge Mode", Value: "challenge"},
			{Label: "Leaderboard", Value: "leaderboard"},
			{Label: "Account", Value: "account"},
			{Label: "Quit", Value: "exit"},
		}

		menu := ui.NewMenu(cfg.AppName, menuItems)
		choice := menu.Show()
		switch choice {
		case "classic", "adventure":
			if factory, ok := games.Games[choice]; ok {
				factory().Play(db, authManager)
			}
		case "challenge":
			games.NewChallengeMode(registry).RunChallenge(db, authManager)
		case "leaderboard":
			showLeaderboard(db)
		case "account":
			authManager.ShowAuthMenu()
		case "exit":
			fmt.Println("Thanks for playing!")
			return
		}
	}
}

func showLeaderboard(db *database.DB) {
	if db == nil {
		fmt.Println("\nLeaderboard needs a database connection.")
		fmt.Println("Press Enter to continue...")
		fmt.Scanln()
		return
	}

	entries, err := db.GetLeaderboard("blocks", 15)
	if err != nil {
		fmt.Printf("Could not load leaderboard: %v\n", err)
		fmt.Println("Press Enter to continue...")
		fmt.Scanln()
		return
	}

	fmt.Println("\n=== BLOCKDROP LEADERBOARD ===")
	if len(entries) == 0 {
		fmt.Println("No scores yet. Be the first!")
	}
	for i, entry := range entries {
		fmt.Printf("%2d. %-20s best %6d over %d games\n",
			i+1, entry.Username, entry.BestScore, entry.GamesPlayed)
	}
	fmt.Println("\nPress Enter to continue...")
	fmt.Scanln()
}
