package blocks

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/eiannone/keyboard"

	"github.com/isaacjstriker/blockdrop/internal/auth"
	"github.com/isaacjstriker/blockdrop/internal/database"
	"github.com/isaacjstriker/blockdrop/internal/types"
)

// BlocksGame is the registry-facing wrapper around a play session.
type BlocksGame struct {
	mode        Mode
	contentPath string
	queueMode   QueueMode
	finiteCount int
}

// NewBlocksGame creates the classic-mode entry for the game registry.
func NewBlocksGame() *BlocksGame {
	return &BlocksGame{mode: ModeClassic, queueMode: QueueInfinite}
}

// NewAdventureGame creates the adventure-mode entry: a pre-filled board
// loaded from the content script and a finite shape budget.
func NewAdventureGame(contentPath string) *BlocksGame {
	return &BlocksGame{
		mode:        ModeAdventure,
		contentPath: contentPath,
		queueMode:   QueueFinite,
		finiteCount: 40,
	}
}

func (bg *BlocksGame) GetName() string {
	if bg.mode == ModeAdventure {
		return "Blockdrop Adventure"
	}
	return "Blockdrop"
}

func (bg *BlocksGame) GetDescription() string {
	if bg.mode == ModeAdventure {
		return "Clear a pre-filled board with a limited shape supply"
	}
	return "Drop shapes onto the grid and clear full rows and columns"
}

func (bg *BlocksGame) GetDifficulty() int {
	if bg.mode == ModeAdventure {
		return 6
	}
	return 4
}

func (bg *BlocksGame) IsAvailable() bool {
	return true
}

// Play runs the game in the terminal and returns the result. The db and
// authManager parameters follow the registry interface; both may be nil
// for guest play.
func (bg *BlocksGame) Play(db interface{}, authManager interface{}) *types.GameResult {
	gameDB, _ := db.(*database.DB)
	cliAuth, _ := authManager.(*auth.CLIAuth)

	session := bg.newSession(rand.New(rand.NewSource(time.Now().UnixNano())))
	start := time.Now()

	finalScore, quit := runTerminal(session)
	duration := time.Since(start).Seconds()

	result := &types.GameResult{
		GameName: bg.GetName(),
		Score:    finalScore,
		Duration: duration,
		Perfect:  session.Board().IsEmpty() && finalScore > 0,
		Metadata: map[string]interface{}{
			"mode":       bg.GetName(),
			"quit_early": quit,
		},
	}

	if gameDB != nil && cliAuth != nil && cliAuth.GetSession().IsLoggedIn() {
		if s := cliAuth.GetSession().GetCurrentSession(); s != nil {
			if err := gameDB.SaveGameScore(s.UserID, "blocks", finalScore, result.Metadata); err != nil {
				fmt.Printf("Warning: could not save score: %v\n", err)
			} else {
				fmt.Println("Score saved to your profile!")
				if stats, err := gameDB.GetUserStats(s.UserID, "blocks"); err == nil {
					fmt.Printf("Your best score: %d over %d games\n", stats.BestScore, stats.GamesPlayed)
				}
			}
		}
	}

	return result
}

// newSession wires a fresh engine, generator, and queue for one play.
func (bg *BlocksGame) newSession(rng *rand.Rand) *Game {
	gen := NewGenerator(rng, DefaultColorWeights)
	queue := NewQueue(gen, bg.queueMode, 1, bg.finiteCount)
	opts := []GameOption{WithRotationUnlocked()}
	if bg.mode == ModeAdventure {
		opts = append(opts, WithContent(LoadContent(bg.contentPath, "adventure")))
	}
	return NewGame(DefaultEngine(), queue, opts...)
}

// runTerminal drives the interactive loop until game over or quit.
// It returns the final score and whether the player quit early.
func runTerminal(g *Game) (int, bool) {
	if err := keyboard.Open(); err != nil {
		fmt.Printf("Could not open keyboard: %v\n", err)
		return g.Score(), true
	}
	defer keyboard.Close()

	for {
		render(g)
		if g.IsGameOver() {
			fmt.Println("\nGAME OVER! No remaining shape fits.")
			fmt.Printf("Final score: %d\n", g.Score())
			return g.Score(), false
		}

		char, key, err := keyboard.GetKey()
		if err != nil {
			return g.Score(), true
		}

		switch {
		case char == 'q' || char == 'Q' || key == keyboard.KeyEsc:
			return g.Score(), true
		case char == 'w' || key == keyboard.KeyArrowUp:
			g.MoveCursor(-1, 0)
		case char == 's' || key == keyboard.KeyArrowDown:
			g.MoveCursor(1, 0)
		case char == 'a' || key == keyboard.KeyArrowLeft:
			g.MoveCursor(0, -1)
		case char == 'd' || key == keyboard.KeyArrowRight:
			g.MoveCursor(0, 1)
		case key == keyboard.KeyTab:
			g.SelectNext()
		case char == 'r' || char == 'R':
			g.RotateSelected()
		case char == 'b' || char == 'B':
			g.BuySlot(g.Selected())
		case key == keyboard.KeySpace || key == keyboard.KeyEnter:
			if result, ok := g.PlaceSelected(); ok {
				playClearAnimation(g, result)
			}
		}
	}
}

// playClearAnimation is the engine's reference consumer of the timeline
// metadata: it sleeps out the computed offsets while re-rendering. The
// engine itself never schedules anything.
func playClearAnimation(g *Game, result ClearResult) {
	if len(result.ClearedRows) == 0 && len(result.ClearedColumns) == 0 {
		return
	}
	render(g)
	fmt.Printf("\nCleared %d row(s), %d column(s) for %d points!\n",
		len(result.ClearedRows), len(result.ClearedColumns), result.PointsEarned)
	if result.IsFullBoardClear {
		fmt.Println("FULL BOARD CLEAR!")
	}
	time.Sleep(result.Timeline.End)
}

var ansiColors = map[ColorName]string{
	ColorRed:    "\033[41m  \033[0m",
	ColorOrange: "\033[43m  \033[0m",
	ColorYellow: "\033[103m  \033[0m",
	ColorGreen:  "\033[42m  \033[0m",
	ColorBlue:   "\033[44m  \033[0m",
	ColorPurple: "\033[45m  \033[0m",
}

var asciiColors = map[ColorName]string{
	ColorRed:    "##",
	ColorOrange: "@@",
	ColorYellow: "**",
	ColorGreen:  "%%",
	ColorBlue:   "++",
	ColorPurple: "&&",
}

func colorCell(c ColorName) string {
	if supportsColor() {
		if s, ok := ansiColors[c]; ok {
			return s
		}
		return "  "
	}
	if s, ok := asciiColors[c]; ok {
		return s
	}
	return ".."
}

func supportsColor() bool {
	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}

// render draws the board, the ghost of the selected shape under the
// cursor, and the queue.
func render(g *Game) {
	fmt.Print("\033[2J\033[H")
	fmt.Printf("BLOCKDROP | Score: %d\n", g.Score())
	fmt.Println(strings.Repeat("=", 50))

	display := make([][]string, BoardSize)
	board := g.Board()
	for r := 1; r <= BoardSize; r++ {
		display[r-1] = make([]string, BoardSize)
		for c := 1; c <= BoardSize; c++ {
			tile, _ := board.Tile(r, c)
			switch {
			case tile.Block.Filled:
				display[r-1][c-1] = colorCell(tile.Block.Color)
			case tile.BackgroundColor != ColorNone:
				display[r-1][c-1] = "::"
			default:
				display[r-1][c-1] = colorCell(ColorNone)
			}
		}
	}

	// Ghost of the selected shape centered on the cursor; dim marker when
	// the drop would be invalid.
	if shape, ok := g.SelectedShape(); ok {
		origin := g.PlacementOrigin(shape)
		valid := IsValidPlacement(shape, origin, board, g.Mode())
		for _, cell := range shape.Cells() {
			r := origin.Row + cell.Row
			c := origin.Col + cell.Col
			if !inRange(r, c) {
				continue
			}
			if valid {
				display[r-1][c-1] = "[]"
			} else if !board.IsFilled(r, c) {
				display[r-1][c-1] = "??"
			}
		}
	}

	fmt.Println("╔" + strings.Repeat("═", BoardSize*2) + "╗")
	for _, row := range display {
		fmt.Print("║")
		for _, cell := range row {
			fmt.Print(cell)
		}
		fmt.Println("║")
	}
	fmt.Println("╚" + strings.Repeat("═", BoardSize*2) + "╝")

	renderQueue(g)
	fmt.Println("\nControls: WASD/arrows=Move, Tab=Next shape, R=Rotate, Space=Place, B=Buy slot, Q=Quit")
}

func renderQueue(g *Game) {
	fmt.Println("\nQueue:")
	for i, item := range g.Queue().Items() {
		marker := "  "
		if i == g.Selected() {
			marker = "> "
		}
		switch it := item.(type) {
		case ShapeItem:
			fmt.Printf("%s[%d] %s\n", marker, i+1, shapeLine(it.Shape))
		case PurchasableItem:
			fmt.Printf("%s[%d] locked slot %d (cost %d)\n", marker, i+1, it.SlotNumber, it.Cost)
		}
	}
	if g.Queue().Mode() == QueueFinite {
		fmt.Printf("Shapes remaining: %d\n", g.Queue().HiddenCount())
	}
}

// shapeLine flattens a shape into a one-line preview.
func shapeLine(s Shape) string {
	b := s.Bounds()
	var sb strings.Builder
	for r := b.MinRow; r <= b.MaxRow; r++ {
		if r > b.MinRow {
			sb.WriteString(" / ")
		}
		for c := b.MinCol; c <= b.MaxCol; c++ {
			if s.Filled(r, c) {
				sb.WriteString("#")
			} else {
				sb.WriteString(".")
			}
		}
	}
	return sb.String()
}
