package blocks

import "math"

// Game is one play session: the board, the shape queue, the score, and
// the cursor the player steers. The rules engine itself is pure; Game is
// the single writer that threads board values through it.
type Game struct {
	engine  *Engine
	board   Board
	queue   *Queue
	mode    Mode
	cues    CuePlayer
	targets []Shape

	score    int
	gameOver bool

	cursorRow, cursorCol int
	selected             int
	rotationUnlocked     [MaxQueueSlots]bool

	lastClear *ClearResult
}

// GameOption tweaks a new session.
type GameOption func(*Game)

// WithCuePlayer routes scheduled cues to the given collaborator instead
// of discarding them.
func WithCuePlayer(p CuePlayer) GameOption {
	return func(g *Game) { g.cues = p }
}

// WithContent starts the session on an alternate board with target
// shapes, switching the session to adventure mode.
func WithContent(content BoardContent) GameOption {
	return func(g *Game) {
		g.board = content.Board
		g.targets = content.TargetShapes
		g.mode = ModeAdventure
	}
}

// WithRotationUnlocked unlocks the rotation menu for every queue slot.
func WithRotationUnlocked() GameOption {
	return func(g *Game) {
		for i := range g.rotationUnlocked {
			g.rotationUnlocked[i] = true
		}
	}
}

// NewGame starts a classic-mode session on an empty board.
func NewGame(engine *Engine, queue *Queue, opts ...GameOption) *Game {
	if engine == nil || queue == nil {
		panic("blocks: game needs an engine and a queue")
	}
	g := &Game{
		engine:    engine,
		board:     NewBoard(),
		queue:     queue,
		mode:      ModeClassic,
		cues:      NopCuePlayer{},
		cursorRow: BoardSize/2 + 1,
		cursorCol: BoardSize/2 + 1,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.refreshGameOver()
	return g
}

// Board returns the current board snapshot.
func (g *Game) Board() Board {
	return g.board.Clone()
}

// Score returns the accumulated score.
func (g *Game) Score() int {
	return g.score
}

// Queue returns the session's queue manager.
func (g *Game) Queue() *Queue {
	return g.queue
}

// Mode returns the session's board variant.
func (g *Game) Mode() Mode {
	return g.mode
}

// IsGameOver reports whether no remaining shape fits anywhere.
func (g *Game) IsGameOver() bool {
	return g.gameOver
}

// LastClear returns the result of the most recent clearing pass, or nil
// when the last placement cleared nothing.
func (g *Game) LastClear() *ClearResult {
	return g.lastClear
}

// Selected returns the selected queue slot index.
func (g *Game) Selected() int {
	return g.selected
}

// Cursor returns the cursor position (1-based).
func (g *Game) Cursor() (row, col int) {
	return g.cursorRow, g.cursorCol
}

// MoveCursor shifts the cursor, clamped to the board.
func (g *Game) MoveCursor(dRow, dCol int) {
	g.cursorRow = clamp(g.cursorRow+dRow, 1, BoardSize)
	g.cursorCol = clamp(g.cursorCol+dCol, 1, BoardSize)
}

// SelectNext moves the slot selection to the next queue position.
func (g *Game) SelectNext() {
	items := g.queue.Items()
	if len(items) == 0 {
		return
	}
	g.selected = (g.selected + 1) % len(items)
}

// RotationUnlocked reports whether the slot's rotation menu is open.
func (g *Game) RotationUnlocked(slot int) bool {
	return slot >= 0 && slot < MaxQueueSlots && g.rotationUnlocked[slot]
}

// UnlockRotation opens the rotation menu for a slot.
func (g *Game) UnlockRotation(slot int) {
	if slot >= 0 && slot < MaxQueueSlots {
		g.rotationUnlocked[slot] = true
	}
}

// RotateSelected rotates the shape in the selected slot when its
// rotation menu is unlocked.
func (g *Game) RotateSelected() bool {
	if !g.RotationUnlocked(g.selected) {
		return false
	}
	if !g.queue.RotateSlot(g.selected) {
		return false
	}
	g.refreshGameOver()
	return true
}

// SelectedShape returns the shape in the selected slot, when the slot is
// an active one.
func (g *Game) SelectedShape() (Shape, bool) {
	items := g.queue.Items()
	if g.selected >= len(items) {
		return Shape{}, false
	}
	item, ok := items[g.selected].(ShapeItem)
	if !ok {
		return Shape{}, false
	}
	return item.Shape, true
}

// PlacementOrigin converts the cursor into the matrix-origin position of
// the given shape so the shape's center sits under the cursor. Shapes
// with even bounding dimensions land on the half-cell, which rounds
// toward the lower coordinate the way the cursor renderer expects.
func (g *Game) PlacementOrigin(shape Shape) Position {
	cr, cc := shape.Center()
	return Position{
		Row: g.cursorRow - int(math.Floor(cr+0.5)),
		Col: g.cursorCol - int(math.Floor(cc+0.5)),
	}
}

// PlaceSelected drops the selected shape centered on the cursor. On
// success the shape is consumed, the board cleared and scored, cues
// dispatched, and the game-over state refreshed. Returns the clearing
// result of the pass and whether the placement happened.
func (g *Game) PlaceSelected() (ClearResult, bool) {
	shape, ok := g.SelectedShape()
	if !ok {
		return ClearResult{}, false
	}
	origin := g.PlacementOrigin(shape)
	placed, ok := PlaceShape(g.board, shape, origin, g.mode)
	if !ok {
		return ClearResult{}, false
	}
	if _, ok := g.queue.ConsumeShape(g.selected); !ok {
		return ClearResult{}, false
	}

	result := g.engine.PerformLineClearing(placed)
	g.board = result.Board
	g.score += result.PointsEarned
	if len(result.ClearedRows) > 0 || len(result.ClearedColumns) > 0 {
		g.lastClear = &result
		for _, cue := range result.Timeline.Cues {
			g.cues.Play(cue.Cue, cue.At)
		}
	} else {
		g.lastClear = nil
	}

	if g.selected >= len(g.queue.Items()) && g.selected > 0 {
		g.selected = 0
	}
	g.refreshGameOver()
	return result, true
}

// BuySlot purchases the purchasable placeholder at slotIndex out of the
// current score.
func (g *Game) BuySlot(slotIndex int) bool {
	newScore, ok := g.queue.PurchaseSlot(slotIndex, g.score)
	if !ok {
		return false
	}
	g.score = newScore
	g.refreshGameOver()
	return true
}

// refreshGameOver re-runs the exhaustive move search against the current
// board and queue. Rotation flags are aligned to the active slots only.
func (g *Game) refreshGameOver() {
	items := g.queue.Items()
	var shapes []Shape
	var flags []bool
	for i, item := range items {
		switch it := item.(type) {
		case ShapeItem:
			shapes = append(shapes, it.Shape)
			flags = append(flags, i < MaxQueueSlots && g.rotationUnlocked[i])
		case PurchasableItem:
		}
	}
	g.gameOver = CheckGameOver(g.board, shapes, flags, g.mode)
	if g.queue.Exhausted() {
		g.gameOver = true
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
