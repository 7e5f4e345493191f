package blocks

import "time"

// ClearResult is the outcome of one clearing pass: the new board, which
// lines cleared, the points earned (full-board bonus included), and the
// animation schedule for the presentation layer.
type ClearResult struct {
	Board            Board
	ClearedRows      []int
	ClearedColumns   []int
	IsFullBoardClear bool
	PointsEarned     int
	Timeline         Timeline
}

// Engine bundles the clearing, scoring, and timeline configuration for a
// game session. The zero value is not usable; build one with NewEngine.
type Engine struct {
	scores ScoreTable
	anim   TimelineConfig
}

// NewEngine builds an engine with the given tier tables.
func NewEngine(scores ScoreTable, anim TimelineConfig) *Engine {
	return &Engine{scores: scores, anim: anim}
}

// DefaultEngine returns an engine with the standard score and timing
// tables.
func DefaultEngine() *Engine {
	return NewEngine(DefaultScoreTable, DefaultTimelineConfig)
}

// PerformLineClearing scans the board for full rows and columns, clears
// them, scores the pass, and builds the animation timeline. The input
// board is never modified. Clearing nothing returns the board's values
// unchanged with zero points.
//
// A full-board clear is reported only when this pass cleared at least one
// line and the resulting board is empty; passing an already-empty board
// through never earns the bonus.
func (e *Engine) PerformLineClearing(board Board) ClearResult {
	var rows, cols []int
	for r := 1; r <= BoardSize; r++ {
		if board.rowFull(r) {
			rows = append(rows, r)
		}
	}
	for c := 1; c <= BoardSize; c++ {
		if board.colFull(c) {
			cols = append(cols, c)
		}
	}

	if len(rows) == 0 && len(cols) == 0 {
		return ClearResult{Board: board.Clone()}
	}

	nb := board.Clone()
	// Clearing is idempotent per tile, so a tile at the intersection of a
	// full row and a full column clears once.
	for _, r := range rows {
		for c := 1; c <= BoardSize; c++ {
			clearTile(&nb, r, c)
		}
	}
	for _, c := range cols {
		for r := 1; r <= BoardSize; r++ {
			clearTile(&nb, r, c)
		}
	}

	fullClear := nb.IsEmpty()
	points := e.scores.CalculateScore(len(rows), len(cols))
	if fullClear {
		points += e.scores.FullBoardBonus
	}

	tl := BuildTimeline(rows, cols, fullClear, 0, e.anim)
	attachTileAnimations(&nb, tl)

	return ClearResult{
		Board:            nb,
		ClearedRows:      rows,
		ClearedColumns:   cols,
		IsFullBoardClear: fullClear,
		PointsEarned:     points,
		Timeline:         tl,
	}
}

func clearTile(b *Board, row, col int) {
	t := &b.tiles[tileIndex(row, col)]
	t.Block = Block{}
}

// attachTileAnimations mirrors the timeline onto the cleared tiles so a
// renderer can drive per-cell effects straight off the board snapshot.
// Cell k of a line starts k wave steps after the line itself.
func attachTileAnimations(b *Board, tl Timeline) {
	for _, line := range tl.Lines {
		for k := 0; k < BoardSize; k++ {
			row, col := line.Index, k+1
			if line.Axis == AxisColumn {
				row, col = k+1, line.Index
			}
			t := &b.tiles[tileIndex(row, col)]
			t.Animations = append(t.Animations, TileAnimation{
				Cue:      CueLineWave,
				Start:    line.Start + time.Duration(k)*line.WaveDelay,
				Duration: line.Duration,
			})
		}
	}
}
