package blocks

import "time"

// GameState is the JSON snapshot sent to web clients for rendering.
// Timing offsets are flattened to milliseconds for the browser side.
type GameState struct {
	Board     [][]string       `json:"board"`
	Queue     []QueueSlotState `json:"queue"`
	Score     int              `json:"score"`
	Cursor    [2]int           `json:"cursor"`
	Selected  int              `json:"selected"`
	GameOver  bool             `json:"gameOver"`
	LastClear *ClearState      `json:"lastClear,omitempty"`
}

// QueueSlotState is the JSON form of one queue position.
type QueueSlotState struct {
	ID     int      `json:"id"`
	Kind   string   `json:"kind"` // "shape" or "slot"
	Cells  [][2]int `json:"cells,omitempty"`
	Color  string   `json:"color,omitempty"`
	Cost   int      `json:"cost,omitempty"`
	Number int      `json:"slotNumber,omitempty"`
}

// ClearState is the JSON form of a clearing pass and its timeline.
type ClearState struct {
	Rows      []int       `json:"rows"`
	Columns   []int       `json:"columns"`
	Points    int         `json:"points"`
	FullBoard bool        `json:"fullBoard"`
	Lines     []LineState `json:"lines"`
	Cues      []CueState  `json:"cues"`
	EndMs     int64       `json:"endMs"`
}

// LineState is one scheduled line animation in milliseconds.
type LineState struct {
	Axis        string `json:"axis"`
	Index       int    `json:"index"`
	Phase       int    `json:"phase"`
	StartMs     int64  `json:"startMs"`
	DurationMs  int64  `json:"durationMs"`
	WaveDelayMs int64  `json:"waveDelayMs"`
}

// CueState is one scheduled cue in milliseconds.
type CueState struct {
	Cue  string `json:"cue"`
	AtMs int64  `json:"atMs"`
}

func ms(d time.Duration) int64 {
	return d.Milliseconds()
}

// State renders the session into its JSON snapshot.
func (g *Game) State() GameState {
	board := g.Board()
	rows := make([][]string, BoardSize)
	for r := 1; r <= BoardSize; r++ {
		rows[r-1] = make([]string, BoardSize)
		for c := 1; c <= BoardSize; c++ {
			tile, _ := board.Tile(r, c)
			if tile.Block.Filled {
				rows[r-1][c-1] = string(tile.Block.Color)
			}
		}
	}

	state := GameState{
		Board:    rows,
		Score:    g.Score(),
		Cursor:   [2]int{g.cursorRow, g.cursorCol},
		Selected: g.Selected(),
		GameOver: g.IsGameOver(),
	}

	for _, item := range g.queue.Items() {
		switch it := item.(type) {
		case ShapeItem:
			slot := QueueSlotState{ID: it.ItemID(), Kind: "shape", Color: string(it.Shape.Color())}
			for _, cell := range it.Shape.Cells() {
				slot.Cells = append(slot.Cells, [2]int{cell.Row, cell.Col})
			}
			state.Queue = append(state.Queue, slot)
		case PurchasableItem:
			state.Queue = append(state.Queue, QueueSlotState{
				ID:     it.ItemID(),
				Kind:   "slot",
				Cost:   it.Cost,
				Number: it.SlotNumber,
			})
		}
	}

	if g.lastClear != nil {
		state.LastClear = clearState(*g.lastClear)
	}
	return state
}

func clearState(r ClearResult) *ClearState {
	cs := &ClearState{
		Rows:      r.ClearedRows,
		Columns:   r.ClearedColumns,
		Points:    r.PointsEarned,
		FullBoard: r.IsFullBoardClear,
		EndMs:     ms(r.Timeline.End),
	}
	for _, line := range r.Timeline.Lines {
		axis := "row"
		if line.Axis == AxisColumn {
			axis = "column"
		}
		cs.Lines = append(cs.Lines, LineState{
			Axis:        axis,
			Index:       line.Index,
			Phase:       line.Phase,
			StartMs:     ms(line.Start),
			DurationMs:  ms(line.Duration),
			WaveDelayMs: ms(line.WaveDelay),
		})
	}
	for _, cue := range r.Timeline.Cues {
		cs.Cues = append(cs.Cues, CueState{Cue: string(cue.Cue), AtMs: ms(cue.At)})
	}
	return cs
}

// HandleWebInput processes one command from a web client.
func (g *Game) HandleWebInput(input string) {
	switch input {
	case "up":
		g.MoveCursor(-1, 0)
	case "down":
		g.MoveCursor(1, 0)
	case "left":
		g.MoveCursor(0, -1)
	case "right":
		g.MoveCursor(0, 1)
	case "next":
		g.SelectNext()
	case "rotate":
		g.RotateSelected()
	case "place":
		g.PlaceSelected()
	case "buy":
		g.BuySlot(g.Selected())
	}
}
