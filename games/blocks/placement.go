package blocks

// Mode selects the board variant. The base placement rule is the same in
// every mode; adventure boards just start with tiles pre-filled from a
// loaded layout.
type Mode int

const (
	ModeClassic Mode = iota
	ModeAdventure
)

// Position is a 1-based board coordinate for a shape's matrix origin.
// The origin itself may sit outside the board as long as every filled
// cell lands inside.
type Position struct {
	Row, Col int
}

// IsValidPlacement reports whether the shape can occupy the board with
// its matrix origin at pos: every filled cell must map to an in-range,
// unfilled tile. A shape with no filled cells is never placeable.
func IsValidPlacement(shape Shape, pos Position, board Board, mode Mode) bool {
	cells := shape.Cells()
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		row := pos.Row + c.Row
		col := pos.Col + c.Col
		if !inRange(row, col) {
			return false
		}
		if board.IsFilled(row, col) {
			return false
		}
	}
	return true
}

// PlaceShape stamps the shape onto the board at pos, returning the new
// board. The second result is false, with the board unchanged, when the
// placement is invalid.
func PlaceShape(board Board, shape Shape, pos Position, mode Mode) (Board, bool) {
	if !IsValidPlacement(shape, pos, board, mode) {
		return board, false
	}
	nb := board.Clone()
	for _, c := range shape.Cells() {
		t := &nb.tiles[tileIndex(pos.Row+c.Row, pos.Col+c.Col)]
		t.Block = Block{Filled: true, Color: shape.Color()}
	}
	return nb, true
}
