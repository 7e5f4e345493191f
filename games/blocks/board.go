package blocks

import "time"

// BoardSize is the side length of the square playing field.
const BoardSize = 10

// ColorName identifies one of the block colors used by the generator
// and the renderer.
type ColorName string

const (
	ColorNone   ColorName = ""
	ColorRed    ColorName = "red"
	ColorOrange ColorName = "orange"
	ColorYellow ColorName = "yellow"
	ColorGreen  ColorName = "green"
	ColorBlue   ColorName = "blue"
	ColorPurple ColorName = "purple"
)

// Block is the fill state of a single tile.
type Block struct {
	Filled bool
	Color  ColorName
}

// TileAnimation is a pending visual effect attached to a tile. It is pure
// data; the renderer decides what to do with it.
type TileAnimation struct {
	Cue      CueID
	Start    time.Duration
	Duration time.Duration
}

// Tile is one addressable cell of the board. Row and Col are 1-based.
type Tile struct {
	Row, Col        int
	BackgroundColor ColorName
	Block           Block
	Animations      []TileAnimation
}

// Board is the 10x10 playing field, stored as a flat arena indexed by
// (row-1)*BoardSize + (col-1) for cheap line scans. Board values follow a
// copy-on-write discipline: every operation that changes tiles returns a
// new Board and leaves the receiver untouched.
type Board struct {
	tiles []Tile
}

// NewBoard returns an empty board with one tile per coordinate.
func NewBoard() Board {
	tiles := make([]Tile, BoardSize*BoardSize)
	for r := 1; r <= BoardSize; r++ {
		for c := 1; c <= BoardSize; c++ {
			tiles[tileIndex(r, c)] = Tile{Row: r, Col: c}
		}
	}
	return Board{tiles: tiles}
}

func tileIndex(row, col int) int {
	return (row-1)*BoardSize + (col - 1)
}

func inRange(row, col int) bool {
	return row >= 1 && row <= BoardSize && col >= 1 && col <= BoardSize
}

// Tile returns the tile at (row, col), or false when out of range.
func (b Board) Tile(row, col int) (Tile, bool) {
	if !inRange(row, col) {
		return Tile{}, false
	}
	return b.tiles[tileIndex(row, col)], true
}

// IsFilled reports whether the tile at (row, col) holds a block.
// Out-of-range coordinates report false.
func (b Board) IsFilled(row, col int) bool {
	if !inRange(row, col) {
		return false
	}
	return b.tiles[tileIndex(row, col)].Block.Filled
}

// IsEmpty reports whether no tile on the board holds a block.
func (b Board) IsEmpty() bool {
	for i := range b.tiles {
		if b.tiles[i].Block.Filled {
			return false
		}
	}
	return true
}

// FilledCount returns the number of filled tiles.
func (b Board) FilledCount() int {
	n := 0
	for i := range b.tiles {
		if b.tiles[i].Block.Filled {
			n++
		}
	}
	return n
}

// Tiles returns a copy of every tile in row-major order.
func (b Board) Tiles() []Tile {
	out := make([]Tile, len(b.tiles))
	copy(out, b.tiles)
	for i := range out {
		if len(b.tiles[i].Animations) > 0 {
			out[i].Animations = append([]TileAnimation(nil), b.tiles[i].Animations...)
		}
	}
	return out
}

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	return Board{tiles: b.Tiles()}
}

// WithBlock returns a new board with a block of the given color at
// (row, col). Out-of-range coordinates return the board unchanged.
func (b Board) WithBlock(row, col int, color ColorName) Board {
	if !inRange(row, col) {
		return b
	}
	nb := b.Clone()
	t := &nb.tiles[tileIndex(row, col)]
	t.Block = Block{Filled: true, Color: color}
	return nb
}

// WithBackground returns a new board with the decorative target color set
// at (row, col). Used by alternate game modes.
func (b Board) WithBackground(row, col int, color ColorName) Board {
	if !inRange(row, col) {
		return b
	}
	nb := b.Clone()
	nb.tiles[tileIndex(row, col)].BackgroundColor = color
	return nb
}

func (b Board) rowFull(row int) bool {
	for c := 1; c <= BoardSize; c++ {
		if !b.tiles[tileIndex(row, c)].Block.Filled {
			return false
		}
	}
	return true
}

func (b Board) colFull(col int) bool {
	for r := 1; r <= BoardSize; r++ {
		if !b.tiles[tileIndex(r, col)].Block.Filled {
			return false
		}
	}
	return true
}
