package blocks

// ShapeGridSize is the side length of a shape's bounding matrix.
const ShapeGridSize = 4

// Cell is a 0-based offset within a shape's bounding matrix.
type Cell struct {
	Row, Col int
}

// Shape is an immutable polyomino: a 4x4 matrix of filled cells plus a
// color. Rotation returns a new Shape, never mutates in place.
type Shape struct {
	cells [ShapeGridSize][ShapeGridSize]bool
	color ColorName
}

// ShapeBounds describes the minimal bounding box of a shape's filled
// cells, in 0-based matrix coordinates.
type ShapeBounds struct {
	MinRow, MaxRow int
	MinCol, MaxCol int
	Width, Height  int
}

// NewShape builds a shape from filled-cell offsets, normalized so the
// bounding box starts at the matrix origin. Panics when no cell is filled
// or a cell falls outside the bounding matrix; shapes like that indicate
// a broken template catalog, not a runtime condition.
func NewShape(cells []Cell, color ColorName) Shape {
	if len(cells) == 0 {
		panic("blocks: shape must have at least one filled cell")
	}
	minRow, minCol := cells[0].Row, cells[0].Col
	for _, c := range cells[1:] {
		if c.Row < minRow {
			minRow = c.Row
		}
		if c.Col < minCol {
			minCol = c.Col
		}
	}
	var s Shape
	s.color = color
	for _, c := range cells {
		r, co := c.Row-minRow, c.Col-minCol
		if r < 0 || r >= ShapeGridSize || co < 0 || co >= ShapeGridSize {
			panic("blocks: shape cell outside bounding matrix")
		}
		s.cells[r][co] = true
	}
	return s
}

// Color returns the shape's color.
func (s Shape) Color() ColorName {
	return s.color
}

// Filled reports whether the matrix cell at (row, col) is filled.
// Out-of-range offsets report false.
func (s Shape) Filled(row, col int) bool {
	if row < 0 || row >= ShapeGridSize || col < 0 || col >= ShapeGridSize {
		return false
	}
	return s.cells[row][col]
}

// Cells returns the filled-cell offsets in row-major order.
func (s Shape) Cells() []Cell {
	var out []Cell
	for r := 0; r < ShapeGridSize; r++ {
		for c := 0; c < ShapeGridSize; c++ {
			if s.cells[r][c] {
				out = append(out, Cell{Row: r, Col: c})
			}
		}
	}
	return out
}

// CellCount returns the number of filled cells.
func (s Shape) CellCount() int {
	n := 0
	for r := 0; r < ShapeGridSize; r++ {
		for c := 0; c < ShapeGridSize; c++ {
			if s.cells[r][c] {
				n++
			}
		}
	}
	return n
}

// IsEmpty reports whether the shape has no filled cells. Only the zero
// Shape value is empty; NewShape refuses to build one.
func (s Shape) IsEmpty() bool {
	return s.CellCount() == 0
}

// Bounds returns the minimal bounding box over the filled cells.
// The zero shape yields a zero-size box.
func (s Shape) Bounds() ShapeBounds {
	b := ShapeBounds{MinRow: ShapeGridSize, MinCol: ShapeGridSize, MaxRow: -1, MaxCol: -1}
	for r := 0; r < ShapeGridSize; r++ {
		for c := 0; c < ShapeGridSize; c++ {
			if !s.cells[r][c] {
				continue
			}
			if r < b.MinRow {
				b.MinRow = r
			}
			if r > b.MaxRow {
				b.MaxRow = r
			}
			if c < b.MinCol {
				b.MinCol = c
			}
			if c > b.MaxCol {
				b.MaxCol = c
			}
		}
	}
	if b.MaxRow < 0 {
		return ShapeBounds{}
	}
	b.Width = b.MaxCol - b.MinCol + 1
	b.Height = b.MaxRow - b.MinRow + 1
	return b
}

// Center returns the midpoint of the bounding box. The value is a
// half-integer when the corresponding dimension is even, which lets the
// cursor sit "between" cells for symmetric shapes.
func (s Shape) Center() (row, col float64) {
	b := s.Bounds()
	if b.Width == 0 {
		return 0, 0
	}
	row = float64(b.MinRow) + float64(b.Height-1)/2
	col = float64(b.MinCol) + float64(b.Width-1)/2
	return row, col
}

// Rotate returns the shape turned 90 degrees clockwise. The filled
// pattern is rotated within its bounding box and re-anchored at the
// matrix origin, so four rotations always round-trip to the original
// normalized pattern.
func (s Shape) Rotate() Shape {
	b := s.Bounds()
	if b.Width == 0 {
		return s
	}
	var out Shape
	out.color = s.color
	// Clockwise: cell (r, c) of the h x w box lands at (c, h-1-r) of the
	// rotated w x h box.
	for r := 0; r < b.Height; r++ {
		for c := 0; c < b.Width; c++ {
			if s.cells[b.MinRow+r][b.MinCol+c] {
				out.cells[c][b.Height-1-r] = true
			}
		}
	}
	return out
}

// Orientations returns the distinct rotations of the shape, starting
// from its current orientation. Symmetric shapes yield fewer than four.
func (s Shape) Orientations() []Shape {
	out := []Shape{s}
	cur := s
	for i := 0; i < 3; i++ {
		cur = cur.Rotate()
		dup := false
		for _, seen := range out {
			if seen.cells == cur.cells {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, cur)
		}
	}
	return out
}
