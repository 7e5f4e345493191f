package blocks

// CheckGameOver reports whether none of the given shapes can be placed
// anywhere on the board. An empty shape list is not a loss; the queue is
// refilled elsewhere. Shapes whose slot has the rotation menu unlocked
// are tried in all four orientations, the rest only as-is.
//
// The search is a plain brute force over every candidate origin. A
// shape's matrix origin may legally sit outside the board while all its
// filled cells land inside, so the range extends to -(ShapeGridSize-1)
// on each axis.
func CheckGameOver(board Board, shapes []Shape, rotationUnlocked []bool, mode Mode) bool {
	if len(shapes) == 0 {
		return false
	}
	for i, shape := range shapes {
		if shape.IsEmpty() {
			continue
		}
		orientations := []Shape{shape}
		if i < len(rotationUnlocked) && rotationUnlocked[i] {
			orientations = shape.Orientations()
		}
		for _, o := range orientations {
			if hasAnyPlacement(o, board, mode) {
				return false
			}
		}
	}
	return true
}

func hasAnyPlacement(shape Shape, board Board, mode Mode) bool {
	for row := -(ShapeGridSize - 1); row <= BoardSize; row++ {
		for col := -(ShapeGridSize - 1); col <= BoardSize; col++ {
			if IsValidPlacement(shape, Position{Row: row, Col: col}, board, mode) {
				return true
			}
		}
	}
	return false
}
