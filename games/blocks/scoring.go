package blocks

// ScoreTable maps per-axis combo tiers to points. Rows and columns carry
// separate tier tables so they stay independently tunable, even though
// the defaults match. Index 0 is the single-line tier, index 3 covers
// four or more lines.
type ScoreTable struct {
	RowTiers       [4]int
	ColumnTiers    [4]int
	FullBoardBonus int
}

// DefaultScoreTable mirrors the classic tier values.
var DefaultScoreTable = ScoreTable{
	RowTiers:       [4]int{10, 30, 60, 100},
	ColumnTiers:    [4]int{10, 30, 60, 100},
	FullBoardBonus: 300,
}

// comboTier maps a cleared-line count to a tier index, clamping at the
// "4 or more" tier. Returns -1 for zero lines.
func comboTier(lines int) int {
	if lines <= 0 {
		return -1
	}
	if lines > 4 {
		return 3
	}
	return lines - 1
}

// CalculateScore converts per-axis cleared-line counts into points.
// Axes score independently and sum; there is no cross-axis discount.
// The full-board bonus is added by the clearing pass, not here.
func (t ScoreTable) CalculateScore(clearedRows, clearedCols int) int {
	points := 0
	if tier := comboTier(clearedRows); tier >= 0 {
		points += t.RowTiers[tier]
	}
	if tier := comboTier(clearedCols); tier >= 0 {
		points += t.ColumnTiers[tier]
	}
	return points
}
