package blocks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacjstriker/blockdrop/games/blocks"
)

func square2() blocks.Shape {
	return blocks.NewShape([]blocks.Cell{
		{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 1},
	}, blocks.ColorRed)
}

func TestIsValidPlacement(t *testing.T) {
	board := blocks.NewBoard().WithBlock(5, 5, blocks.ColorBlue)
	shape := square2()

	tests := []struct {
		name string
		pos  blocks.Position
		want bool
	}{
		{"open area", blocks.Position{Row: 1, Col: 1}, true},
		{"bottom-right corner", blocks.Position{Row: 9, Col: 9}, true},
		{"off the right edge", blocks.Position{Row: 1, Col: 10}, false},
		{"off the bottom edge", blocks.Position{Row: 10, Col: 1}, false},
		{"above the board", blocks.Position{Row: 0, Col: 1}, false},
		{"overlaps filled tile", blocks.Position{Row: 5, Col: 5}, false},
		{"overlaps via second cell", blocks.Position{Row: 4, Col: 4}, false},
		{"adjacent to filled tile", blocks.Position{Row: 6, Col: 6}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := blocks.IsValidPlacement(shape, tt.pos, board, blocks.ModeClassic)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEmptyShapeIsNeverPlaceable(t *testing.T) {
	var empty blocks.Shape
	assert.False(t, blocks.IsValidPlacement(empty, blocks.Position{Row: 1, Col: 1}, blocks.NewBoard(), blocks.ModeClassic))
}

func TestPlaceShapeStampsCells(t *testing.T) {
	board := blocks.NewBoard()
	placed, ok := blocks.PlaceShape(board, square2(), blocks.Position{Row: 3, Col: 4}, blocks.ModeClassic)
	require.True(t, ok)

	assert.True(t, board.IsEmpty(), "input board must not change")
	assert.Equal(t, 4, placed.FilledCount())
	for _, want := range [][2]int{{3, 4}, {3, 5}, {4, 4}, {4, 5}} {
		tile, ok := placed.Tile(want[0], want[1])
		require.True(t, ok)
		assert.True(t, tile.Block.Filled, "tile %v", want)
		assert.Equal(t, blocks.ColorRed, tile.Block.Color)
	}
}

func TestPlaceShapeRejectsInvalidPlacement(t *testing.T) {
	board := blocks.NewBoard().WithBlock(1, 1, blocks.ColorGreen)

	same, ok := blocks.PlaceShape(board, square2(), blocks.Position{Row: 1, Col: 1}, blocks.ModeClassic)
	assert.False(t, ok)
	assert.Equal(t, board.FilledCount(), same.FilledCount())
}

func TestPlaceShapeLineHugsTheEdge(t *testing.T) {
	line := blocks.NewShape([]blocks.Cell{
		{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 0, Col: 3},
	}, blocks.ColorBlue)

	_, ok := blocks.PlaceShape(blocks.NewBoard(), line, blocks.Position{Row: 1, Col: 7}, blocks.ModeClassic)
	assert.True(t, ok)
	_, ok = blocks.PlaceShape(blocks.NewBoard(), line, blocks.Position{Row: 1, Col: 8}, blocks.ModeClassic)
	assert.False(t, ok)
}
