package blocks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/isaacjstriker/blockdrop/games/blocks"
)

// boardWithHoles fills the whole board except the listed coordinates.
func boardWithHoles(holes ...[2]int) blocks.Board {
	skip := map[[2]int]bool{}
	for _, h := range holes {
		skip[h] = true
	}
	board := blocks.NewBoard()
	for r := 1; r <= blocks.BoardSize; r++ {
		for c := 1; c <= blocks.BoardSize; c++ {
			if skip[[2]int{r, c}] {
				continue
			}
			board = board.WithBlock(r, c, blocks.ColorBlue)
		}
	}
	return board
}

func TestCheckGameOverSingleHole(t *testing.T) {
	board := boardWithHoles([2]int{5, 5})

	single := blocks.NewShape([]blocks.Cell{{Row: 0, Col: 0}}, blocks.ColorRed)
	assert.False(t, blocks.CheckGameOver(board, []blocks.Shape{single}, nil, blocks.ModeClassic))

	assert.True(t, blocks.CheckGameOver(board, []blocks.Shape{square2()}, nil, blocks.ModeClassic))
}

func TestCheckGameOverAnyShapeFittingPreventsLoss(t *testing.T) {
	board := boardWithHoles([2]int{5, 5})
	single := blocks.NewShape([]blocks.Cell{{Row: 0, Col: 0}}, blocks.ColorRed)

	shapes := []blocks.Shape{square2(), single, square2()}
	assert.False(t, blocks.CheckGameOver(board, shapes, nil, blocks.ModeClassic))
}

func TestCheckGameOverEmptyQueueIsNotALoss(t *testing.T) {
	board := boardWithHoles()
	assert.False(t, blocks.CheckGameOver(board, nil, nil, blocks.ModeClassic))
}

func TestCheckGameOverEmptyBoardNeverLoses(t *testing.T) {
	templates := blocks.Templates()
	shapes := make([]blocks.Shape, 0, len(templates))
	for _, s := range templates {
		shapes = append(shapes, blocks.NewShape(s.Cells(), blocks.ColorGreen))
	}
	assert.False(t, blocks.CheckGameOver(blocks.NewBoard(), shapes, nil, blocks.ModeClassic))
}

func TestCheckGameOverRotationUnlockOpensPlacements(t *testing.T) {
	// Only a horizontal 3-wide gap remains. A vertical triomino fits
	// nowhere as-is, but rotates into the gap when its slot allows it.
	board := boardWithHoles([2]int{2, 4}, [2]int{2, 5}, [2]int{2, 6})
	vertical := blocks.NewShape([]blocks.Cell{
		{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0},
	}, blocks.ColorYellow)

	shapes := []blocks.Shape{vertical}
	assert.True(t, blocks.CheckGameOver(board, shapes, []bool{false}, blocks.ModeClassic))
	assert.False(t, blocks.CheckGameOver(board, shapes, []bool{true}, blocks.ModeClassic))
}
