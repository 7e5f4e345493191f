package blocks_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacjstriker/blockdrop/games/blocks"
)

func TestStateSnapshotShape(t *testing.T) {
	g := newTestGame(20)
	state := g.State()

	require.Len(t, state.Board, blocks.BoardSize)
	for _, row := range state.Board {
		require.Len(t, row, blocks.BoardSize)
	}
	assert.Equal(t, 0, state.Score)
	assert.False(t, state.GameOver)
	assert.Equal(t, [2]int{6, 6}, state.Cursor)
	assert.Nil(t, state.LastClear)

	require.Len(t, state.Queue, blocks.MaxQueueSlots)
	assert.Equal(t, "shape", state.Queue[0].Kind)
	assert.NotEmpty(t, state.Queue[0].Cells)
	assert.NotEmpty(t, state.Queue[0].Color)
	for i, slot := range state.Queue[1:] {
		assert.Equal(t, "slot", slot.Kind, "slot %d", i+1)
		assert.Equal(t, blocks.SlotCost(i+2), slot.Cost)
	}
}

func TestStateReflectsPlacedBlocks(t *testing.T) {
	g := newTestGame(21)
	shape, ok := g.SelectedShape()
	require.True(t, ok)

	_, ok = g.PlaceSelected()
	require.True(t, ok)

	state := g.State()
	filled := 0
	for _, row := range state.Board {
		for _, cell := range row {
			if cell != "" {
				filled++
				assert.Equal(t, string(shape.Color()), cell)
			}
		}
	}
	assert.Equal(t, shape.CellCount(), filled)
}

func TestStateMarshalsToStableJSON(t *testing.T) {
	g := newTestGame(22)
	raw, err := json.Marshal(g.State())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, key := range []string{"board", "queue", "score", "cursor", "selected", "gameOver"} {
		assert.Contains(t, decoded, key)
	}
	assert.NotContains(t, decoded, "lastClear", "omitted until a clear happens")
}

func TestHandleWebInputDrivesTheSession(t *testing.T) {
	g := newTestGame(23)

	g.HandleWebInput("up")
	g.HandleWebInput("left")
	row, col := g.Cursor()
	assert.Equal(t, 5, row)
	assert.Equal(t, 5, col)

	g.HandleWebInput("down")
	g.HandleWebInput("right")
	row, col = g.Cursor()
	assert.Equal(t, 6, row)
	assert.Equal(t, 6, col)

	g.HandleWebInput("next")
	assert.Equal(t, 1, g.Selected())

	before := g.Board().FilledCount()
	g.HandleWebInput("place") // purchasable slot selected, nothing happens
	assert.Equal(t, before, g.Board().FilledCount())

	g.HandleWebInput("unknown") // ignored
	assert.Equal(t, 1, g.Selected())
}

func TestClearStateFlattensTimeline(t *testing.T) {
	g := finishingMoveGame(24)
	result, ok := g.PlaceSelected()
	require.True(t, ok)
	require.True(t, result.IsFullBoardClear)

	state := g.State()
	require.NotNil(t, state.LastClear)
	cs := state.LastClear

	assert.Equal(t, result.ClearedRows, cs.Rows)
	assert.Equal(t, result.ClearedColumns, cs.Columns)
	assert.Equal(t, result.PointsEarned, cs.Points)
	assert.True(t, cs.FullBoard)
	assert.Equal(t, result.Timeline.End.Milliseconds(), cs.EndMs)

	require.Len(t, cs.Lines, len(result.Timeline.Lines))
	for i, line := range result.Timeline.Lines {
		want := "row"
		if line.Axis == blocks.AxisColumn {
			want = "column"
		}
		assert.Equal(t, want, cs.Lines[i].Axis)
		assert.Equal(t, line.Index, cs.Lines[i].Index)
		assert.Equal(t, line.Phase, cs.Lines[i].Phase)
		assert.Equal(t, line.Start.Milliseconds(), cs.Lines[i].StartMs)
		assert.Equal(t, line.Duration.Milliseconds(), cs.Lines[i].DurationMs)
		assert.Equal(t, line.WaveDelay.Milliseconds(), cs.Lines[i].WaveDelayMs)
	}

	require.Len(t, cs.Cues, len(result.Timeline.Cues))
	for i, cue := range result.Timeline.Cues {
		assert.Equal(t, string(cue.Cue), cs.Cues[i].Cue)
		assert.Equal(t, cue.At.Milliseconds(), cs.Cues[i].AtMs)
	}

	assert.True(t, g.Board().IsEmpty())
}
