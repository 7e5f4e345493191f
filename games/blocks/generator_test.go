package blocks_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacjstriker/blockdrop/games/blocks"
)

func TestGeneratorIsDeterministicForASeed(t *testing.T) {
	a := blocks.NewGenerator(rand.New(rand.NewSource(42)), blocks.DefaultColorWeights)
	b := blocks.NewGenerator(rand.New(rand.NewSource(42)), blocks.DefaultColorWeights)

	for i := 0; i < 50; i++ {
		sa, sb := a.Next(), b.Next()
		assert.Equal(t, sa.Cells(), sb.Cells(), "draw %d", i)
		assert.Equal(t, sa.Color(), sb.Color(), "draw %d", i)
	}
}

func TestGeneratorShapesAreAlwaysValid(t *testing.T) {
	gen := blocks.NewGenerator(rand.New(rand.NewSource(7)), blocks.DefaultColorWeights)

	for i := 0; i < 200; i++ {
		s := gen.Next()
		require.False(t, s.IsEmpty())
		require.NotEqual(t, blocks.ColorNone, s.Color())
		b := s.Bounds()
		require.Equal(t, 0, b.MinRow)
		require.Equal(t, 0, b.MinCol)
	}
}

func TestGeneratorRespectsColorWeights(t *testing.T) {
	gen := blocks.NewGenerator(rand.New(rand.NewSource(1)), []blocks.ColorWeight{
		{Color: blocks.ColorRed, Weight: 9},
		{Color: blocks.ColorBlue, Weight: 1},
	})

	counts := map[blocks.ColorName]int{}
	const draws = 2000
	for i := 0; i < draws; i++ {
		counts[gen.Next().Color()]++
	}

	assert.Equal(t, draws, counts[blocks.ColorRed]+counts[blocks.ColorBlue])
	// 9:1 weighting; allow wide slack so the test never flakes on a seed.
	assert.Greater(t, counts[blocks.ColorRed], draws*7/10)
	assert.Greater(t, counts[blocks.ColorBlue], 0)
}

func TestGeneratorCoversTheCatalog(t *testing.T) {
	gen := blocks.NewGenerator(rand.New(rand.NewSource(3)), blocks.DefaultColorWeights)

	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		s := gen.Next()
		key := ""
		for _, c := range s.Cells() {
			key += string(rune('a'+c.Row)) + string(rune('a'+c.Col))
		}
		seen[key] = true
	}
	assert.Len(t, seen, gen.TemplateCount())
}

func TestNewGeneratorPanics(t *testing.T) {
	assert.Panics(t, func() {
		blocks.NewGenerator(nil, blocks.DefaultColorWeights)
	})
	assert.Panics(t, func() {
		blocks.NewGenerator(rand.New(rand.NewSource(1)), nil)
	})
	assert.Panics(t, func() {
		blocks.NewGenerator(rand.New(rand.NewSource(1)), []blocks.ColorWeight{{Color: blocks.ColorRed, Weight: 0}})
	})
}
