package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacjstriker/blockdrop/internal/types"
)

func TestGamesMapBuildsEveryMode(t *testing.T) {
	require.Contains(t, Games, "classic")
	require.Contains(t, Games, "adventure")

	for name, build := range Games {
		game := build()
		require.NotNil(t, game, name)
		assert.NotEmpty(t, game.GetName(), name)
		assert.NotEmpty(t, game.GetDescription(), name)
		assert.True(t, game.IsAvailable(), name)
	}
}

func TestGetGameList(t *testing.T) {
	list := GetGameList()
	assert.Len(t, list, len(Games))
	assert.ElementsMatch(t, []string{"classic", "adventure"}, list)
}

func TestRegistryFiltersUnavailableGames(t *testing.T) {
	reg := NewGameRegistry()
	reg.RegisterGame(Games["classic"]())
	reg.RegisterGame(Games["adventure"]())

	assert.Equal(t, 2, reg.GetGameCount())
	assert.Len(t, reg.GetRandomOrder(), 2)
}

func TestChallengeStatsCollect(t *testing.T) {
	var stats ChallengeStats

	stats.Collect(nil)
	assert.Equal(t, 0, stats.GamesPlayed)

	stats.Collect(&types.GameResult{Score: 120, Duration: 30.5})
	stats.Collect(&types.GameResult{Score: 80, Duration: 12.0, Perfect: true})

	assert.Equal(t, 200, stats.TotalScore)
	assert.Equal(t, 2, stats.GamesPlayed)
	assert.Equal(t, 42.5, stats.TotalDuration)
	assert.Equal(t, 1, stats.PerfectGames)
	assert.Len(t, stats.Results, 2)
}
