package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Connect(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.CreateTables())
	return db
}

func TestConnectRejectsEmptyURL(t *testing.T) {
	_, err := Connect("")
	assert.Error(t, err)
}

func TestConnectTrimsSQLiteScheme(t *testing.T) {
	db, err := Connect("sqlite://" + filepath.Join(t.TempDir(), "scheme.db"))
	require.NoError(t, err)
	defer db.Close()
	assert.NoError(t, db.CreateTables())
}

func TestRebindOnlyTouchesPostgres(t *testing.T) {
	sqlite := &DB{dbType: "sqlite3"}
	assert.Equal(t, "SELECT ? FROM t WHERE a = ?", sqlite.rebind("SELECT ? FROM t WHERE a = ?"))

	pg := &DB{dbType: "postgres"}
	assert.Equal(t, "SELECT $1 FROM t WHERE a = $2", pg.rebind("SELECT ? FROM t WHERE a = ?"))
	assert.Equal(t, "no placeholders", pg.rebind("no placeholders"))
}

func TestCreateUserAndLookup(t *testing.T) {
	db := testDB(t)

	user, err := db.CreateUser("rowan", "rowan@example.com", "hash123")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	found, hash, err := db.GetUserByUsername("rowan")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "rowan@example.com", found.Email)
	assert.Equal(t, "hash123", hash)

	_, _, err = db.GetUserByUsername("nobody")
	assert.Error(t, err)
}

func TestCreateUserRejectsDuplicates(t *testing.T) {
	db := testDB(t)

	_, err := db.CreateUser("dup", "dup@example.com", "h")
	require.NoError(t, err)
	_, err = db.CreateUser("dup", "other@example.com", "h")
	assert.Error(t, err)
}

func TestSaveScoreAndLeaderboard(t *testing.T) {
	db := testDB(t)

	alice, err := db.CreateUser("alice", "alice@example.com", "h")
	require.NoError(t, err)
	bob, err := db.CreateUser("bob", "bob@example.com", "h")
	require.NoError(t, err)

	for _, s := range []struct {
		userID int
		score  int
	}{
		{alice.ID, 100}, {alice.ID, 300}, {bob.ID, 250},
	} {
		require.NoError(t, db.SaveGameScore(s.userID, "blocks", s.score, map[string]interface{}{"mode": "classic"}))
	}

	entries, err := db.GetLeaderboard("blocks", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "alice", entries[0].Username)
	assert.Equal(t, 300, entries[0].BestScore)
	assert.Equal(t, 2, entries[0].GamesPlayed)
	assert.Equal(t, "bob", entries[1].Username)

	recent, err := db.GetRecentGames("blocks", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	for _, gs := range recent {
		assert.Equal(t, "classic", gs.AdditionalData["mode"])
	}

	empty, err := db.GetLeaderboard("other-game", 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGetUserStatsWithoutGames(t *testing.T) {
	db := testDB(t)

	user, err := db.CreateUser("fresh", "fresh@example.com", "h")
	require.NoError(t, err)

	stats, err := db.GetUserStats(user.ID, "blocks")
	require.NoError(t, err)
	assert.Equal(t, "fresh", stats.Username)
	assert.Equal(t, 0, stats.BestScore)
	assert.Equal(t, 0, stats.GamesPlayed)
}

func TestPlayerSettingsRoundTrip(t *testing.T) {
	db := testDB(t)

	user, err := db.CreateUser("saver", "saver@example.com", "h")
	require.NoError(t, err)

	// Defaults before anything is stored.
	settings, err := db.GetPlayerSettings(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, settings.UnlockedSlots)
	assert.Equal(t, "infinite", settings.QueueMode)

	settings.UnlockedSlots = 3
	settings.QueueMode = "finite"
	require.NoError(t, db.SavePlayerSettings(settings))

	loaded, err := db.GetPlayerSettings(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.UnlockedSlots)
	assert.Equal(t, "finite", loaded.QueueMode)

	// Upserting again overwrites.
	loaded.UnlockedSlots = 4
	require.NoError(t, db.SavePlayerSettings(loaded))
	again, err := db.GetPlayerSettings(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, again.UnlockedSlots)
}

func TestParseDBTime(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	assert.Equal(t, now, parseDBTime(now))
	assert.Equal(t, now, parseDBTime("2025-03-14 09:26:53"))
	assert.Equal(t, now, parseDBTime([]byte("2025-03-14T09:26:53Z")))
	// Garbage falls back to the current time rather than failing.
	assert.WithinDuration(t, time.Now(), parseDBTime("not a time"), time.Minute)
}
