package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	// Check that the file was created along with its directory
	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	id, err := store.SaveReplay("tetris", core.Recording{Seed: 7, Commands: []string{"start"}})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	e, err := store.Replay(id)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, int64(7), e.Seed)
}

func TestSaveAndLoadReplay(t *testing.T) {
	store := openTestStore(t)

	rec := core.Recording{
		Seed:     -42,
		Commands: []string{"start", "tick", "moveLeft", "rotate", "tick"},
		Score:    30,
		Lines:    3,
	}
	id, err := store.SaveReplay("tetris_classic", rec)
	require.NoError(t, err)
	assert.Positive(t, id)

	e, err := store.Replay(id)
	require.NoError(t, err)
	require.NotNil(t, e)

	assert.Equal(t, "tetris_classic", e.GameID)
	assert.Equal(t, rec, e.Recording())
	assert.False(t, e.CreatedAt.IsZero())
}

func TestReplayMissing(t *testing.T) {
	store := openTestStore(t)

	e, err := store.Replay(999)
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestRecentReplaysOrder(t *testing.T) {
	store := openTestStore(t)

	for i, game := range []string{"tetris", "tetris_classic", "tetris"} {
		_, err := store.SaveReplay(game, core.Recording{Seed: int64(i), Commands: []string{"start"}, Score: i * 10})
		require.NoError(t, err)
	}

	all, err := store.RecentReplays(10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Same-second inserts fall back to id order, newest first.
	assert.Equal(t, int64(2), all[0].Seed)
	assert.Equal(t, int64(0), all[2].Seed)

	limited, err := store.RecentReplays(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	shadow, err := store.ReplaysForGame("tetris", 0)
	require.NoError(t, err)
	require.Len(t, shadow, 2)
	for _, e := range shadow {
		assert.Equal(t, "tetris", e.GameID)
	}
}

func TestDeleteReplay(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveReplay("tetris", core.Recording{Commands: []string{"start"}})
	require.NoError(t, err)

	require.NoError(t, store.DeleteReplay(id))
	e, err := store.Replay(id)
	require.NoError(t, err)
	assert.Nil(t, e)

	// Deleting again is fine.
	assert.NoError(t, store.DeleteReplay(id))
}

func TestEmptyCommands(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveReplay("tetris", core.Recording{Seed: 1})
	require.NoError(t, err)

	e, err := store.Replay(id)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Empty(t, e.Commands)
}

func TestGetAllGamesStats(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveReplay("tetris", core.Recording{Lines: 4})
	require.NoError(t, err)
	_, err = store.SaveReplay("tetris", core.Recording{Lines: 6})
	require.NoError(t, err)
	_, err = store.SaveReplay("tetris_classic", core.Recording{Lines: 1})
	require.NoError(t, err)

	stats, err := store.GetAllGamesStats()
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, 2, stats["tetris"].Rounds)
	assert.Equal(t, int64(10), stats["tetris"].TotalLines)
	assert.Equal(t, 1, stats["tetris_classic"].Rounds)
}
