package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "data.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_GetMissingKey(t *testing.T) {
	store := newTestStore(t)

	value, found, err := store.Get(context.Background(), "nope")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, value)
}

func TestSQLiteStore_SetAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "plan", `{"goal":"less scrolling"}`))

	value, found, err := store.Get(ctx, "plan")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"goal":"less scrolling"}`, value)
}

func TestSQLiteStore_SetOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "stats", `{"xp":0}`))
	require.NoError(t, store.Set(ctx, "stats", `{"xp":150}`))

	value, found, err := store.Get(ctx, "stats")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `{"xp":150}`, value)
}

func TestSQLiteStore_Remove(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "pointer", "abc"))
	require.NoError(t, store.Remove(ctx, "pointer"))

	_, found, err := store.Get(ctx, "pointer")
	require.NoError(t, err)
	assert.False(t, found)

	// Removing an absent key is not an error.
	assert.NoError(t, store.Remove(ctx, "pointer"))
}

func TestSQLiteStore_RemoveMany(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", "1"))
	require.NoError(t, store.Set(ctx, "b", "2"))
	require.NoError(t, store.Set(ctx, "c", "3"))

	require.NoError(t, store.RemoveMany(ctx, []string{"a", "b", "missing"}))

	_, found, _ := store.Get(ctx, "a")
	assert.False(t, found)
	_, found, _ = store.Get(ctx, "b")
	assert.False(t, found)
	_, found, _ = store.Get(ctx, "c")
	assert.True(t, found)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "plan", "keep"))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	value, found, err := reopened.Get(ctx, "plan")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "keep", value)
}
