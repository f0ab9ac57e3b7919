package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_ReadMissingReturnsNotFound(t *testing.T) {
	store := NewFileStore(t.TempDir())
	_, err := store.Read(context.Background(), "sync-cache.json")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_RoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "sync-cache.json", []byte(`{"a":1}`)))

	data, err := store.Read(ctx, "sync-cache.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(data))

	// Overwrite replaces, never appends.
	require.NoError(t, store.Write(ctx, "sync-cache.json", []byte(`{"b":2}`)))
	data, err = store.Read(ctx, "sync-cache.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":2}`, string(data))
}

func TestFileStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	store := NewFileStore(dir)

	require.NoError(t, store.Write(context.Background(), "doc.json", []byte(`{}`)))

	_, err := os.Stat(filepath.Join(dir, "doc.json"))
	assert.NoError(t, err)
}

func TestFileStore_LeavesNoTempFileBehind(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	require.NoError(t, store.Write(context.Background(), "doc.json", []byte(`{}`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "doc.json", entries[0].Name())
}
