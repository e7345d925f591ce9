package index

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/domain"
)

func newTestIndex(t *testing.T) *domain.Index {
	t.Helper()
	ix, err := domain.NewIndex(
		[]string{"the cat sat", "the dog ran"},
		[][]float64{{0.6, 0.8}, {0.8, 0.6}},
	)
	require.NoError(t, err)
	return ix
}

func TestNewStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "indexes")

	store, err := NewStore(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, store.Root())
	assert.DirExists(t, dir)
}

func TestStore_SaveLoad_RoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	original := newTestIndex(t)
	require.NoError(t, store.Save(ctx, "doc", original))

	loaded, err := store.Load(ctx, "doc")
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, original.Chunks, loaded.Chunks)
	assert.Equal(t, original.Vectors, loaded.Vectors)

	// Search results must be bit-identical across the round trip.
	query := []float64{1, 0}
	assert.Equal(t, original.Search(query, 2), loaded.Search(query, 2))
}

func TestStore_Load_Absent(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	ix, err := store.Load(context.Background(), "never-ingested")
	require.NoError(t, err)
	assert.Nil(t, ix)
}

func TestStore_Load_Corrupted(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	dir := filepath.Join(store.Root(), "doc")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.gob"), []byte("not gob"), 0o644))

	_, err = store.Load(context.Background(), "doc")
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestStore_Save_Replaces(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "doc", newTestIndex(t)))

	smaller, err := domain.NewIndex([]string{"only"}, [][]float64{{1}})
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "doc", smaller))

	loaded, err := store.Load(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Len())
}

func TestStore_Delete(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "doc", newTestIndex(t)))
	assert.True(t, store.Exists(ctx, "doc"))

	require.NoError(t, store.Delete(ctx, "doc"))
	assert.False(t, store.Exists(ctx, "doc"))

	// Deleting again is a no-op.
	require.NoError(t, store.Delete(ctx, "doc"))
}

func TestStore_Exists(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	assert.False(t, store.Exists(ctx, "doc"))
	require.NoError(t, store.Save(ctx, "doc", newTestIndex(t)))
	assert.True(t, store.Exists(ctx, "doc"))
}

func TestStore_NoTempFilesLeftBehind(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "doc", newTestIndex(t)))

	entries, err := os.ReadDir(filepath.Join(store.Root(), "doc"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "index.gob", entries[0].Name())
}
