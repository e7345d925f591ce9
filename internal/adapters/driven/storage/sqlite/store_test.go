package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/domain"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewRegistry(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = reg.Close() })
	return reg
}

func TestNewRegistry(t *testing.T) {
	reg := newTestRegistry(t)
	assert.NotEmpty(t, reg.Path())
}

func TestRegistry_SaveAndGet(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	doc := &domain.Document{
		Name:       "report",
		Filename:   "report.txt",
		SizeBytes:  2048,
		PageCount:  3,
		ChunkCount: 12,
		Summary:    "Quarterly results.",
	}
	require.NoError(t, reg.Save(ctx, doc))

	got, err := reg.Get(ctx, "report")
	require.NoError(t, err)
	assert.Equal(t, "report", got.Name)
	assert.Equal(t, "report.txt", got.Filename)
	assert.Equal(t, int64(2048), got.SizeBytes)
	assert.Equal(t, 3, got.PageCount)
	assert.Equal(t, 12, got.ChunkCount)
	assert.Equal(t, "Quarterly results.", got.Summary)
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestRegistry_Get_NotFound(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := reg.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistry_Save_Upsert(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	doc := &domain.Document{Name: "report", Filename: "report.txt", ChunkCount: 5}
	require.NoError(t, reg.Save(ctx, doc))
	created := doc.CreatedAt

	doc.ChunkCount = 9
	require.NoError(t, reg.Save(ctx, doc))

	got, err := reg.Get(ctx, "report")
	require.NoError(t, err)
	assert.Equal(t, 9, got.ChunkCount)
	assert.Equal(t, created.Unix(), got.CreatedAt.Unix())
}

func TestRegistry_List_OrderedByUpdate(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, reg.Save(ctx, &domain.Document{Name: "older", Filename: "older.txt"}))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, reg.Save(ctx, &domain.Document{Name: "newer", Filename: "newer.txt"}))

	docs, err := reg.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	// Most recently updated first.
	assert.Equal(t, "newer", docs[0].Name)
	assert.Equal(t, "older", docs[1].Name)
}

func TestRegistry_List_Empty(t *testing.T) {
	reg := newTestRegistry(t)

	docs, err := reg.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestRegistry_Delete(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, reg.Save(ctx, &domain.Document{Name: "report", Filename: "report.txt"}))
	require.NoError(t, reg.Delete(ctx, "report"))

	_, err := reg.Get(ctx, "report")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Deleting again is a no-op.
	require.NoError(t, reg.Delete(ctx, "report"))
}

func TestRegistry_MigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()

	first, err := NewRegistry(dir)
	require.NoError(t, err)
	require.NoError(t, first.Save(context.Background(), &domain.Document{Name: "doc", Filename: "doc.txt"}))
	require.NoError(t, first.Close())

	// Reopening runs migrate again; already-applied versions are skipped.
	second, err := NewRegistry(dir)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Get(context.Background(), "doc")
	require.NoError(t, err)
	assert.Equal(t, "doc", got.Name)
}
