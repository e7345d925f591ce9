package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIndex(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		ix, err := NewIndex([]string{"a", "b"}, [][]float64{{1, 0}, {0, 1}})
		require.NoError(t, err)
		assert.Equal(t, 2, ix.Len())
	})

	t.Run("empty chunks", func(t *testing.T) {
		_, err := NewIndex(nil, nil)
		assert.ErrorIs(t, err, ErrEmptyIndex)
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := NewIndex([]string{"a", "b"}, [][]float64{{1, 0}})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestIndex_Search_Ranking(t *testing.T) {
	ix, err := NewIndex(
		[]string{"exact", "orthogonal", "partial"},
		[][]float64{
			{1, 0},
			{0, 1},
			{0.7071, 0.7071},
		},
	)
	require.NoError(t, err)

	hits := ix.Search([]float64{1, 0}, 3)
	require.Len(t, hits, 3)

	assert.Equal(t, "exact", hits[0].Text)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-9)
	assert.Equal(t, "partial", hits[1].Text)
	assert.Equal(t, "orthogonal", hits[2].Text)

	// Scores must be non-increasing.
	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Score, hits[i].Score)
	}
}

func TestIndex_Search_StableTieBreak(t *testing.T) {
	// Identical vectors produce identical scores; the lower insertion
	// position must rank first.
	ix, err := NewIndex(
		[]string{"first", "second", "third"},
		[][]float64{
			{1, 0},
			{1, 0},
			{1, 0},
		},
	)
	require.NoError(t, err)

	hits := ix.Search([]float64{1, 0}, 3)
	require.Len(t, hits, 3)

	assert.Equal(t, 0, hits[0].Position)
	assert.Equal(t, 1, hits[1].Position)
	assert.Equal(t, 2, hits[2].Position)
}

func TestIndex_Search_KExceedsChunks(t *testing.T) {
	ix, err := NewIndex([]string{"only"}, [][]float64{{1}})
	require.NoError(t, err)

	hits := ix.Search([]float64{1}, 10)
	assert.Len(t, hits, 1)
}

func TestIndex_Search_ZeroK(t *testing.T) {
	ix, err := NewIndex([]string{"only"}, [][]float64{{1}})
	require.NoError(t, err)

	assert.Empty(t, ix.Search([]float64{1}, 0))
	assert.Empty(t, ix.Search([]float64{1}, -1))
}

func TestIndex_Search_ZeroQueryVector(t *testing.T) {
	ix, err := NewIndex([]string{"a", "b"}, [][]float64{{1, 0}, {0, 1}})
	require.NoError(t, err)

	hits := ix.Search([]float64{0, 0}, 2)
	require.Len(t, hits, 2)
	for _, h := range hits {
		assert.Zero(t, h.Score)
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1.0},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0.0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1.0},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0.0},
		{"unnormalized query", []float64{2, 0}, []float64{1, 0}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, cosine(tt.a, tt.b), 1e-9)
		})
	}
}
