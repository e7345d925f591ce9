package domain

import (
	"fmt"
	"math"
	"sort"
)

// Index is the similarity index for exactly one document: the ordered
// chunk texts plus the matching matrix of chunk vectors. It is immutable
// after construction except through a full rebuild.
type Index struct {
	// Chunks holds the chunk texts in insertion order.
	Chunks []string

	// Vectors holds one L2-normalized vector per chunk.
	// Invariant: len(Chunks) == len(Vectors).
	Vectors [][]float64
}

// Hit is a single similarity search result.
type Hit struct {
	// Text is the matched chunk content.
	Text string

	// Position is the chunk's original insertion index.
	Position int

	// Score is the cosine similarity against the query vector.
	Score float64
}

// NewIndex builds an index from chunk texts and their vectors.
// Returns ErrEmptyIndex when chunks is empty and ErrInvalidInput when
// the two sequences disagree in length.
func NewIndex(chunks []string, vectors [][]float64) (*Index, error) {
	if len(chunks) == 0 {
		return nil, ErrEmptyIndex
	}
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("%w: %d chunks but %d vectors", ErrInvalidInput, len(chunks), len(vectors))
	}
	return &Index{Chunks: chunks, Vectors: vectors}, nil
}

// Len returns the number of chunks in the index.
func (ix *Index) Len() int {
	return len(ix.Chunks)
}

// Search computes cosine similarity between the query vector and every
// stored chunk vector, returning the k highest-scoring hits in descending
// score order. Among equal scores the chunk with the lower insertion
// position ranks first. When k exceeds the chunk count all chunks are
// returned; k <= 0 yields no hits.
func (ix *Index) Search(query []float64, k int) []Hit {
	if k <= 0 || len(ix.Chunks) == 0 {
		return nil
	}

	hits := make([]Hit, len(ix.Chunks))
	for i, vec := range ix.Vectors {
		hits[i] = Hit{
			Text:     ix.Chunks[i],
			Position: i,
			Score:    cosine(query, vec),
		}
	}

	// SliceStable keeps insertion order among equal scores.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k]
}

// cosine returns the cosine similarity of two vectors. Stored vectors
// are L2-normalized, but the query may not be, so both norms are computed.
func cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}
	for _, v := range a {
		normA += v * v
	}
	for _, v := range b {
		normB += v * v
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
