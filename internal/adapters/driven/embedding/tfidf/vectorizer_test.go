package tfidf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/domain"
)

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		v := New()
		assert.Equal(t, DefaultMaxFeatures, v.maxFeatures)
		assert.False(t, v.Fitted())
		assert.Equal(t, 0, v.Dimension())
	})

	t.Run("custom max features", func(t *testing.T) {
		v := New(WithMaxFeatures(50))
		assert.Equal(t, 50, v.maxFeatures)
	})

	t.Run("invalid max features ignored", func(t *testing.T) {
		v := New(WithMaxFeatures(0))
		assert.Equal(t, DefaultMaxFeatures, v.maxFeatures)
	})
}

func TestVectorizer_Transform_BeforeFit(t *testing.T) {
	v := New()

	_, err := v.Transform("anything")
	assert.ErrorIs(t, err, domain.ErrNotFitted)
}

func TestVectorizer_FitTransform(t *testing.T) {
	v := New()
	corpus := []string{
		"the cat sat on the mat",
		"the dog chased the cat",
		"birds fly south in winter",
	}

	vectors, err := v.FitTransform(corpus)
	require.NoError(t, err)
	require.Len(t, vectors, 3)

	assert.True(t, v.Fitted())
	assert.Greater(t, v.Dimension(), 0)

	for _, vec := range vectors {
		assert.Len(t, vec, v.Dimension())
	}
}

func TestVectorizer_FitTransform_EmptyCorpus(t *testing.T) {
	v := New()

	_, err := v.FitTransform(nil)
	assert.ErrorIs(t, err, domain.ErrEmptyInput)
}

func TestVectorizer_Vectors_L2Normalized(t *testing.T) {
	v := New()

	vectors, err := v.FitTransform([]string{
		"alpha beta gamma",
		"delta epsilon zeta",
	})
	require.NoError(t, err)

	for _, vec := range vectors {
		var norm float64
		for _, x := range vec {
			norm += x * x
		}
		assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)
	}
}

func TestVectorizer_FitOnce(t *testing.T) {
	v := New()

	_, err := v.FitTransform([]string{"cats chase mice", "mice hide well"})
	require.NoError(t, err)
	dim := v.Dimension()

	// A second corpus with entirely different vocabulary must not grow
	// the vocabulary; its unknown terms are dropped.
	vectors, err := v.FitTransform([]string{"quantum flux dynamics"})
	require.NoError(t, err)
	assert.Equal(t, dim, v.Dimension())

	for _, x := range vectors[0] {
		assert.Zero(t, x)
	}
}

func TestVectorizer_Transform_Deterministic(t *testing.T) {
	v := New()

	_, err := v.FitTransform([]string{"cats chase mice around the garden"})
	require.NoError(t, err)

	a, err := v.Transform("cats in the garden")
	require.NoError(t, err)
	b, err := v.Transform("cats in the garden")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestVectorizer_Stopwords(t *testing.T) {
	v := New()

	_, err := v.FitTransform([]string{"the cat and the dog"})
	require.NoError(t, err)

	// Only "cat", "dog" and the bigram "cat dog" survive.
	assert.Equal(t, 3, v.Dimension())
}

func TestVectorizer_Bigrams(t *testing.T) {
	v := New()

	_, err := v.FitTransform([]string{"machine learning"})
	require.NoError(t, err)

	// "machine", "learning", "machine learning"
	assert.Equal(t, 3, v.Dimension())

	vec, err := v.Transform("machine learning")
	require.NoError(t, err)

	var nonZero int
	for _, x := range vec {
		if x != 0 {
			nonZero++
		}
	}
	assert.Equal(t, 3, nonZero)
}

func TestVectorizer_MaxFeatures(t *testing.T) {
	v := New(WithMaxFeatures(2))

	// "cat" appears three times, "dog" twice, everything else once.
	_, err := v.FitTransform([]string{
		"cat dog", "cat dog", "cat fish",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, v.Dimension())

	vec, err := v.Transform("cat dog fish")
	require.NoError(t, err)

	var nonZero int
	for _, x := range vec {
		if x != 0 {
			nonZero++
		}
	}
	// "fish" fell outside the capped vocabulary.
	assert.Equal(t, 2, nonZero)
}

func TestVectorizer_SimilarTextsScoreHigher(t *testing.T) {
	v := New()

	vectors, err := v.FitTransform([]string{
		"the cat sat on the mat",
		"the dog barked at the mailman",
	})
	require.NoError(t, err)

	query, err := v.Transform("where did the cat sit")
	require.NoError(t, err)

	catScore := dot(query, vectors[0])
	dogScore := dot(query, vectors[1])
	assert.Greater(t, catScore, dogScore)
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
