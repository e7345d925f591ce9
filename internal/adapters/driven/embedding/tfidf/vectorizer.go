// Package tfidf provides a local TF-IDF vectorizer with a fit-once
// vocabulary.
package tfidf

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/domain"
	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/ports/driven"
	"github.com/Iamzain804/Lumina-PDF-Bot/internal/logger"
)

// Ensure Vectorizer implements the interface.
var _ driven.Vectorizer = (*Vectorizer)(nil)

// DefaultMaxFeatures caps the vocabulary size.
const DefaultMaxFeatures = 1000

// Vectorizer converts text into L2-normalized TF-IDF vectors over a
// vocabulary of unigrams and bigrams.
//
// The vocabulary is built exactly once, from the first corpus passed to
// FitTransform, and is immutable afterwards: all later text is projected
// into it and unknown terms are dropped. One vectorizer instance is
// shared per process, so retrieval quality degrades for documents whose
// vocabulary diverges heavily from the first one indexed. Known
// limitation, kept deliberately to bound memory and avoid re-indexing.
type Vectorizer struct {
	mu          sync.RWMutex
	maxFeatures int
	vocabulary  map[string]int
	idf         []float64
	fitted      bool

	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// Option configures the vectorizer.
type Option func(*Vectorizer)

// WithMaxFeatures caps the vocabulary at n terms.
func WithMaxFeatures(n int) Option {
	return func(v *Vectorizer) {
		if n > 0 {
			v.maxFeatures = n
		}
	}
}

// New creates an unfitted vectorizer.
func New(opts ...Option) *Vectorizer {
	v := &Vectorizer{
		maxFeatures:  DefaultMaxFeatures,
		tokenPattern: regexp.MustCompile(`[\p{L}\p{N}]{2,}`),
		stopwords:    defaultStopwords(),
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// FitTransform builds the vocabulary from texts if none exists yet, then
// returns the weighted vector for each input. Later calls reuse the
// existing vocabulary regardless of the corpus supplied.
func (v *Vectorizer) FitTransform(texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, domain.ErrEmptyInput
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.fitted {
		if err := v.fit(texts); err != nil {
			return nil, err
		}
		logger.Debug("TF-IDF vocabulary built: %d terms from %d texts", len(v.vocabulary), len(texts))
	}

	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		vectors[i] = v.transform(text)
	}
	return vectors, nil
}

// Transform projects a single text through the existing vocabulary.
func (v *Vectorizer) Transform(text string) ([]float64, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if !v.fitted {
		return nil, domain.ErrNotFitted
	}
	return v.transform(text), nil
}

// Fitted reports whether a vocabulary has been built.
func (v *Vectorizer) Fitted() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.fitted
}

// Dimension returns the vocabulary size, 0 before fitting.
func (v *Vectorizer) Dimension() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.vocabulary)
}

// fit builds the vocabulary and IDF weights from the corpus.
// Caller must hold the write lock.
func (v *Vectorizer) fit(corpus []string) error {
	counts := make(map[string]int)
	df := make(map[string]int)

	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, term := range v.terms(text) {
			counts[term]++
			if _, ok := seen[term]; !ok {
				seen[term] = struct{}{}
				df[term]++
			}
		}
	}

	if len(counts) == 0 {
		return domain.ErrNoChunks
	}

	// Keep the most frequent terms; ties broken by lexical order.
	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > v.maxFeatures {
		terms = terms[:v.maxFeatures]
	}

	// Column order is lexical over the selected terms, so vector layout
	// is independent of frequency ranking.
	sort.Strings(terms)

	v.vocabulary = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		v.vocabulary[term] = i
		// Smoothed IDF
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	v.fitted = true

	return nil
}

// transform computes the TF-IDF vector for one text.
// Caller must hold at least the read lock.
func (v *Vectorizer) transform(text string) []float64 {
	vec := make([]float64, len(v.vocabulary))

	for _, term := range v.terms(text) {
		if idx, ok := v.vocabulary[term]; ok {
			vec[idx] += v.idf[idx]
		}
	}

	// L2 normalize so cosine similarity is comparable across texts.
	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}

	return vec
}

// terms tokenizes text into lowercased unigrams and adjacent bigrams,
// with stop-words removed before bigram formation.
func (v *Vectorizer) terms(text string) []string {
	raw := v.tokenPattern.FindAllString(strings.ToLower(text), -1)

	tokens := raw[:0]
	for _, tok := range raw {
		if _, isStop := v.stopwords[tok]; isStop {
			continue
		}
		tokens = append(tokens, tok)
	}

	out := make([]string, 0, 2*len(tokens))
	out = append(out, tokens...)
	for i := 1; i < len(tokens); i++ {
		out = append(out, tokens[i-1]+" "+tokens[i])
	}
	return out
}
