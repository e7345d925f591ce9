// Package offline provides an extractive answer service that works
// without any external API. It is the default provider: answers are
// assembled from the sentences of the retrieved context that best match
// the question.
package offline

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Iamzain804/Lumina-PDF-Bot/internal/adapters/driven/llm/evidence"
	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/domain"
	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/ports/driven"
)

// Ensure Answerer implements the interface.
var _ driven.AnswerService = (*Answerer)(nil)

// DefaultMaxSentences bounds how many context sentences an answer may use.
const DefaultMaxSentences = 3

// Answerer extracts the most relevant context sentences as the answer.
type Answerer struct {
	maxSentences int
}

// Option configures an Answerer.
type Option func(*Answerer)

// WithMaxSentences sets how many sentences an answer may contain.
func WithMaxSentences(n int) Option {
	return func(a *Answerer) {
		if n > 0 {
			a.maxSentences = n
		}
	}
}

// New creates an offline answerer.
func New(opts ...Option) *Answerer {
	a := &Answerer{maxSentences: DefaultMaxSentences}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

var sentenceEnd = regexp.MustCompile(`(?m)([.!?])\s+`)

// GenerateAnswer selects the context sentences with the highest question
// word overlap and joins them in their original order.
func (a *Answerer) GenerateAnswer(ctx context.Context, question, contextText string) (domain.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return domain.Answer{}, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(contextText) == "" {
		return domain.Answer{}, fmt.Errorf("%w: no context to answer from", domain.ErrAnswerUnavailable)
	}

	questionWords := evidence.WordSet(question)
	sentences := splitSentences(contextText)

	type scored struct {
		index int
		text  string
		score int
	}
	candidates := make([]scored, 0, len(sentences))
	for i, s := range sentences {
		score := 0
		for w := range evidence.WordSet(s) {
			if questionWords[w] {
				score++
			}
		}
		if score > 0 {
			candidates = append(candidates, scored{index: i, text: s, score: score})
		}
	}

	if len(candidates) == 0 {
		return domain.Answer{
			Text:       "The indexed content does not appear to cover this question.",
			Confidence: domain.ConfidenceLow,
		}, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > a.maxSentences {
		candidates = candidates[:a.maxSentences]
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].index < candidates[j].index
	})

	parts := make([]string, len(candidates))
	for i, c := range candidates {
		parts[i] = c.text
	}
	text := strings.Join(parts, " ")

	return domain.Answer{
		Text:       text,
		Sources:    evidence.ExtractSources(text),
		Confidence: evidence.ScoreConfidence(text, contextText),
	}, nil
}

// Summarise returns the leading sentences of the content, capped at
// maxWords words.
func (a *Answerer) Summarise(ctx context.Context, content string, maxWords int) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", fmt.Errorf("%w: empty content", domain.ErrEmptyInput)
	}
	if maxWords <= 0 {
		maxWords = 50
	}

	var out []string
	for _, s := range splitSentences(content) {
		words := strings.Fields(s)
		if len(out)+len(words) > maxWords && len(out) > 0 {
			break
		}
		if len(words) > maxWords {
			words = words[:maxWords]
		}
		out = append(out, words...)
		if len(out) >= maxWords {
			break
		}
	}
	return strings.Join(out, " "), nil
}

// ModelName identifies the provider in command output.
func (a *Answerer) ModelName() string {
	return "offline-extractive"
}

// Close releases resources.
func (a *Answerer) Close() error {
	return nil
}

// splitSentences breaks text into sentences on terminal punctuation.
// Context block separators count as boundaries too.
func splitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n\n---\n\n", " ")
	marked := sentenceEnd.ReplaceAllString(text, "$1\x00")

	var sentences []string
	for _, s := range strings.Split(marked, "\x00") {
		s = strings.TrimSpace(s)
		if s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}
