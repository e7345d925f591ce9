// Package evidence scores how well an answer is grounded in its source
// context and extracts page citations from answer text. It is shared by
// the answer service adapters.
package evidence

import (
	"regexp"
	"strings"

	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/domain"
)

var pagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)page\s+(\d+)`),
	regexp.MustCompile(`(?i)p\.\s*(\d+)`),
	regexp.MustCompile(`(?i)pg\.\s*(\d+)`),
}

// ExtractSources pulls page references out of an answer, deduplicated in
// first-mention order.
func ExtractSources(answer string) []string {
	var sources []string
	seen := make(map[string]bool)

	for _, pattern := range pagePatterns {
		for _, match := range pattern.FindAllStringSubmatch(answer, -1) {
			source := "Page " + match[1]
			if !seen[source] {
				seen[source] = true
				sources = append(sources, source)
			}
		}
	}
	return sources
}

// Confidence thresholds on the answer/context word overlap ratio.
const (
	highConfidenceOverlap   = 0.3
	mediumConfidenceOverlap = 0.15
)

// ScoreConfidence estimates how grounded an answer is in the context by
// measuring the fraction of answer words that also appear in the context.
func ScoreConfidence(answer, contextText string) domain.Confidence {
	answerWords := WordSet(answer)
	if len(answerWords) == 0 {
		return domain.ConfidenceLow
	}

	contextWords := WordSet(contextText)
	overlap := 0
	for w := range answerWords {
		if contextWords[w] {
			overlap++
		}
	}

	ratio := float64(overlap) / float64(len(answerWords))
	switch {
	case ratio > highConfidenceOverlap:
		return domain.ConfidenceHigh
	case ratio > mediumConfidenceOverlap:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

// WordSet lowercases the text and returns its distinct words with
// surrounding punctuation trimmed.
func WordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,;:!?\"'()[]")
		if w != "" {
			set[w] = true
		}
	}
	return set
}
