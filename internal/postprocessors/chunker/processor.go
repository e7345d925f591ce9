// Package chunker provides a fixed-size text chunking processor.
package chunker

import (
	"strings"

	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// Splitter splits document text into fixed-size chunks with overlap.
// Cuts prefer structural boundaries (paragraph, newline, sentence end,
// word break) and fall back to hard character cuts.
type Splitter struct {
	chunkSize int
	overlap   int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a new splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Ensure overlap doesn't exceed chunk size
	if s.overlap >= s.chunkSize {
		s.overlap = s.chunkSize / 4
	}

	return s
}

// ChunkSize returns the configured chunk size in characters.
func (s *Splitter) ChunkSize() int { return s.chunkSize }

// Overlap returns the configured overlap in characters.
func (s *Splitter) Overlap() int { return s.overlap }

// Split splits text into chunks of at most chunkSize characters, each
// sharing overlap characters with its predecessor. Returns
// domain.ErrEmptyInput for empty or whitespace-only text and
// domain.ErrNoChunks if splitting yields nothing.
func (s *Splitter) Split(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyInput
	}

	runes := []rune(text)
	total := len(runes)

	estimated := total/(s.chunkSize-s.overlap) + 1
	chunks := make([]string, 0, estimated)

	start := 0
	for start < total {
		end := start + s.chunkSize
		if end >= total {
			end = total
		} else {
			end = s.cutPoint(runes, start, end)
		}

		chunks = append(chunks, string(runes[start:end]))
		if end == total {
			break
		}

		next := end - s.overlap
		if next <= start {
			// Guarantee forward progress even for degenerate
			// size/overlap combinations.
			next = start + 1
		}
		start = next
	}

	if len(chunks) == 0 {
		return nil, domain.ErrNoChunks
	}
	return chunks, nil
}

// cutPoint finds the boundary at which to end a chunk that starts at
// start and may extend at most to limit. Boundary kinds are tried in
// order of preference; each is only accepted in the latter half of the
// window so chunks stay reasonably full.
func (s *Splitter) cutPoint(runes []rune, start, limit int) int {
	min := start + s.chunkSize/2

	if p := lastBoundary(runes, min, limit, isParagraphBreak); p > 0 {
		return p
	}
	if p := lastBoundary(runes, min, limit, isNewline); p > 0 {
		return p
	}
	if p := lastBoundary(runes, min, limit, isSentenceEnd); p > 0 {
		return p
	}
	if p := lastBoundary(runes, min, limit, isSpace); p > 0 {
		return p
	}
	return limit
}

// lastBoundary scans backwards through (min, limit] for the latest
// position satisfying the boundary predicate. The returned position is
// the index just past the boundary rune. Returns 0 when none exists.
func lastBoundary(runes []rune, min, limit int, boundary func([]rune, int) bool) int {
	for i := limit; i > min; i-- {
		if boundary(runes, i-1) {
			return i
		}
	}
	return 0
}

func isParagraphBreak(runes []rune, i int) bool {
	return runes[i] == '\n' && i > 0 && runes[i-1] == '\n'
}

func isNewline(runes []rune, i int) bool {
	return runes[i] == '\n'
}

func isSentenceEnd(runes []rune, i int) bool {
	if runes[i] != '.' && runes[i] != '!' && runes[i] != '?' {
		return false
	}
	return i+1 < len(runes) && (runes[i+1] == ' ' || runes[i+1] == '\n')
}

func isSpace(runes []rune, i int) bool {
	return runes[i] == ' ' || runes[i] == '\t'
}
