package domain

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// maxDocumentNameLen caps sanitized document names.
const maxDocumentNameLen = 100

// Document represents an uploaded document tracked by the engine.
// The raw text is held only during ingestion and is never persisted.
type Document struct {
	// Name is the stable identifier, derived from the sanitized
	// original filename with the extension stripped.
	Name string

	// Filename is the sanitized filename the upload was staged under.
	Filename string

	// SizeBytes is the staged file size.
	SizeBytes int64

	// PageCount is the approximate page or section count, computed
	// by a format-specific collaborator.
	PageCount int

	// ChunkCount is the number of chunks in the persisted index.
	ChunkCount int

	// Summary is a short generated summary, empty when generation
	// was skipped or failed.
	Summary string

	// Indexed reports whether a persisted index exists for this document.
	Indexed bool

	// CreatedAt is when the document was first ingested.
	CreatedAt time.Time

	// UpdatedAt is when the document was last re-ingested.
	UpdatedAt time.Time
}

// Chunk is a bounded, contiguous substring of a document's text used
// as the retrieval granularity.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentName links to the parent document.
	DocumentName string

	// Text is the chunk content.
	Text string

	// Position is the ordinal position within the document.
	// Ordering is retrieval-deterministic but carries no meaning
	// beyond locality.
	Position int
}

var (
	unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)
	multiSpace  = regexp.MustCompile(`\s+`)
)

// SanitizeFilename removes special characters and makes a filename safe
// for storage. The extension is preserved; the base name keeps only
// alphanumerics, hyphens and underscores, with runs of whitespace
// collapsed to single underscores and the result capped at 100 characters.
func SanitizeFilename(filename string) string {
	ext := filepath.Ext(filename)
	name := strings.TrimSuffix(filepath.Base(filename), ext)

	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.TrimSpace(multiSpace.ReplaceAllString(name, " "))
	name = strings.ReplaceAll(name, " ", "_")

	if len(name) > maxDocumentNameLen {
		name = name[:maxDocumentNameLen]
	}
	if name == "" {
		name = "file_" + time.Now().Format("2006-01-02_15-04-05")
	}

	return name + ext
}

// DocumentName derives the stable document identifier from a filename:
// the sanitized base name with the extension stripped.
func DocumentName(filename string) string {
	safe := SanitizeFilename(filename)
	return strings.TrimSuffix(safe, filepath.Ext(safe))
}

// HumanSize renders a byte count as a human-readable size, e.g. "2.5 MB".
func HumanSize(bytes int64) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
		gb = 1 << 30
	)
	switch {
	case bytes < kb:
		return fmt.Sprintf("%d B", bytes)
	case bytes < mb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/kb)
	case bytes < gb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/mb)
	default:
		return fmt.Sprintf("%.1f GB", float64(bytes)/gb)
	}
}

// ReadingTime estimates reading time in minutes at 250 words per minute.
// Always returns at least 1.
func ReadingTime(text string) int {
	words := len(strings.Fields(text))
	minutes := (words + 125) / 250
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
