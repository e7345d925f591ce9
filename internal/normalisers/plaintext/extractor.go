// Package plaintext extracts text from plain-text and Markdown files.
package plaintext

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/domain"
	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/ports/driven"
)

var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor reads .txt and .md files. Content is expected to be UTF-8;
// files that fail UTF-8 validation are decoded as Latin-1 so that legacy
// exports still ingest rather than erroring out.
type Extractor struct{}

// New creates a plaintext extractor.
func New() *Extractor {
	return &Extractor{}
}

// Supports reports whether the file extension is one this extractor handles.
func (e *Extractor) Supports(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return true
	default:
		return false
	}
}

// Extract reads the file and returns its text content.
func (e *Extractor) Extract(path string) (string, error) {
	if !e.Supports(path) {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, filepath.Ext(path))
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	text := decode(raw)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no text found in %s", domain.ErrEmptyInput, filepath.Base(path))
	}
	return text, nil
}

// PageCount approximates a page count for plain text as the number of
// paragraph breaks plus one. Callers use it for display only.
func (e *Extractor) PageCount(path string) int {
	text, err := e.Extract(path)
	if err != nil {
		return 0
	}
	return strings.Count(text, "\n\n") + 1
}

// decode strips a UTF-8 BOM and falls back to Latin-1 for invalid UTF-8.
func decode(raw []byte) string {
	raw = stripBOM(raw)
	if utf8.Valid(raw) {
		return string(raw)
	}

	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}
	return string(runes)
}

func stripBOM(raw []byte) []byte {
	if len(raw) >= 3 && raw[0] == 0xEF && raw[1] == 0xBB && raw[2] == 0xBF {
		return raw[3:]
	}
	return raw
}
