package driven

// TextExtractor extracts plain text from a staged document file.
// Implementations are format-specific collaborators; a decoding or
// format error is treated by the engine as a terminal ingestion failure.
type TextExtractor interface {
	// Extract returns the full text content of the file.
	Extract(path string) (string, error)

	// PageCount returns the approximate page or section count.
	// Implementations should degrade to 1 rather than fail.
	PageCount(path string) int

	// Supports reports whether the extractor handles the file,
	// judged by its extension.
	Supports(path string) bool
}
