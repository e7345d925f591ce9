package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyInput indicates text input was empty or whitespace only.
	ErrEmptyInput = errors.New("empty input")

	// ErrNoChunks indicates splitting produced zero chunks.
	// This should not occur for non-empty input.
	ErrNoChunks = errors.New("no chunks produced")

	// ErrNotFitted indicates the vectorizer has no vocabulary yet.
	// Transform requires a prior FitTransform call.
	ErrNotFitted = errors.New("vectorizer not fitted")

	// ErrEmptyIndex indicates an index was built with no chunks.
	ErrEmptyIndex = errors.New("empty index")

	// ErrNotIndexed indicates a document has no persisted index.
	// Query-time callers convert this into a low-confidence result.
	ErrNotIndexed = errors.New("document not indexed")

	// ErrUnsupportedFormat indicates an unknown export or file format.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrPersistence indicates an I/O failure saving or loading
	// an index or the conversation log.
	ErrPersistence = errors.New("persistence failure")

	// ErrCorruptedStore indicates the durable conversation file could
	// not be parsed. The store recovers from this automatically; it is
	// never surfaced as fatal.
	ErrCorruptedStore = errors.New("corrupted store")

	// ErrAnswerUnavailable indicates the answer generation service is
	// not configured or unreachable.
	ErrAnswerUnavailable = errors.New("answer service unavailable")
)
