package driving

import (
	"context"
	"io"

	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/domain"
)

// RetrievalEngine is the main document pipeline: ingest a document into
// a searchable index, answer questions against it, and manage its
// lifecycle.
type RetrievalEngine interface {
	// Ingest runs the full processing pipeline for an uploaded file:
	// stage, extract, chunk, vectorize, index, persist, summarise.
	// Pipeline failures are converted into a structured error result
	// rather than propagated; the staged file is removed and no partial
	// index is left on disk.
	Ingest(ctx context.Context, filename string, r io.Reader) *IngestResult

	// Query answers a question against a document's persisted index and
	// records the exchange in the conversation log. A document without
	// an index yields a structured low-confidence result, not an error.
	Query(ctx context.Context, doc, question string, k int) *QueryResult

	// Remove deletes the staged file, persisted index, registry record
	// and conversation history for a document. Idempotent: removing an
	// absent document is a no-op success.
	Remove(ctx context.Context, doc string) error

	// ListDocuments returns metadata for every known document, most
	// recently updated first.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// Summary re-extracts a document's text and generates a fresh
	// summary.
	Summary(ctx context.Context, doc string) (string, error)
}

// IngestResult is the structured outcome of an ingestion pipeline run.
type IngestResult struct {
	// Status is "success" or "error".
	Status string `json:"status"`

	// Document is the derived document name.
	Document string `json:"document,omitempty"`

	// PageCount is the approximate page or section count.
	PageCount int `json:"page_count"`

	// ChunksCreated is the number of index chunks built.
	ChunksCreated int `json:"chunks_created"`

	// Summary is the generated document summary, empty when summary
	// generation was unavailable or failed.
	Summary string `json:"summary,omitempty"`

	// Error is the failure message when Status is "error".
	Error string `json:"error,omitempty"`
}

// QueryResult is the structured outcome of a question against a document.
type QueryResult struct {
	// Answer is the generated answer text.
	Answer string `json:"answer"`

	// Sources lists cited page or section references.
	Sources []string `json:"sources"`

	// Confidence grades context support for the answer.
	Confidence domain.Confidence `json:"confidence"`

	// ContextUsed is the retrieved context handed to the answer
	// collaborator.
	ContextUsed string `json:"context_used"`

	// Hits are the ranked chunks backing the answer.
	Hits []domain.Hit `json:"hits,omitempty"`
}

// ConversationService exposes a document's conversation log to external
// actors.
type ConversationService interface {
	// History returns the most recent limit messages in chronological
	// order; limit <= 0 returns the full log.
	History(ctx context.Context, doc string, limit int) []domain.Message

	// Export serializes a document's log in the given format.
	Export(ctx context.Context, doc string, format domain.ExportFormat) (string, error)

	// Stats summarises a document's log.
	Stats(ctx context.Context, doc string) domain.ConversationStats

	// Clear removes one document's log, or every log when doc is empty.
	Clear(ctx context.Context, doc string) error
}
