package driven

import (
	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/domain"
)

// ConversationStore is the durable, append-only message log keyed by
// document name.
//
// All mutating operations are serialized behind one lock and persist
// the entire store with a write-temp-then-rename strategy, so a crash
// mid-write never corrupts the previous durable state. Reads may run
// concurrently with each other and never observe a torn write.
type ConversationStore interface {
	// Append adds a timestamped message to a document's log, creating
	// the log on first use, and durably persists the store. A failure
	// here is fatal to the operation: silently losing a message would
	// break the append-only durability guarantee.
	Append(doc string, role domain.Role, content string, metadata map[string]any) (domain.Message, error)

	// History returns the most recent limit messages in chronological
	// order, or the full log when limit <= 0. Unknown documents yield
	// an empty slice, not an error.
	History(doc string, limit int) []domain.Message

	// Documents returns the names of all documents with a log.
	Documents() []string

	// Clear removes one document's log after writing a timestamped
	// backup of the durable file. Backup failure is logged and ignored.
	Clear(doc string) error

	// ClearAll removes every document's log, with the same backup
	// behaviour as Clear.
	ClearAll() error

	// Export serializes a document's log as JSON or CSV. Any other
	// format fails with domain.ErrUnsupportedFormat.
	Export(doc string, format domain.ExportFormat) (string, error)

	// Stats summarises a document's log.
	Stats(doc string) domain.ConversationStats
}
