package driven

import (
	"context"

	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/domain"
)

// IndexStore persists similarity indexes, one per document name.
// The chunk texts and vector matrix are serialized as a single unit so
// readers never observe a half-written index.
type IndexStore interface {
	// Save persists the index for a document, replacing any previous
	// one atomically.
	Save(ctx context.Context, name string, index *domain.Index) error

	// Load retrieves the persisted index for a document. Returns
	// (nil, nil) when no index exists, signalling "not yet indexed".
	Load(ctx context.Context, name string) (*domain.Index, error)

	// Delete removes the persisted index. Removing an absent index is
	// a no-op, not an error.
	Delete(ctx context.Context, name string) error

	// Exists reports whether a persisted index is present.
	Exists(ctx context.Context, name string) bool
}
