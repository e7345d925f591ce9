package driven

import (
	"context"

	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/domain"
)

// DocumentRegistry persists document metadata.
// Backed by SQLite.
type DocumentRegistry interface {
	// Save stores or updates a document record.
	Save(ctx context.Context, doc *domain.Document) error

	// Get retrieves a document record by name.
	// Returns domain.ErrNotFound when absent.
	Get(ctx context.Context, name string) (*domain.Document, error)

	// List returns all document records, most recently updated first.
	List(ctx context.Context) ([]domain.Document, error)

	// Delete removes a document record. Deleting an absent record is
	// a no-op.
	Delete(ctx context.Context, name string) error

	// Close releases resources.
	Close() error
}
