package services

import (
	"context"

	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/domain"
	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/ports/driven"
	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/ports/driving"
)

// Ensure Conversations implements the interface.
var _ driving.ConversationService = (*Conversations)(nil)

// Conversations exposes the per-document chat log.
type Conversations struct {
	store driven.ConversationStore
}

// NewConversations creates the conversation service.
func NewConversations(store driven.ConversationStore) *Conversations {
	return &Conversations{store: store}
}

// History returns the most recent limit messages in chronological order.
func (c *Conversations) History(_ context.Context, doc string, limit int) []domain.Message {
	return c.store.History(doc, limit)
}

// Export serializes a document's log in the given format.
func (c *Conversations) Export(_ context.Context, doc string, format domain.ExportFormat) (string, error) {
	return c.store.Export(doc, format)
}

// Stats summarises a document's log.
func (c *Conversations) Stats(_ context.Context, doc string) domain.ConversationStats {
	return c.store.Stats(doc)
}

// Clear removes one document's log, or every log when doc is empty.
func (c *Conversations) Clear(_ context.Context, doc string) error {
	if doc == "" {
		return c.store.ClearAll()
	}
	return c.store.Clear(doc)
}
