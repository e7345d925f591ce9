package driven

import (
	"context"

	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/domain"
)

// AnswerService generates natural-language answers from retrieved
// context. This is an external collaborator: the retrieval core supplies
// ranked chunk text as context and does not prescribe how sources or
// confidence are derived.
//
// Implementations may include:
//   - OpenRouter (hosted models over HTTP)
//   - Offline (extractive, no network)
type AnswerService interface {
	// GenerateAnswer answers the question using only the supplied
	// context text.
	GenerateAnswer(ctx context.Context, question, contextText string) (domain.Answer, error)

	// Summarise creates a short summary of document content.
	Summarise(ctx context.Context, content string, maxWords int) (string, error)

	// ModelName returns the name of the underlying model.
	ModelName() string

	// Close releases resources.
	Close() error
}
