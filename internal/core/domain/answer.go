package domain

// Confidence grades how well an answer is supported by the retrieved
// context.
type Confidence string

// Confidence levels.
const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Answer is the structured result of the answer generation collaborator.
type Answer struct {
	// Text is the generated answer.
	Text string

	// Sources lists page or section references cited by the answer.
	Sources []string

	// Confidence grades context support for the answer.
	Confidence Confidence
}
