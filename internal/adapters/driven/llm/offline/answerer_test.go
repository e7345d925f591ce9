package offline

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/domain"
)

func TestGenerateAnswerSelectsRelevantSentences(t *testing.T) {
	a := New()

	contextText := "The warranty lasts two years. Shipping takes five days. " +
		"Returns are accepted within thirty days."
	answer, err := a.GenerateAnswer(context.Background(), "How long is the warranty?", contextText)
	require.NoError(t, err)

	assert.Contains(t, answer.Text, "warranty lasts two years")
	assert.NotContains(t, answer.Text, "Shipping")
	assert.Equal(t, domain.ConfidenceHigh, answer.Confidence)
}

func TestGenerateAnswerPreservesSentenceOrder(t *testing.T) {
	a := New()

	contextText := "Alpha covers billing basics. Unrelated filler sentence here. " +
		"Beta covers billing disputes and billing escalation."
	answer, err := a.GenerateAnswer(context.Background(), "What about billing?", contextText)
	require.NoError(t, err)

	alphaPos := strings.Index(answer.Text, "Alpha")
	betaPos := strings.Index(answer.Text, "Beta")
	require.GreaterOrEqual(t, alphaPos, 0)
	require.GreaterOrEqual(t, betaPos, 0)
	assert.Less(t, alphaPos, betaPos)
}

func TestGenerateAnswerMaxSentences(t *testing.T) {
	a := New(WithMaxSentences(1))

	contextText := "Cats sleep a lot. Cats eat fish. Cats chase mice."
	answer, err := a.GenerateAnswer(context.Background(), "Tell me about cats", contextText)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(answer.Text, "."))
}

func TestGenerateAnswerNoMatch(t *testing.T) {
	a := New()

	answer, err := a.GenerateAnswer(context.Background(), "quantum chromodynamics?",
		"The warranty lasts two years.")
	require.NoError(t, err)

	assert.Equal(t, domain.ConfidenceLow, answer.Confidence)
	assert.Contains(t, answer.Text, "does not appear to cover")
}

func TestGenerateAnswerEmptyQuestion(t *testing.T) {
	a := New()

	_, err := a.GenerateAnswer(context.Background(), " ", "some context")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGenerateAnswerEmptyContext(t *testing.T) {
	a := New()

	_, err := a.GenerateAnswer(context.Background(), "question?", "")
	assert.ErrorIs(t, err, domain.ErrAnswerUnavailable)
}

func TestGenerateAnswerExtractsSources(t *testing.T) {
	a := New()

	answer, err := a.GenerateAnswer(context.Background(), "refund policy",
		"The refund policy is described on page 4 of the contract.")
	require.NoError(t, err)

	assert.Equal(t, []string{"Page 4"}, answer.Sources)
}

func TestSummarise(t *testing.T) {
	a := New()

	content := "First sentence here. Second sentence follows. Third one closes."
	summary, err := a.Summarise(context.Background(), content, 6)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(strings.Fields(summary)), 6)
	assert.Contains(t, summary, "First")
}

func TestSummariseEmpty(t *testing.T) {
	a := New()

	_, err := a.Summarise(context.Background(), "  ", 50)
	assert.ErrorIs(t, err, domain.ErrEmptyInput)
}

func TestModelName(t *testing.T) {
	assert.Equal(t, "offline-extractive", New().ModelName())
}
