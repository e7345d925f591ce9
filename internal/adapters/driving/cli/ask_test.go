package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/domain"
	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/ports/driving"
)

func TestAskCmd(t *testing.T) {
	e := &testEngine{
		queryResult: &driving.QueryResult{
			Answer:     "The warranty lasts two years.",
			Sources:    []string{"Page 2", "Page 3"},
			Confidence: domain.ConfidenceHigh,
		},
	}

	out, err := execute(t, e, &testConversations{}, "ask", "manual", "how", "long", "is", "the", "warranty")
	require.NoError(t, err)

	assert.Contains(t, out, "The warranty lasts two years.")
	assert.Contains(t, out, "Sources: Page 2, Page 3")
	assert.Contains(t, out, "Confidence: high")
}

func TestAskCmdJSON(t *testing.T) {
	e := &testEngine{
		queryResult: &driving.QueryResult{
			Answer:     "answer",
			Sources:    []string{},
			Confidence: domain.ConfidenceLow,
		},
	}

	out, err := execute(t, e, &testConversations{}, "ask", "manual", "question", "--json")
	require.NoError(t, err)

	assert.Contains(t, out, `"answer": "answer"`)
	assert.Contains(t, out, `"confidence": "low"`)
}

func TestAskCmdRequiresArgs(t *testing.T) {
	_, err := execute(t, &testEngine{}, &testConversations{}, "ask", "only-doc")
	assert.Error(t, err)
}
