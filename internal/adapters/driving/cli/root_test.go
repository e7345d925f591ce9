package cli

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/domain"
	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/ports/driving"
)

// testEngine implements driving.RetrievalEngine with canned responses.
type testEngine struct {
	ingestResult *driving.IngestResult
	queryResult  *driving.QueryResult
	docs         []domain.Document
	summary      string
	removed      []string
	removeErr    error
}

var _ driving.RetrievalEngine = (*testEngine)(nil)

func (e *testEngine) Ingest(_ context.Context, filename string, r io.Reader) *driving.IngestResult {
	_, _ = io.ReadAll(r)
	if e.ingestResult != nil {
		return e.ingestResult
	}
	return &driving.IngestResult{Status: "success", Document: domain.DocumentName(filename)}
}

func (e *testEngine) Query(_ context.Context, _, _ string, _ int) *driving.QueryResult {
	if e.queryResult != nil {
		return e.queryResult
	}
	return &driving.QueryResult{Answer: "canned answer", Sources: []string{}, Confidence: domain.ConfidenceLow}
}

func (e *testEngine) Remove(_ context.Context, doc string) error {
	e.removed = append(e.removed, doc)
	return e.removeErr
}

func (e *testEngine) ListDocuments(_ context.Context) ([]domain.Document, error) {
	return e.docs, nil
}

func (e *testEngine) Summary(_ context.Context, _ string) (string, error) {
	return e.summary, nil
}

// testConversations implements driving.ConversationService.
type testConversations struct {
	history []domain.Message
	export  string
	stats   domain.ConversationStats
	cleared []string
}

var _ driving.ConversationService = (*testConversations)(nil)

func (c *testConversations) History(_ context.Context, _ string, limit int) []domain.Message {
	if limit > 0 && len(c.history) > limit {
		return c.history[len(c.history)-limit:]
	}
	return c.history
}

func (c *testConversations) Export(_ context.Context, _ string, _ domain.ExportFormat) (string, error) {
	return c.export, nil
}

func (c *testConversations) Stats(_ context.Context, _ string) domain.ConversationStats {
	return c.stats
}

func (c *testConversations) Clear(_ context.Context, doc string) error {
	c.cleared = append(c.cleared, doc)
	return nil
}

// execute injects the stubs, runs the root command with args and
// returns the combined output.
func execute(t *testing.T, e *testEngine, c *testConversations, args ...string) (string, error) {
	t.Helper()

	prevEngine, prevConversations := engine, conversations
	SetServices(e, c)
	t.Cleanup(func() { SetServices(prevEngine, prevConversations) })

	// Flag values persist across executions; reset them.
	ingestJSON = false
	askJSON = false
	askShowContext = false
	askTopK = 0
	listJSON = false
	historyLimit = 0
	exportFormat = "json"
	clearAllHistory = false

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return buf.String(), err
}
