package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/domain"
	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/ports/driven"
	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/ports/driving"
	"github.com/Iamzain804/Lumina-PDF-Bot/internal/logger"
)

// Ensure Engine implements the interface.
var _ driving.RetrievalEngine = (*Engine)(nil)

// Splitter breaks extracted text into overlapping chunks.
type Splitter interface {
	Split(text string) ([]string, error)
}

// Default pipeline parameters.
const (
	DefaultTopK         = 4
	DefaultSummaryWords = 60
)

// EngineConfig wires the pipeline collaborators.
type EngineConfig struct {
	// Extractors are tried in order; the first whose Supports matches
	// handles the file.
	Extractors []driven.TextExtractor

	// Splitter chunks extracted text.
	Splitter Splitter

	// NewVectorizer builds a fresh vectorizer. The vocabulary is
	// fit-once per instance, so each pipeline run gets its own.
	NewVectorizer func() driven.Vectorizer

	// Indexes persists one similarity index per document.
	Indexes driven.IndexStore

	// Registry persists document metadata.
	Registry driven.DocumentRegistry

	// Conversations records question/answer exchanges.
	Conversations driven.ConversationStore

	// Answerer generates grounded answers and summaries.
	Answerer driven.AnswerService

	// UploadsDir is where ingested files are staged.
	UploadsDir string

	// TopK is the default number of chunks retrieved per query
	// (default: 4).
	TopK int

	// SummaryWords caps generated summaries (default: 60).
	SummaryWords int
}

// Engine runs the document pipeline: stage, extract, chunk, vectorize,
// index, persist, summarise, and later retrieve and answer.
//
// Ingestions are serialized behind a mutex so two concurrent ingests
// cannot interleave their staging and persistence steps.
type Engine struct {
	mu sync.Mutex

	extractors    []driven.TextExtractor
	splitter      Splitter
	newVectorizer func() driven.Vectorizer
	indexes       driven.IndexStore
	registry      driven.DocumentRegistry
	conversations driven.ConversationStore
	answerer      driven.AnswerService
	uploadsDir    string
	topK          int
	summaryWords  int
}

// NewEngine creates the retrieval engine. All collaborators except the
// answerer are required; without an answerer, queries degrade to
// returning the retrieved context verbatim.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	switch {
	case len(cfg.Extractors) == 0:
		return nil, errors.New("engine: at least one extractor is required")
	case cfg.Splitter == nil:
		return nil, errors.New("engine: splitter is required")
	case cfg.NewVectorizer == nil:
		return nil, errors.New("engine: vectorizer factory is required")
	case cfg.Indexes == nil:
		return nil, errors.New("engine: index store is required")
	case cfg.Registry == nil:
		return nil, errors.New("engine: document registry is required")
	case cfg.Conversations == nil:
		return nil, errors.New("engine: conversation store is required")
	case cfg.UploadsDir == "":
		return nil, errors.New("engine: uploads directory is required")
	}

	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}
	if cfg.SummaryWords <= 0 {
		cfg.SummaryWords = DefaultSummaryWords
	}

	return &Engine{
		extractors:    cfg.Extractors,
		splitter:      cfg.Splitter,
		newVectorizer: cfg.NewVectorizer,
		indexes:       cfg.Indexes,
		registry:      cfg.Registry,
		conversations: cfg.Conversations,
		answerer:      cfg.Answerer,
		uploadsDir:    cfg.UploadsDir,
		topK:          cfg.TopK,
		summaryWords:  cfg.SummaryWords,
	}, nil
}

// Ingest runs the full processing pipeline for an uploaded file.
// Failures are reported in the result, and a failed run leaves no
// partial index behind: whatever was indexed before, including a
// previous version of the same document, stays in place.
func (e *Engine) Ingest(ctx context.Context, filename string, r io.Reader) *driving.IngestResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	logger.Section("Ingest")
	logger.Debug("File: %q", filename)

	if strings.TrimSpace(filename) == "" {
		return ingestError("", fmt.Errorf("%w: empty filename", domain.ErrInvalidInput))
	}
	safe := domain.SanitizeFilename(filename)
	name := domain.DocumentName(safe)

	extractor := e.extractorFor(safe)
	if extractor == nil {
		return ingestError(name, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, filepath.Ext(safe)))
	}

	// The upload is staged into a scratch directory first so a failed
	// run never disturbs the previous staged copy or its index.
	if err := os.MkdirAll(e.uploadsDir, 0o755); err != nil {
		return ingestError(name, fmt.Errorf("create uploads directory: %w", err))
	}
	workDir, err := os.MkdirTemp(e.uploadsDir, ".ingest-")
	if err != nil {
		return ingestError(name, fmt.Errorf("create work directory: %w", err))
	}
	defer os.RemoveAll(workDir)

	work := filepath.Join(workDir, safe)
	if err := e.stage(work, r); err != nil {
		return ingestError(name, err)
	}

	text, err := extractor.Extract(work)
	if err != nil {
		return ingestError(name, fmt.Errorf("extract text: %w", err))
	}
	logger.Debug("Extracted %d characters", len(text))

	chunks, err := e.splitter.Split(text)
	if err != nil {
		return ingestError(name, fmt.Errorf("chunk text: %w", err))
	}
	logger.Debug("Split into %d chunks", len(chunks))

	vectors, err := e.newVectorizer().FitTransform(chunks)
	if err != nil {
		return ingestError(name, fmt.Errorf("vectorize chunks: %w", err))
	}

	index, err := domain.NewIndex(chunks, vectors)
	if err != nil {
		return ingestError(name, fmt.Errorf("build index: %w", err))
	}

	pages := extractor.PageCount(work)
	summary := e.summarise(ctx, text)

	size := int64(0)
	if info, statErr := os.Stat(work); statErr == nil {
		size = info.Size()
	}

	// Keep the previous index restorable until the run commits. A
	// re-ingest that fails past this point puts it back.
	prior, err := e.indexes.Load(ctx, name)
	if err != nil {
		logger.Warn("Load previous index: %v", err)
		prior = nil
	}
	restoreIndex := func() {
		var restoreErr error
		if prior != nil {
			restoreErr = e.indexes.Save(ctx, name, prior)
		} else {
			restoreErr = e.indexes.Delete(ctx, name)
		}
		if restoreErr != nil {
			logger.Warn("Restore previous index: %v", restoreErr)
		}
	}

	if err := e.indexes.Save(ctx, name, index); err != nil {
		return ingestError(name, fmt.Errorf("persist index: %w", err))
	}

	staged := filepath.Join(e.uploadsDir, safe)
	if err := os.Rename(work, staged); err != nil {
		restoreIndex()
		return ingestError(name, fmt.Errorf("stage file: %w", err))
	}

	now := time.Now().UTC()
	doc := &domain.Document{
		Name:       name,
		Filename:   safe,
		SizeBytes:  size,
		PageCount:  pages,
		ChunkCount: len(chunks),
		Summary:    summary,
		Indexed:    true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := e.registry.Save(ctx, doc); err != nil {
		restoreIndex()
		if prior == nil {
			if rmErr := os.Remove(staged); rmErr != nil && !os.IsNotExist(rmErr) {
				logger.Warn("Remove staged file: %v", rmErr)
			}
		}
		return ingestError(name, fmt.Errorf("register document: %w", err))
	}

	logger.Info("Ingested %q: %d pages, %d chunks", name, pages, len(chunks))
	return &driving.IngestResult{
		Status:        "success",
		Document:      name,
		PageCount:     pages,
		ChunksCreated: len(chunks),
		Summary:       summary,
	}
}

// Query answers a question against a document's persisted index.
func (e *Engine) Query(ctx context.Context, doc, question string, k int) *driving.QueryResult {
	logger.Section("Query")
	logger.Debug("Document: %q, question: %q", doc, question)

	if k <= 0 {
		k = e.topK
	}

	if strings.TrimSpace(question) == "" {
		return unansweredResult("Please ask a question.")
	}

	index, err := e.indexes.Load(ctx, doc)
	if err != nil {
		logger.Warn("Load index: %v", err)
		return unansweredResult("The document index could not be read. Try ingesting the document again.")
	}
	if index == nil {
		return unansweredResult(fmt.Sprintf("No indexed content found for %q. Ingest the document first.", doc))
	}

	hits, contextText, err := e.retrieve(index, question, k)
	if err != nil {
		logger.Warn("Retrieve: %v", err)
		return unansweredResult("The question could not be matched against the document.")
	}
	logger.Debug("Retrieved %d chunks", len(hits))

	answer, err := e.answer(ctx, question, contextText)
	if err != nil {
		logger.Warn("Generate answer: %v", err)
		return unansweredResult("The answer service is unavailable. Try again later.")
	}

	e.record(doc, question, answer)

	if answer.Sources == nil {
		answer.Sources = []string{}
	}
	return &driving.QueryResult{
		Answer:      answer.Text,
		Sources:     answer.Sources,
		Confidence:  answer.Confidence,
		ContextUsed: contextText,
		Hits:        hits,
	}
}

// Remove deletes everything known about a document. Idempotent.
func (e *Engine) Remove(ctx context.Context, doc string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logger.Section("Remove")
	logger.Debug("Document: %q", doc)

	record, err := e.registry.Get(ctx, doc)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("look up document: %w", err)
	}
	if record != nil {
		staged := filepath.Join(e.uploadsDir, record.Filename)
		if err := os.Remove(staged); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove staged file: %w", err)
		}
	}

	if err := e.indexes.Delete(ctx, doc); err != nil {
		return fmt.Errorf("delete index: %w", err)
	}
	if err := e.registry.Delete(ctx, doc); err != nil {
		return fmt.Errorf("delete registry record: %w", err)
	}
	if err := e.conversations.Clear(doc); err != nil {
		return fmt.Errorf("clear conversation: %w", err)
	}

	logger.Info("Removed %q", doc)
	return nil
}

// ListDocuments returns metadata for every known document, with the
// Indexed flag reflecting whether a persisted index currently exists.
func (e *Engine) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	docs, err := e.registry.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range docs {
		docs[i].Indexed = e.indexes.Exists(ctx, docs[i].Name)
	}
	return docs, nil
}

// Summary re-extracts a document's text and generates a fresh summary.
// The registry record keeps the new summary. When generation fails, a
// previously stored summary is returned instead.
func (e *Engine) Summary(ctx context.Context, doc string) (string, error) {
	record, err := e.registry.Get(ctx, doc)
	if err != nil {
		return "", err
	}

	staged := filepath.Join(e.uploadsDir, record.Filename)
	extractor := e.extractorFor(record.Filename)
	if extractor == nil {
		return record.Summary, nil
	}

	text, err := extractor.Extract(staged)
	if err != nil {
		if record.Summary != "" {
			return record.Summary, nil
		}
		return "", fmt.Errorf("extract text: %w", err)
	}

	summary := e.summarise(ctx, text)
	if summary == "" {
		if record.Summary != "" {
			return record.Summary, nil
		}
		return "", domain.ErrAnswerUnavailable
	}

	if summary != record.Summary {
		record.Summary = summary
		record.UpdatedAt = time.Now().UTC()
		if err := e.registry.Save(ctx, record); err != nil {
			logger.Warn("Store refreshed summary: %v", err)
		}
	}
	return summary, nil
}

// extractorFor returns the first extractor that supports the file.
func (e *Engine) extractorFor(filename string) driven.TextExtractor {
	for _, x := range e.extractors {
		if x.Supports(filename) {
			return x
		}
	}
	return nil
}

// stage copies the upload to the given path.
func (e *Engine) stage(staged string, r io.Reader) error {
	f, err := os.Create(staged)
	if err != nil {
		return fmt.Errorf("stage file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(staged)
		return fmt.Errorf("stage file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(staged)
		return fmt.Errorf("stage file: %w", err)
	}
	return nil
}

// retrieve projects the question into the index's vector space and
// returns the top chunks with their assembled context text.
//
// The vocabulary is rebuilt from the stored chunks on every query. The
// fit is deterministic, so the rebuilt space matches the one the stored
// vectors were produced in.
func (e *Engine) retrieve(index *domain.Index, question string, k int) ([]domain.Hit, string, error) {
	vec := e.newVectorizer()
	if _, err := vec.FitTransform(index.Chunks); err != nil {
		return nil, "", fmt.Errorf("rebuild vocabulary: %w", err)
	}

	qv, err := vec.Transform(question)
	if err != nil {
		return nil, "", fmt.Errorf("vectorize question: %w", err)
	}

	hits := index.Search(qv, k)

	blocks := make([]string, len(hits))
	for i, hit := range hits {
		blocks[i] = fmt.Sprintf("Context %d:\n%s", i+1, hit.Text)
	}
	return hits, strings.Join(blocks, "\n\n---\n\n"), nil
}

// answer generates the answer, degrading to the raw context when no
// answer service is configured.
func (e *Engine) answer(ctx context.Context, question, contextText string) (domain.Answer, error) {
	if e.answerer == nil {
		return domain.Answer{
			Text:       contextText,
			Confidence: domain.ConfidenceLow,
		}, nil
	}
	return e.answerer.GenerateAnswer(ctx, question, contextText)
}

// summarise generates a best-effort summary; failures degrade to "".
func (e *Engine) summarise(ctx context.Context, text string) string {
	if e.answerer == nil {
		return ""
	}
	summary, err := e.answerer.Summarise(ctx, text, e.summaryWords)
	if err != nil {
		logger.Warn("Summarise: %v", err)
		return ""
	}
	return summary
}

// record appends the exchange to the conversation log. Append failures
// are logged, not propagated: the caller already has the answer.
func (e *Engine) record(doc, question string, answer domain.Answer) {
	if _, err := e.conversations.Append(doc, domain.RoleUser, question, nil); err != nil {
		logger.Warn("Record question: %v", err)
		return
	}
	meta := map[string]any{
		"sources":    answer.Sources,
		"confidence": string(answer.Confidence),
	}
	if _, err := e.conversations.Append(doc, domain.RoleAssistant, answer.Text, meta); err != nil {
		logger.Warn("Record answer: %v", err)
	}
}

func ingestError(name string, err error) *driving.IngestResult {
	logger.Warn("Ingest failed: %v", err)
	return &driving.IngestResult{
		Status:   "error",
		Document: name,
		Error:    err.Error(),
	}
}

func unansweredResult(text string) *driving.QueryResult {
	return &driving.QueryResult{
		Answer:     text,
		Sources:    []string{},
		Confidence: domain.ConfidenceLow,
	}
}
