// Package openrouter provides an answer service adapter using the
// OpenRouter chat completions API.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Iamzain804/Lumina-PDF-Bot/internal/adapters/driven/llm/evidence"
	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/domain"
	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/ports/driven"
)

// Ensure Service implements the interface.
var _ driven.AnswerService = (*Service)(nil)

// Default configuration values.
const (
	DefaultBaseURL     = "https://openrouter.ai/api/v1"
	DefaultModel       = "openai/gpt-4o-mini"
	DefaultTimeout     = 120 * time.Second
	DefaultTemperature = 0.3
	DefaultMaxTokens   = 512

	// DefaultRequestsPerMinute bounds outbound calls so a chatty session
	// stays inside free-tier quotas.
	DefaultRequestsPerMinute = 20
)

// Config holds configuration for the OpenRouter answer service.
type Config struct {
	// APIKey is the OpenRouter API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://openrouter.ai/api/v1).
	BaseURL string

	// Model is the model to use (default: openai/gpt-4o-mini).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration

	// Temperature controls sampling (default: 0.3). Nil means unset;
	// an explicit zero is a valid deterministic setting.
	Temperature *float64

	// MaxTokens caps the completion length (default: 512).
	MaxTokens int

	// RequestsPerMinute throttles outbound calls (default: 20).
	RequestsPerMinute int
}

// Service provides answer generation using the OpenRouter API.
type Service struct {
	client      *http.Client
	limiter     *rate.Limiter
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
}

// chatCompletionRequest is the /chat/completions request format.
type chatCompletionRequest struct {
	Model       string              `json:"model"`
	Messages    []chatCompletionMsg `json:"messages"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
	Temperature float64             `json:"temperature"`
}

// chatCompletionMsg is the chat message format.
type chatCompletionMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionResponse is the /chat/completions response format.
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error,omitempty"`
}

// New creates a new OpenRouter answer service.
func New(cfg Config) (*Service, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Temperature == nil {
		t := float64(DefaultTemperature)
		cfg.Temperature = &t
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.RequestsPerMinute == 0 {
		cfg.RequestsPerMinute = DefaultRequestsPerMinute
	}

	return &Service{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter:     rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), 1),
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: *cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

const systemPrompt = `You are a helpful document assistant. Answer the question based only on the provided context. If the context does not contain the answer, say so. When the context mentions page numbers, cite them in your answer.`

// answerPrompt builds the user message for a grounded answer.
const answerPrompt = `Context:
%s

Question: %s

Answer:`

// GenerateAnswer produces an answer to the question grounded in the
// supplied context text.
func (s *Service) GenerateAnswer(ctx context.Context, question, contextText string) (domain.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return domain.Answer{}, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}

	messages := []chatCompletionMsg{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf(answerPrompt, contextText, question)},
	}

	text, err := s.chatCompletion(ctx, messages)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("%w: %v", domain.ErrAnswerUnavailable, err)
	}

	return domain.Answer{
		Text:       text,
		Sources:    evidence.ExtractSources(text),
		Confidence: evidence.ScoreConfidence(text, contextText),
	}, nil
}

// summariseMaxWords caps the content sent to the summarisation prompt.
const summariseMaxWords = 2000

const summarisePrompt = `Summarise the following document in %d words or less.
Be concise and capture the key points.

Document:
%s

Summary:`

// Summarise creates a short summary of document content.
func (s *Service) Summarise(ctx context.Context, content string, maxWords int) (string, error) {
	words := strings.Fields(content)
	if len(words) > summariseMaxWords {
		content = strings.Join(words[:summariseMaxWords], " ")
	}

	messages := []chatCompletionMsg{
		{Role: "user", Content: fmt.Sprintf(summarisePrompt, maxWords, content)},
	}

	text, err := s.chatCompletion(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("summarise: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// chatCompletion sends one request, waiting on the rate limiter first.
func (s *Service) chatCompletion(ctx context.Context, messages []chatCompletionMsg) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	reqBody := chatCompletionRequest{
		Model:       s.model,
		Messages:    messages,
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/chat/completions",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("HTTP-Referer", "https://github.com/Iamzain804/Lumina-PDF-Bot")
	req.Header.Set("X-Title", "Lumina")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("openrouter error: %s", chatResp.Error.Message)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openrouter error (status %d): %s", resp.StatusCode, string(body))
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("openrouter: no response choices returned")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// ModelName returns the name of the model being used.
func (s *Service) ModelName() string {
	return s.model
}

// Close releases resources.
func (s *Service) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
