package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"core/internal/config"
	"core/internal/textutil"

	"go.uber.org/zap"
)

// ErrUpstreamTimeout marks a generative call that exceeded its configured
// bound. It is surfaced as a distinct outcome, never retried: a hidden retry
// could double-invoke a billed call.
var ErrUpstreamTimeout = errors.New("generative backend timed out")

// GenerateRequest is a single generative invocation: a prompt, an optional
// "ground with live web context" flag, and an optional output schema.
type GenerateRequest struct {
	Prompt     string
	WebContext bool
	Schema     map[string]any
}

// GenerateResult is the tagged union a generative call produces: free text,
// or a schema-conforming object. Structured is nil for free-text calls.
type GenerateResult struct {
	Text       string
	Structured map[string]any
}

// Generator is the interface to the generative-text backend
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
}

// LLMClient talks to an OpenAI-compatible chat completions endpoint
type LLMClient struct {
	config     *config.LLMConfig
	httpClient *http.Client
	log        *zap.Logger
}

// Ensure LLMClient implements Generator
var _ Generator = (*LLMClient)(nil)

// NewLLMClient creates a new generative backend client
func NewLLMClient(cfg *config.LLMConfig, log *zap.Logger) *LLMClient {
	return &LLMClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		log: log,
	}
}

// chatCompletionRequest represents a chat completion request
type chatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
	ExtraBody      map[string]any  `json:"extra_body,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"` // "json_object" or "text"
}

// chatCompletionResponse represents the API response
type chatCompletionResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int         `json:"index"`
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Generate performs one generative invocation. When a schema is given, the
// endpoint is asked for a JSON object and the content is recovered with the
// loose parser; otherwise the raw text comes back verbatim.
func (c *LLMClient) Generate(ctx context.Context, genReq GenerateRequest) (*GenerateResult, error) {
	if !c.config.Enabled {
		return nil, fmt.Errorf("generative backend is not enabled (missing API key)")
	}

	prompt := genReq.Prompt
	req := chatCompletionRequest{
		Model:       c.config.Model,
		Temperature: c.config.Temperature,
		MaxTokens:   c.config.MaxTokens,
	}

	if genReq.Schema != nil {
		schemaJSON, err := json.Marshal(genReq.Schema)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal output schema: %w", err)
		}
		prompt = fmt.Sprintf("%s\n\nRéponds UNIQUEMENT avec un objet JSON valide conforme à ce schéma :\n%s", prompt, schemaJSON)
		req.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	req.Messages = []chatMessage{{Role: "user", Content: prompt}}

	if genReq.WebContext && c.config.WebContextExtraBody != "" {
		var extraBody map[string]any
		if err := json.Unmarshal([]byte(c.config.WebContextExtraBody), &extraBody); err == nil {
			req.ExtraBody = extraBody
		} else {
			c.log.Warn("failed to parse LLM_WEB_CONTEXT_EXTRA_BODY", zap.Error(err))
		}
	}

	resp, err := c.chatCompletion(ctx, req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", ErrUpstreamTimeout, err)
		}
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in generative response")
	}
	content := resp.Choices[0].Message.Content

	result := &GenerateResult{Text: content}
	if genReq.Schema != nil {
		var structured map[string]any
		if err := textutil.ParseLooseJSON(content, &structured); err != nil {
			// A schema'd call that came back unparseable degrades to raw text;
			// the normalizer treats it like a free-text reply.
			c.log.Warn("structured response not parseable, keeping raw text", zap.Error(err))
		} else {
			result.Structured = structured
		}
	}
	return result, nil
}

func (c *LLMClient) chatCompletion(ctx context.Context, req chatCompletionRequest) (*chatCompletionResponse, error) {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/chat/completions", c.config.APIBase)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.APIKey))

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	c.log.Debug("generative call completed",
		zap.Duration("took", time.Since(start)),
		zap.Int("total_tokens", result.Usage.TotalTokens))

	return &result, nil
}

// isTimeout recognizes both client-side deadline expiry and the transport's
// own timeout error
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}
