package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/agenthub/internal/config"
	"github.com/localnerve/agenthub/internal/types"
)

// maxErrorBodyBytes bounds how much of an upstream error body is propagated.
const maxErrorBodyBytes = 4096

// CompletionClient invokes an OpenAI-compatible /chat/completions endpoint
// (OpenRouter in production configuration). One request, one response: no
// retry, no backoff, no streaming.
type CompletionClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// CompletionUsage is the token accounting reported by the completion engine.
type CompletionUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CompletionResult is a normalized successful completion.
type CompletionResult struct {
	Content string
	Model   string
	Usage   *CompletionUsage
}

// NewCompletionClient builds the client from startup configuration.
func NewCompletionClient(cfg *config.Config) *CompletionClient {
	return &CompletionClient{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.LLMBaseURL), "/"),
		apiKey:  strings.TrimSpace(cfg.LLMAPIKey),
		model:   strings.TrimSpace(cfg.LLMModel),
		httpClient: &http.Client{
			Timeout: cfg.LLMTimeout,
		},
	}
}

// Complete sends the assembled context and extracts the first choice.
// Failure kinds are distinguished for the orchestrator's error mapping:
// timeout, upstream non-2xx (status and body passed through verbatim),
// and any other transport or decode failure.
func (c *CompletionClient) Complete(ctx context.Context, turns []ChatTurn) (*CompletionResult, error) {
	reqBody := chatCompletionRequest{
		Model:    c.model,
		Messages: turns,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, types.NewError(fiber.StatusInternalServerError,
			fmt.Sprintf("LLM error: %v", err), types.ErrUpstreamTransport)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, types.NewError(fiber.StatusInternalServerError,
			fmt.Sprintf("LLM error: %v", err), types.ErrUpstreamTransport)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, types.NewError(fiber.StatusGatewayTimeout,
				"LLM request timeout", types.ErrUpstreamTimeout)
		}
		return nil, types.NewError(fiber.StatusInternalServerError,
			fmt.Sprintf("LLM error: %v", err), types.ErrUpstreamTransport)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, types.NewError(resp.StatusCode,
			fmt.Sprintf("LLM API error: %s", string(errBody)), types.ErrUpstreamStatus)
	}

	var chatResp chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, types.NewError(fiber.StatusInternalServerError,
			fmt.Sprintf("LLM error: decode response: %v", err), types.ErrUpstreamTransport)
	}
	if len(chatResp.Choices) == 0 {
		return nil, types.NewError(fiber.StatusInternalServerError,
			"LLM error: empty completion response", types.ErrUpstreamTransport)
	}

	return &CompletionResult{
		Content: chatResp.Choices[0].Message.Content,
		Model:   chatResp.Model,
		Usage:   chatResp.Usage,
	}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// OpenAI-compatible wire types.

type chatCompletionRequest struct {
	Model    string     `json:"model"`
	Messages []ChatTurn `json:"messages"`
}

type chatCompletionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message ChatTurn `json:"message"`
	} `json:"choices"`
	Usage *CompletionUsage `json:"usage"`
}
