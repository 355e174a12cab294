package llm

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/MrSpecks/Website-Summarizer/internal/domain"
	"github.com/MrSpecks/Website-Summarizer/internal/ports"
)

// Client talks to OpenAI-compatible backends (api.openai.com, OpenRouter,
// or a local Ollama /v1 endpoint). The backend target varies per request,
// so the underlying SDK client is rebuilt per call; the HTTP transport is
// shared.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
}

var _ ports.ChatCompleter = (*Client)(nil)
var _ ports.ModelLister = (*Client)(nil)

// NewClient builds a reusable client; timeout bounds each completion call.
func NewClient(httpClient *http.Client, timeout time.Duration) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &Client{httpClient: httpClient, timeout: timeout}
}

// Complete performs one chat-completion exchange and returns the first
// choice's content verbatim.
func (c *Client) Complete(ctx context.Context, target domain.BackendTarget, req domain.ChatRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api(target).CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned for model %q", req.Model)
	}

	return resp.Choices[0].Message.Content, nil
}

// ListModels queries the backend's model catalog and returns the identifiers
// in lexicographic order.
func (c *Client) ListModels(ctx context.Context, target domain.BackendTarget) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	list, err := c.api(target).ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}

	ids := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		ids = append(ids, m.ID)
	}
	sort.Strings(ids)
	return ids, nil
}

func (c *Client) api(target domain.BackendTarget) *openai.Client {
	cfg := openai.DefaultConfig(target.APIKey)
	if target.BaseURL != "" {
		cfg.BaseURL = target.BaseURL
	}
	cfg.HTTPClient = c.httpClient
	return openai.NewClientWithConfig(cfg)
}
