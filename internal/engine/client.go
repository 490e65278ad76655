package engine

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"Mufasa-Assistant/server/internal/apperr"
	"Mufasa-Assistant/server/internal/config"
)

const clientTimeout = 2 * time.Minute

// Completer issues one chat-completion call and returns the first choice's
// text. Implemented by Client; tests substitute a fake.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error)
}

// Client wraps the OpenAI-compatible chat completion API.
type Client struct {
	client    *openai.Client
	apiKey    string
	model     string
	maxTokens int
}

// NewClient creates a completion client from the AI configuration. An empty
// base URL targets the public OpenAI endpoint.
func NewClient(cfg config.AIConfig) *Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{
		Timeout: clientTimeout,
	}

	return &Client{
		client:    openai.NewClientWithConfig(clientCfg),
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

// Complete sends one chat completion request. A single attempt per inbound
// request: retrying is left to the HTTP caller.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error) {
	if c.apiKey == "" {
		return "", apperr.New(apperr.KindUpstreamUnavailable, "no completion API credential configured")
	}

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: float32(temperature),
		MaxTokens:   c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", apperr.Wrap(apperr.KindUpstreamError,
				fmt.Sprintf("completion API error: %s", apiErr.Message), err)
		}
		return "", apperr.Wrap(apperr.KindUpstreamError, "completion request failed", err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
