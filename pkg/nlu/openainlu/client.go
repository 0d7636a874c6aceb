package openainlu

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Client parses instructions through the OpenAI chat completions API. It
// also serves OpenAI-compatible gateways via a custom base URL.
type Client struct {
	client       *openai.Client
	provider     string
	model        string
	systemPrompt string
}

// NewClient creates an OpenAI client.
func NewClient(provider, apiKey, model, baseURL, systemPrompt string) (*Client, error) {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(opts...)

	return &Client{
		client:       &client,
		provider:     provider,
		model:        model,
		systemPrompt: systemPrompt,
	}, nil
}

func (c *Client) Provider() string {
	return c.provider
}

// ParseCommand implements nlu.Client.
func (c *Client) ParseCommand(ctx context.Context, instruction string) (string, error) {
	slog.Debug("OpenAI parse request", "provider", c.provider, "model", c.model)

	params := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.systemPrompt),
			openai.UserMessage(fmt.Sprintf("Parse this command: %s", instruction)),
		},
	}

	// JSON mode keeps the output machine-decodable without schema plumbing.
	resp, err := c.client.Chat.Completions.New(ctx, params,
		option.WithJSONSet("response_format", map[string]any{"type": "json_object"}),
	)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from model %s", c.model)
	}
	return resp.Choices[0].Message.Content, nil
}

// IsTransientError implements nlu.Client.
func (c *Client) IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())

	// Transient: network-level issues
	if strings.Contains(msg, "context deadline exceeded") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "timeout") {
		return true
	}

	// Transient: server-side temporary failures
	if strings.Contains(msg, "429") ||
		strings.Contains(msg, "500 internal") ||
		strings.Contains(msg, "502 bad gateway") ||
		strings.Contains(msg, "503 service unavailable") ||
		strings.Contains(msg, "overloaded") {
		return true
	}

	// Everything else (400 Bad Request, 401 Unauthorized, etc.) is non-transient
	return false
}
