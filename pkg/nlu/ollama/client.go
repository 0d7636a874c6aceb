package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

// OllamaClient parses instructions through a local Ollama instance. Useful
// when commands should never leave the machine they automate.
type OllamaClient struct {
	client       *api.Client
	model        string
	systemPrompt string
}

// NewOllamaClient creates an Ollama client. An empty baseURL falls back to
// the environment-configured endpoint.
func NewOllamaClient(model, baseURL, systemPrompt string) (*OllamaClient, error) {
	// Local models can be slow to load; keep the HTTP client itself
	// timeout-free and let the caller's context bound the request.
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	httpClient := &http.Client{
		Transport: transport,
		Timeout:   0,
	}

	var client *api.Client
	var err error
	if baseURL != "" {
		u, parseErr := url.Parse(baseURL)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid base URL: %w", parseErr)
		}
		client = api.NewClient(u, httpClient)
	} else {
		client, err = api.ClientFromEnvironment()
		if err != nil {
			return nil, err
		}
	}

	slog.Info("Ollama client initialized", "model", model, "base_url", baseURL)

	return &OllamaClient{
		client:       client,
		model:        model,
		systemPrompt: systemPrompt,
	}, nil
}

func (o *OllamaClient) Provider() string {
	return "ollama"
}

// ParseCommand implements nlu.Client.
func (o *OllamaClient) ParseCommand(ctx context.Context, instruction string) (string, error) {
	stream := false
	req := &api.ChatRequest{
		Model: o.model,
		Messages: []api.Message{
			{Role: "system", Content: o.systemPrompt},
			{Role: "user", Content: fmt.Sprintf("Parse this command: %s", instruction)},
		},
		Stream: &stream,
		Format: json.RawMessage(`"json"`),
	}

	var sb strings.Builder
	err := o.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		sb.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", err
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("empty response from model %s", o.model)
	}
	return sb.String(), nil
}

// IsTransientError implements nlu.Client.
func (o *OllamaClient) IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())

	// A local server mid-restart or mid-model-load recovers on its own.
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "context deadline exceeded") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "503") ||
		strings.Contains(msg, "loading model")
}
