package nlu

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Client is the contract for a natural-language-understanding provider.
// One instruction string goes in; one raw text blob comes back that should
// decode into a Command object. The pipeline never trusts the blob; the
// structure validator deals with whatever actually comes back.
type Client interface {
	// ParseCommand sends one user instruction and returns the provider's raw
	// textual output.
	ParseCommand(ctx context.Context, instruction string) (string, error)

	// Provider names the backing service ("gemini", "openai", "ollama").
	Provider() string

	// IsTransientError reports whether err is worth retrying (rate limits,
	// 5xx, network hiccups) as opposed to a permanent failure (bad key,
	// malformed request).
	IsTransientError(err error) bool
}

// FallbackClient tries a list of clients in order, retrying transient errors
// per client before moving to the next. It satisfies Client itself so the
// interpreter never knows whether it is talking to one provider or a chain.
type FallbackClient struct {
	Clients    []Client
	MaxRetries int
	RetryDelay time.Duration
}

// ParseCommand implements Client.
func (f *FallbackClient) ParseCommand(ctx context.Context, instruction string) (string, error) {
	var lastErr error

	for i, client := range f.Clients {
		if i > 0 {
			slog.Warn("Previous NLU provider failed, trying fallback", "provider", client.Provider(), "position", i+1)
		}

		maxRetries := f.MaxRetries
		if maxRetries <= 0 {
			maxRetries = 1
		}

		for retry := 1; retry <= maxRetries; retry++ {
			if retry > 1 {
				select {
				case <-ctx.Done():
					return "", ctx.Err()
				case <-time.After(time.Duration(retry-1) * f.RetryDelay):
				}
			}

			out, err := client.ParseCommand(ctx, instruction)
			if err == nil {
				return out, nil
			}
			lastErr = err

			if client.IsTransientError(err) && retry < maxRetries {
				slog.Warn("NLU provider transient error, retrying", "provider", client.Provider(), "attempt", retry, "error", err)
				continue
			}

			slog.Error("NLU provider failed", "provider", client.Provider(), "error", err)
			break
		}
	}

	return "", fmt.Errorf("all NLU providers failed, last error: %w", lastErr)
}

// Provider implements Client.
func (f *FallbackClient) Provider() string {
	return "fallback"
}

// IsTransientError implements Client. A FallbackClient error means every
// child already exhausted its retries, so it is never transient.
func (f *FallbackClient) IsTransientError(err error) bool {
	return false
}

// TimeoutClient bounds each ParseCommand call with a fixed deadline, on top
// of whatever deadline the caller's context already carries.
type TimeoutClient struct {
	Client  Client
	Timeout time.Duration
}

// ParseCommand implements Client.
func (t *TimeoutClient) ParseCommand(ctx context.Context, instruction string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.Timeout)
	defer cancel()
	return t.Client.ParseCommand(ctx, instruction)
}

// Provider implements Client.
func (t *TimeoutClient) Provider() string {
	return t.Client.Provider()
}

// IsTransientError implements Client.
func (t *TimeoutClient) IsTransientError(err error) bool {
	return t.Client.IsTransientError(err)
}
