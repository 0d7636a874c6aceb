package nlu

import (
	"fmt"
	"log/slog"
	"time"

	"deskpilot/pkg/config"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// NewFromConfig builds the NLU client stack from the raw "nlu" config block.
// Every provider group contributes its atomic clients; more than one client
// total gets wrapped in a FallbackClient with the system-level retry policy.
func NewFromConfig(rawNLU jsoniter.RawMessage, system *config.SystemConfig, systemPrompt string) (Client, error) {
	if len(rawNLU) == 0 {
		return nil, fmt.Errorf("missing 'nlu' config")
	}

	var groups []ProviderGroupConfig
	if err := json.Unmarshal(rawNLU, &groups); err != nil {
		return nil, fmt.Errorf("failed to parse 'nlu' config: %w", err)
	}

	var clients []Client
	for _, group := range groups {
		slog.Info("Loading NLU provider group", "type", group.Type, "models", len(group.Models))

		factory, ok := GetProviderFactory(group.Type)
		if !ok {
			slog.Warn("Unknown NLU provider type", "type", group.Type)
			continue
		}

		created, err := factory.Create(group, system, systemPrompt)
		if err != nil {
			slog.Warn("Failed to create NLU clients", "type", group.Type, "error", err)
			continue
		}
		clients = append(clients, created...)
	}

	if len(clients) == 0 {
		return nil, fmt.Errorf("no NLU clients could be initialized")
	}

	slog.Info("NLU clients initialized", "count", len(clients))

	var client Client
	if len(clients) == 1 {
		client = clients[0]
	} else {
		client = &FallbackClient{
			Clients:    clients,
			MaxRetries: system.MaxRetries,
			RetryDelay: time.Duration(system.RetryDelayMs) * time.Millisecond,
		}
	}

	if system.NLUTimeoutMs > 0 {
		client = &TimeoutClient{
			Client:  client,
			Timeout: time.Duration(system.NLUTimeoutMs) * time.Millisecond,
		}
	}

	return client, nil
}
