package gemini

import (
	"context"
	"log/slog"
	"os"

	"deskpilot/pkg/config"
	"deskpilot/pkg/nlu"
)

// GeminiFactory handles creation of Gemini clients.
type GeminiFactory struct{}

// Create implements nlu.ProviderFactory.
func (f *GeminiFactory) Create(cfg nlu.ProviderGroupConfig, sys *config.SystemConfig, systemPrompt string) ([]nlu.Client, error) {
	apiKey := ""
	if len(cfg.APIKeys) > 0 {
		apiKey = cfg.APIKeys[0]
	}
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	var clients []nlu.Client
	for _, model := range cfg.Models {
		client, err := NewGeminiClient(context.Background(), apiKey, model, systemPrompt)
		if err != nil {
			slog.Error("Failed to create Gemini client", "model", model, "error", err)
			continue
		}
		clients = append(clients, client)
	}
	return clients, nil
}

func init() {
	nlu.RegisterProvider("gemini", &GeminiFactory{})
}
