package openainlu

import (
	"log/slog"
	"os"

	"deskpilot/pkg/config"
	"deskpilot/pkg/nlu"
)

// OpenAIFactory handles creation of OpenAI clients.
type OpenAIFactory struct{}

// Create implements nlu.ProviderFactory.
func (f *OpenAIFactory) Create(cfg nlu.ProviderGroupConfig, sys *config.SystemConfig, systemPrompt string) ([]nlu.Client, error) {
	apiKey := ""
	if len(cfg.APIKeys) > 0 {
		apiKey = cfg.APIKeys[0]
	}
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	var clients []nlu.Client
	for _, model := range cfg.Models {
		client, err := NewClient("openai", apiKey, model, cfg.BaseURL, systemPrompt)
		if err != nil {
			slog.Error("Failed to create OpenAI client", "model", model, "error", err)
			continue
		}
		clients = append(clients, client)
	}
	return clients, nil
}

func init() {
	nlu.RegisterProvider("openai", &OpenAIFactory{})
}
