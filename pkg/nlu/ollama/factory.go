package ollama

import (
	"log/slog"

	"deskpilot/pkg/config"
	"deskpilot/pkg/nlu"
)

// OllamaFactory handles creation of Ollama clients.
type OllamaFactory struct{}

// Create implements nlu.ProviderFactory.
func (f *OllamaFactory) Create(cfg nlu.ProviderGroupConfig, sys *config.SystemConfig, systemPrompt string) ([]nlu.Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" && sys != nil {
		baseURL = sys.OllamaDefaultURL
	}

	var clients []nlu.Client
	for _, model := range cfg.Models {
		client, err := NewOllamaClient(model, baseURL, systemPrompt)
		if err != nil {
			slog.Error("Failed to create Ollama client", "model", model, "error", err)
			continue
		}
		clients = append(clients, client)
	}
	return clients, nil
}

func init() {
	nlu.RegisterProvider("ollama", &OllamaFactory{})
}
