package nlu

import "deskpilot/pkg/config"

// ProviderGroupConfig describes one provider entry in the "nlu" config list.
type ProviderGroupConfig struct {
	Type    string         `json:"type"`
	APIKeys []string       `json:"api_keys,omitempty"`
	Models  []string       `json:"models"`
	BaseURL string         `json:"base_url,omitempty"`
	Options map[string]any `json:"options,omitempty"`
}

// ProviderFactory builds the atomic clients for one provider group.
// systemPrompt is the generated action-catalog prompt every client sends as
// its system instruction.
type ProviderFactory interface {
	Create(group ProviderGroupConfig, system *config.SystemConfig, systemPrompt string) ([]Client, error)
}

var providerRegistry = make(map[string]ProviderFactory)

// RegisterProvider registers a factory under a provider type name. Providers
// call this from init(); the autoload package pulls them in.
func RegisterProvider(name string, factory ProviderFactory) {
	providerRegistry[name] = factory
}

// GetProviderFactory retrieves a registered factory by provider type name.
func GetProviderFactory(name string) (ProviderFactory, bool) {
	f, ok := providerRegistry[name]
	return f, ok
}
