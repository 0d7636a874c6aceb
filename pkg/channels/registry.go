package channels

import (
	"deskpilot/pkg/config"
	"deskpilot/pkg/gateway"

	jsoniter "github.com/json-iterator/go"
)

// ChannelFactory defines the abstract interface for platform-specific
// channel creators. New front ends (e.g. Discord, voice) plug in here
// without touching the gateway core.
type ChannelFactory interface {
	// Create instantiates a concrete Channel from its raw configuration
	// block and shared system settings.
	Create(rawConfig jsoniter.RawMessage, system *config.SystemConfig) (gateway.Channel, error)
}

// channelRegistry maps platform names to their factories. Populated during
// init() by the concrete channel packages.
var channelRegistry = make(map[string]ChannelFactory)

// RegisterChannel adds a ChannelFactory under a platform name.
func RegisterChannel(name string, factory ChannelFactory) {
	channelRegistry[name] = factory
}

// GetChannelFactory retrieves a registered ChannelFactory by platform name.
func GetChannelFactory(name string) (ChannelFactory, bool) {
	f, ok := channelRegistry[name]
	return f, ok
}
