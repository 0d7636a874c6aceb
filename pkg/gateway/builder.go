package gateway

import (
	"fmt"

	"deskpilot/pkg/monitor"
)

// GatewayBuilder provides a fluent interface for assembling a GatewayManager
// with its monitor, handler, and channels, then starting everything in the
// right order.
type GatewayBuilder struct {
	gw       *GatewayManager
	monitor  monitor.Monitor
	handler  InstructionHandler
	channels []Channel
	loader   func(g *GatewayManager)
}

// NewGatewayBuilder creates a fresh builder around an empty manager.
func NewGatewayBuilder() *GatewayBuilder {
	return &GatewayBuilder{
		gw: NewGatewayManager(),
	}
}

// WithMonitor injects a traffic monitor; it is started during Build.
func (b *GatewayBuilder) WithMonitor(m monitor.Monitor) *GatewayBuilder {
	b.monitor = m
	return b
}

// WithHandler injects the core instruction handler.
func (b *GatewayBuilder) WithHandler(h InstructionHandler) *GatewayBuilder {
	b.handler = h
	return b
}

// WithChannel adds pre-built channel instances.
func (b *GatewayBuilder) WithChannel(channels ...Channel) *GatewayBuilder {
	b.channels = append(b.channels, channels...)
	return b
}

// WithChannelLoader registers a callback that creates and registers channels
// from configuration during Build.
func (b *GatewayBuilder) WithChannelLoader(loader func(g *GatewayManager)) *GatewayBuilder {
	b.loader = loader
	return b
}

// Build wires everything together, starts the monitor and all channels, and
// returns the running manager.
func (b *GatewayBuilder) Build() (*GatewayManager, error) {
	if b.handler == nil {
		return nil, fmt.Errorf("gateway requires an instruction handler")
	}
	b.gw.SetHandler(b.handler)

	if b.monitor != nil {
		b.gw.SetMonitor(b.monitor)
		if err := b.monitor.Start(); err != nil {
			return nil, fmt.Errorf("failed to start monitor: %w", err)
		}
	}

	for _, c := range b.channels {
		b.gw.Register(c)
	}
	if b.loader != nil {
		b.loader(b.gw)
	}

	if err := b.gw.StartAll(); err != nil {
		return nil, err
	}

	return b.gw, nil
}
