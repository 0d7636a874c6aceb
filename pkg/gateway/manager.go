package gateway

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"deskpilot/pkg/monitor"
)

// GatewayManager owns all registered front-end channels and routes every
// incoming instruction to the handler. Each instruction runs on its own
// goroutine so a slow NLU call or handler never freezes an interactive
// surface; within one instruction, execution stays strictly sequential.
type GatewayManager struct {
	channels map[string]Channel
	handler  InstructionHandler
	monitor  monitor.Monitor
	mu       sync.RWMutex
}

// NewGatewayManager creates an empty gateway manager.
func NewGatewayManager() *GatewayManager {
	return &GatewayManager{
		channels: make(map[string]Channel),
	}
}

// SetHandler sets the core logic every instruction is routed to.
func (g *GatewayManager) SetHandler(handler InstructionHandler) {
	g.handler = handler
}

// SetMonitor sets the traffic monitor.
func (g *GatewayManager) SetMonitor(m monitor.Monitor) {
	g.monitor = m
}

// Register registers a channel under its ID.
func (g *GatewayManager) Register(c Channel) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.channels[c.ID()] = c
}

// GetChannel retrieves a specific channel, typically for unsolicited sends.
func (g *GatewayManager) GetChannel(id string) (Channel, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	c, ok := g.channels[id]
	return c, ok
}

// StartAll starts every registered channel, passing itself as the context.
func (g *GatewayManager) StartAll() error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for id, c := range g.channels {
		slog.Info("Starting channel", "channel", id)
		if err := c.Start(g); err != nil {
			return fmt.Errorf("failed to start channel %s: %w", id, err)
		}
	}
	return nil
}

// StopAll stops every registered channel.
func (g *GatewayManager) StopAll() {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for id, c := range g.channels {
		if err := c.Stop(); err != nil {
			slog.Warn("Channel stop failed", "channel", id, "error", err)
		}
	}
}

// OnInstruction implements ChannelContext. It dispatches the instruction to
// the handler on a fresh goroutine and routes the reply back to the
// originating channel.
func (g *GatewayManager) OnInstruction(channelID string, ins *Instruction) {
	if g.handler == nil {
		slog.Error("No instruction handler configured", "channel", channelID)
		return
	}

	g.observe(monitor.MonitorMessage{
		Timestamp:   time.Now(),
		MessageType: "USER",
		ChannelID:   channelID,
		Username:    ins.Session.Username,
		Content:     ins.Text,
	})

	go func() {
		reply, success := g.handler(ins)

		g.observe(monitor.MonitorMessage{
			Timestamp:   time.Now(),
			MessageType: "ASSISTANT",
			ChannelID:   channelID,
			Username:    ins.Session.Username,
			Content:     reply,
			Success:     success,
		})

		if err := g.Reply(ins.Session, reply, success); err != nil {
			slog.Error("Failed to send reply", "channel", channelID, "error", err)
		}
	}()
}

// Reply sends a message back to the session's originating channel, along
// with whether the underlying command succeeded. Channels that can render
// the flag (the web UI) use it; text-only channels ignore it.
func (g *GatewayManager) Reply(session SessionContext, message string, success bool) error {
	c, ok := g.GetChannel(session.ChannelID)
	if !ok {
		return fmt.Errorf("unknown channel: %s", session.ChannelID)
	}
	return c.Send(session, message, success)
}

func (g *GatewayManager) observe(msg monitor.MonitorMessage) {
	if g.monitor != nil {
		g.monitor.OnMessage(msg)
	}
}
