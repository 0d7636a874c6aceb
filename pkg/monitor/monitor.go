package monitor

import "time"

// MonitorMessage represents one entry flowing through the monitor: either a
// user instruction or the assistant's result for it.
type MonitorMessage struct {
	Timestamp   time.Time
	MessageType string // "USER" or "ASSISTANT"
	ChannelID   string
	Username    string
	Content     string
	Success     bool // meaningful for ASSISTANT entries only
}

// Monitor observes traffic across all front-end channels.
type Monitor interface {
	// Start activates the monitor.
	Start() error

	// Stop shuts the monitor down.
	Stop() error

	// OnMessage receives and displays one monitoring entry.
	OnMessage(msg MonitorMessage)
}
