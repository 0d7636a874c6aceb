package gateway

// SessionContext encapsulates identity and routing information for a
// specific conversation unit on a specific front-end channel.
type SessionContext struct {
	ChannelID string // Identifier of the channel that originated the session (e.g., "telegram")
	UserID    string // Platform-specific unique identifier for the user
	ChatID    string // Platform-specific identifier for the chat (may match UserID for DMs)
	Username  string // Display name of the user as provided by the platform
}

// Instruction is the standardized internal form of one incoming user
// instruction, regardless of which front end produced it.
type Instruction struct {
	Session SessionContext // Source session for routing the reply
	Text    string         // The raw natural-language instruction
}

// Channel defines the standardized lifecycle interface for front-end
// surfaces (console, web, telegram).
type Channel interface {
	ID() string
	Start(ctx ChannelContext) error
	Stop() error
	Send(session SessionContext, message string, success bool) error
}

// ChannelContext is the slice of the gateway a Channel implementation is
// allowed to touch: handing over incoming instructions.
type ChannelContext interface {
	OnInstruction(channelID string, ins *Instruction)
}

// InstructionHandler processes one instruction end to end and returns the
// reply text plus whether the underlying command succeeded. The gateway
// routes the reply back to the originating channel.
type InstructionHandler func(ins *Instruction) (reply string, success bool)
