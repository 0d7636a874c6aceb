package gateway

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingChannel captures what the gateway sends back to it.
type recordingChannel struct {
	id      string
	sent    chan sentReply
	stopped bool
}

type sentReply struct {
	message string
	success bool
}

func newRecordingChannel(id string) *recordingChannel {
	return &recordingChannel{id: id, sent: make(chan sentReply, 1)}
}

func (c *recordingChannel) ID() string                 { return c.id }
func (c *recordingChannel) Start(ChannelContext) error { return nil }
func (c *recordingChannel) Stop() error                { c.stopped = true; return nil }

func (c *recordingChannel) Send(session SessionContext, message string, success bool) error {
	c.sent <- sentReply{message: message, success: success}
	return nil
}

func waitReply(t *testing.T, c *recordingChannel) sentReply {
	t.Helper()
	select {
	case r := <-c.sent:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("no reply reached the channel")
		return sentReply{}
	}
}

func TestOnInstruction_RepliesToOriginatingChannel(t *testing.T) {
	gw := NewGatewayManager()
	ch := newRecordingChannel("console")
	gw.Register(ch)
	gw.SetHandler(func(ins *Instruction) (string, bool) {
		return "Opened firefox", true
	})

	gw.OnInstruction("console", &Instruction{
		Session: SessionContext{ChannelID: "console", UserID: "local"},
		Text:    "open firefox",
	})

	got := waitReply(t, ch)
	assert.Equal(t, "Opened firefox", got.message)
	assert.True(t, got.success)
}

func TestOnInstruction_FailureFlagReachesChannel(t *testing.T) {
	gw := NewGatewayManager()
	ch := newRecordingChannel("web")
	gw.Register(ch)
	gw.SetHandler(func(ins *Instruction) (string, bool) {
		return "Workflow failed at step 2: Unknown action: fly", false
	})

	gw.OnInstruction("web", &Instruction{
		Session: SessionContext{ChannelID: "web", UserID: "127.0.0.1:1234"},
		Text:    "do a workflow",
	})

	got := waitReply(t, ch)
	assert.False(t, got.success)
	assert.Equal(t, "Workflow failed at step 2: Unknown action: fly", got.message)
}

func TestReply_UnknownChannel(t *testing.T) {
	gw := NewGatewayManager()

	err := gw.Reply(SessionContext{ChannelID: "discord"}, "hello", true)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown channel")
}
