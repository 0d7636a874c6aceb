package console

import (
	"bufio"
	"bytes"
	"strings"
	"sync/atomic"
	"testing"

	"deskpilot/pkg/gateway"

	"github.com/stretchr/testify/assert"
)

// echoContext replies to every instruction immediately, standing in for the
// gateway.
type echoContext struct {
	ch    *ConsoleChannel
	calls int32
}

func (e *echoContext) OnInstruction(channelID string, ins *gateway.Instruction) {
	atomic.AddInt32(&e.calls, 1)
	e.ch.Send(ins.Session, "done: "+ins.Text, true)
}

func testChannel(input string) (*ConsoleChannel, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &ConsoleChannel{
		config:  ConsoleConfig{Prompt: "> "},
		scanner: bufio.NewScanner(strings.NewReader(input)),
		out:     out,
		replied: make(chan string, 1),
		done:    make(chan struct{}),
	}, out
}

func TestReadLoop_DispatchesAndPrintsReply(t *testing.T) {
	ch, out := testChannel("open firefox\n")
	ctx := &echoContext{ch: ch}

	ch.readLoop(ctx)

	assert.Equal(t, int32(1), atomic.LoadInt32(&ctx.calls))
	assert.Contains(t, out.String(), "done: open firefox")
}

func TestReadLoop_SkipsBlankLines(t *testing.T) {
	ch, _ := testChannel("\n   \nhello\n")
	ctx := &echoContext{ch: ch}

	ch.readLoop(ctx)

	assert.Equal(t, int32(1), atomic.LoadInt32(&ctx.calls))
}

func TestReadLoop_StoppedChannelStopsDispatching(t *testing.T) {
	ch, _ := testChannel("should not run\n")
	ctx := &echoContext{ch: ch}

	ch.Stop()
	ch.readLoop(ctx)

	assert.Equal(t, int32(0), atomic.LoadInt32(&ctx.calls))
}
