package nlu

import (
	"context"
	"errors"
	"testing"
	"time"

	"deskpilot/pkg/actions"
	"deskpilot/pkg/command"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedClient fails a fixed number of times before succeeding.
type scriptedClient struct {
	name      string
	failures  int
	transient bool
	calls     int
}

func (s *scriptedClient) ParseCommand(ctx context.Context, instruction string) (string, error) {
	s.calls++
	if s.calls <= s.failures {
		return "", errors.New("provider unavailable")
	}
	return `{"action":"wait"}`, nil
}

func (s *scriptedClient) Provider() string                { return s.name }
func (s *scriptedClient) IsTransientError(err error) bool { return s.transient }

func TestFallbackClient_RetriesTransientErrors(t *testing.T) {
	c := &scriptedClient{name: "flaky", failures: 2, transient: true}
	fb := &FallbackClient{
		Clients:    []Client{c},
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
	}

	out, err := fb.ParseCommand(context.Background(), "wait a second")

	require.NoError(t, err)
	assert.Equal(t, `{"action":"wait"}`, out)
	assert.Equal(t, 3, c.calls)
}

func TestFallbackClient_PermanentErrorSkipsRetries(t *testing.T) {
	c := &scriptedClient{name: "broken", failures: 10, transient: false}
	c2 := &scriptedClient{name: "backup", failures: 0}
	fb := &FallbackClient{
		Clients:    []Client{c, c2},
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
	}

	out, err := fb.ParseCommand(context.Background(), "do it")

	require.NoError(t, err)
	assert.Equal(t, `{"action":"wait"}`, out)
	assert.Equal(t, 1, c.calls, "permanent error must not be retried")
	assert.Equal(t, 1, c2.calls)
}

func TestFallbackClient_AllProvidersExhausted(t *testing.T) {
	c1 := &scriptedClient{name: "a", failures: 10, transient: true}
	c2 := &scriptedClient{name: "b", failures: 10, transient: true}
	fb := &FallbackClient{
		Clients:    []Client{c1, c2},
		MaxRetries: 2,
		RetryDelay: time.Millisecond,
	}

	_, err := fb.ParseCommand(context.Background(), "anything")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "all NLU providers failed")
	assert.Equal(t, 2, c1.calls)
	assert.Equal(t, 2, c2.calls)
	assert.False(t, fb.IsTransientError(err))
}

// blockingClient never returns until its context is canceled.
type blockingClient struct{}

func (b *blockingClient) ParseCommand(ctx context.Context, instruction string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (b *blockingClient) Provider() string                { return "blocking" }
func (b *blockingClient) IsTransientError(err error) bool { return false }

func TestTimeoutClient_BoundsTheCall(t *testing.T) {
	tc := &TimeoutClient{Client: &blockingClient{}, Timeout: 20 * time.Millisecond}

	start := time.Now()
	_, err := tc.ParseCommand(context.Background(), "hang forever")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, "blocking", tc.Provider())
}

func TestBuildSystemPrompt_ListsActions(t *testing.T) {
	reg := actions.NewRegistry()
	reg.Register(
		actions.NewFunc("open_app", "Open an application (parameters: app_name)", nil),
		actions.NewFunc("wait", "Pause for a number of seconds (parameters: seconds)", nil),
	)

	prompt := BuildSystemPrompt(reg, "Prefer metric units.")

	assert.Contains(t, prompt, "- open_app: Open an application (parameters: app_name)")
	assert.Contains(t, prompt, "- wait: Pause for a number of seconds (parameters: seconds)")
	assert.Contains(t, prompt, `"action"`)
	assert.Contains(t, prompt, command.ActionError)
	assert.Contains(t, prompt, "Prefer metric units.")
}
