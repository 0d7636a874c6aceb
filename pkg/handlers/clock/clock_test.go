package clock

import (
	"context"
	"testing"
	"time"

	"deskpilot/pkg/actions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWait(t *testing.T) {
	reg := actions.NewRegistry()
	reg.Register(Handlers()...)

	h, ok := reg.Lookup("wait")
	require.True(t, ok)

	start := time.Now()
	res, err := h.Execute(context.Background(), map[string]any{"seconds": 0.05})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "Waited 0.05 seconds", res.Message)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestWait_CancellationInterrupts(t *testing.T) {
	reg := actions.NewRegistry()
	reg.Register(Handlers()...)
	h, _ := reg.Lookup("wait")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	res, err := h.Execute(ctx, map[string]any{"seconds": 30.0})
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "Wait interrupted")
	assert.Less(t, time.Since(start), time.Second)
}

func TestWait_NegativeClampedToZero(t *testing.T) {
	reg := actions.NewRegistry()
	reg.Register(Handlers()...)
	h, _ := reg.Lookup("wait")

	res, err := h.Execute(context.Background(), map[string]any{"seconds": -5.0})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Waited 0 seconds", res.Message)
}
