package actions

import (
	"context"
	"testing"

	"deskpilot/pkg/command"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stub(name string) Handler {
	return NewFunc(name, "stub "+name, func(ctx context.Context, params map[string]any) (*command.Result, error) {
		return command.Ok("ran %s", name).Ptr(), nil
	})
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	reg := NewRegistry()
	reg.Register(stub("open_app"), stub("wait"))

	h, ok := reg.Lookup("open_app")
	require.True(t, ok)
	assert.Equal(t, "open_app", h.Name())

	_, ok = reg.Lookup("nonexistent")
	assert.False(t, ok)

	assert.Equal(t, 2, reg.Len())
}

func TestRegistry_LastRegistrationWins(t *testing.T) {
	reg := NewRegistry()
	reg.Register(stub("dup"))
	replacement := NewFunc("dup", "replacement", func(ctx context.Context, params map[string]any) (*command.Result, error) {
		return command.Ok("replaced").Ptr(), nil
	})
	reg.Register(replacement)

	h, ok := reg.Lookup("dup")
	require.True(t, ok)
	assert.Equal(t, "replacement", h.Description())
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_AllSortedByName(t *testing.T) {
	reg := NewRegistry()
	reg.Register(stub("zebra"), stub("alpha"), stub("mango"))

	all := reg.All()
	require.Len(t, all, 3)
	assert.Equal(t, "alpha", all[0].Name())
	assert.Equal(t, "mango", all[1].Name())
	assert.Equal(t, "zebra", all[2].Name())
}

func TestParamAccessors(t *testing.T) {
	params := map[string]any{
		"name":    "firefox",
		"count":   3.0, // JSON numbers decode as float64
		"ratio":   0.5,
		"tags":    []any{"a", "b", 7.0},
		"strings": []string{"x", "y"},
	}

	assert.Equal(t, "firefox", String(params, "name", ""))
	assert.Equal(t, "fallback", String(params, "missing", "fallback"))
	assert.Equal(t, "fallback", String(params, "count", "fallback"))

	assert.Equal(t, 3, Int(params, "count", 0))
	assert.Equal(t, 9, Int(params, "missing", 9))

	assert.Equal(t, 0.5, Float(params, "ratio", 0))
	assert.Equal(t, 1.5, Float(params, "missing", 1.5))

	assert.Equal(t, []string{"a", "b"}, StringSlice(params, "tags"))
	assert.Equal(t, []string{"x", "y"}, StringSlice(params, "strings"))
	assert.Nil(t, StringSlice(params, "missing"))
}
