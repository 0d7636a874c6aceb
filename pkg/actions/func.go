package actions

import (
	"context"

	"deskpilot/pkg/command"
)

// funcHandler wraps a plain function as a Handler. Most built-in actions are
// thin wrappers around one call, so a closure is usually all they need.
type funcHandler struct {
	name        string
	description string
	fn          func(ctx context.Context, params map[string]any) (*command.Result, error)
}

// NewFunc builds a Handler from a closure.
func NewFunc(name, description string, fn func(ctx context.Context, params map[string]any) (*command.Result, error)) Handler {
	return &funcHandler{name: name, description: description, fn: fn}
}

func (h *funcHandler) Name() string        { return h.name }
func (h *funcHandler) Description() string { return h.description }

func (h *funcHandler) Execute(ctx context.Context, params map[string]any) (*command.Result, error) {
	return h.fn(ctx, params)
}
