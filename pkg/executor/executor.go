package executor

import (
	"fmt"
	"log/slog"

	"context"

	"deskpilot/pkg/actions"
	"deskpilot/pkg/command"
)

// StepExecutor resolves one (action, parameters) pair against the registry
// and normalizes every possible handler outcome (missing handler, returned
// error, nil result, panic) into a command.Result. Nothing a handler does
// can escape this boundary and crash the session.
type StepExecutor struct {
	registry *actions.Registry
}

// NewStepExecutor creates a step executor bound to an action registry.
func NewStepExecutor(registry *actions.Registry) *StepExecutor {
	return &StepExecutor{registry: registry}
}

// Run executes a single action and always returns a Result with a non-empty
// message.
func (e *StepExecutor) Run(ctx context.Context, action string, params map[string]any) command.Result {
	handler, ok := e.registry.Lookup(action)
	if !ok {
		slog.Warn("Unknown action requested", "action", action)
		return command.Fail("Unknown action: %s", action)
	}

	if params == nil {
		params = map[string]any{}
	}

	slog.Info("Executing action", "action", action, "params", params)
	res := e.invoke(ctx, handler, action, params)
	slog.Info("Action finished", "action", action, "success", res.Success)
	return res
}

// invoke calls the handler with panic containment.
func (e *StepExecutor) invoke(ctx context.Context, handler actions.Handler, action string, params map[string]any) (res command.Result) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Handler panicked", "action", action, "panic", r)
			res = command.Fail("Error executing %s: %v", action, r)
		}
	}()

	out, err := handler.Execute(ctx, params)
	if err != nil {
		return command.Fail("Error executing %s: %v", action, err)
	}
	if out == nil {
		return command.Fail("Error executing %s: handler returned no result", action)
	}

	res = *out
	if res.Message == "" {
		// The message invariant holds even for sloppy handlers.
		if res.Success {
			res.Message = fmt.Sprintf("Action %s completed", action)
		} else {
			res.Message = fmt.Sprintf("Action %s failed", action)
		}
	}
	return res
}
