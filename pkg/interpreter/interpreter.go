package interpreter

import (
	"context"
	"fmt"
	"log/slog"

	"deskpilot/pkg/actions"
	"deskpilot/pkg/command"
	"deskpilot/pkg/executor"
	"deskpilot/pkg/nlu"
)

// Interpreter is the facade front ends talk to: raw user text in, one
// uniform Result out. It owns the full pipeline (NLU call, structure
// validation, and dispatch to either a single action or a workflow) and it
// never returns an error or panics across its public boundary. Every fault
// along the way is absorbed into a failed Result with a readable message.
//
// The registry is injected at construction, never reached through package
// state, so tests can substitute a fake one.
type Interpreter struct {
	client    nlu.Client
	steps     *executor.StepExecutor
	workflows *executor.WorkflowExecutor
}

// New creates an Interpreter over an NLU client and an action registry.
func New(client nlu.Client, registry *actions.Registry) *Interpreter {
	steps := executor.NewStepExecutor(registry)
	return &Interpreter{
		client:    client,
		steps:     steps,
		workflows: executor.NewWorkflowExecutor(steps),
	}
}

// Interpret runs one instruction through the pipeline. Each call is
// one-shot: there is no retry state, and the Command built for it is
// consumed exactly once. Cancellation and deadlines arrive via ctx; the
// caller decides the bounds.
func (it *Interpreter) Interpret(ctx context.Context, text string) command.Result {
	_, result := it.Run(ctx, text)
	return result
}

// Run is Interpret plus the parsed Command, for callers that record what was
// attempted alongside the outcome.
func (it *Interpreter) Run(ctx context.Context, text string) (command.Command, command.Result) {
	cmd := it.parse(ctx, text)

	slog.Info("Instruction parsed", "action", cmd.Action, "steps", len(cmd.Steps), "description", cmd.Description)

	// Error commands never touch the registry.
	if cmd.IsError() {
		msg := cmd.Description
		if msg == "" {
			// The message invariant holds even when the model declares an
			// error without saying why.
			msg = "Unable to interpret command"
		}
		return cmd, command.Fail("%s", msg)
	}

	if len(cmd.Steps) == 0 {
		return cmd, it.steps.Run(ctx, cmd.Action, cmd.Parameters)
	}
	return cmd, it.workflows.RunWorkflow(ctx, cmd.Steps)
}

// parse calls the NLU collaborator and validates its output, converting
// every failure mode, from transport fault to schema violation,
// into a Command (possibly the error sentinel) rather than an error.
func (it *Interpreter) parse(ctx context.Context, text string) command.Command {
	out, err := it.client.ParseCommand(ctx, text)
	if err != nil {
		slog.Error("NLU call failed", "error", err)
		return command.Validate(errorRaw(err.Error(), fmt.Sprintf("Error parsing command: %v", err)))
	}

	raw, err := command.Decode(out)
	if err != nil {
		slog.Error("NLU output not decodable", "error", err)
		return command.Validate(errorRaw(err.Error(), "Invalid JSON response from AI"))
	}

	return command.Validate(raw)
}

// errorRaw synthesizes the raw object shape the validator expects for a
// locally recovered fault.
func errorRaw(detail, description string) map[string]any {
	return map[string]any{
		"action":      command.ActionError,
		"parameters":  map[string]any{"error": detail},
		"steps":       []any{},
		"description": description,
	}
}
