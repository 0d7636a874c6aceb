package executor

import (
	"context"
	"log/slog"

	"deskpilot/pkg/command"
)

// WorkflowExecutor sequences multiple steps through a StepExecutor.
// Execution is strictly sequential and fail-fast: later steps are assumed to
// depend on the observable side effects of earlier ones (a window must gain
// focus before text can be typed into it), so steps never run out of order
// or concurrently, and the first failure stops everything.
type WorkflowExecutor struct {
	steps *StepExecutor
}

// NewWorkflowExecutor creates a workflow executor on top of a step executor.
func NewWorkflowExecutor(steps *StepExecutor) *WorkflowExecutor {
	return &WorkflowExecutor{steps: steps}
}

// RunWorkflow executes steps in order, 1-indexed for reporting, and
// aggregates a single Result. On failure the message names the failing step
// and carries the step's own message.
func (e *WorkflowExecutor) RunWorkflow(ctx context.Context, steps []command.StepSpec) command.Result {
	slog.Info("Executing workflow", "steps", len(steps))

	for i, step := range steps {
		slog.Info("Workflow step", "index", i+1, "total", len(steps), "action", step.Action)

		res := e.steps.Run(ctx, step.Action, step.Parameters)
		if !res.Success {
			slog.Warn("Workflow aborted", "failed_step", i+1, "action", step.Action, "message", res.Message)
			return command.Fail("Workflow failed at step %d: %s", i+1, res.Message)
		}
	}

	return command.Ok("Workflow completed successfully (%d steps)", len(steps))
}
