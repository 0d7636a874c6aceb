package workflows

import (
	"context"

	"deskpilot/pkg/actions"
	"deskpilot/pkg/command"
	"deskpilot/pkg/executor"
)

// Handlers returns the workflow template actions. Loaded templates are
// replayed through the given workflow executor.
func Handlers(store *Store, wf *executor.WorkflowExecutor) []actions.Handler {
	return []actions.Handler{
		actions.NewFunc("save_workflow",
			"Save a named sequence of steps for later reuse (parameters: name, steps, description)",
			func(ctx context.Context, params map[string]any) (*command.Result, error) {
				name := actions.String(params, "name", "")
				description := actions.String(params, "description", "")
				steps := stepsFromParam(params["steps"])

				if name == "" || len(steps) == 0 {
					return command.Fail("Workflow name and steps required").Ptr(), nil
				}

				if err := store.Save(name, description, steps); err != nil {
					return command.Fail("Failed to save workflow: %v", err).Ptr(), nil
				}
				return command.Ok("Workflow '%s' saved", name).Ptr(), nil
			}),

		actions.NewFunc("load_workflow",
			"Load a saved workflow and run its steps (parameters: name)",
			func(ctx context.Context, params map[string]any) (*command.Result, error) {
				name := actions.String(params, "name", "")
				if name == "" {
					return command.Fail("No workflow name provided").Ptr(), nil
				}

				t, err := store.Load(name)
				if err != nil {
					return command.Fail("Workflow '%s' not found", name).Ptr(), nil
				}

				return wf.RunWorkflow(ctx, t.Steps).Ptr(), nil
			}),

		actions.NewFunc("list_workflows",
			"List all saved workflows (parameters: none)",
			func(ctx context.Context, params map[string]any) (*command.Result, error) {
				templates, err := store.List()
				if err != nil {
					return command.Fail("Failed to list workflows: %v", err).Ptr(), nil
				}

				entries := make([]map[string]any, 0, len(templates))
				for _, t := range templates {
					entries = append(entries, map[string]any{
						"name":        t.Name,
						"description": t.Description,
						"steps_count": len(t.Steps),
						"usage_count": t.UsageCount,
					})
				}

				return command.Ok("Found %d workflows", len(templates)).
					WithData(map[string]any{"workflows": entries}).Ptr(), nil
			}),
	}
}

// stepsFromParam coerces the loosely-typed steps argument into StepSpecs,
// dropping entries without a string action.
func stepsFromParam(raw any) []command.StepSpec {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}

	var steps []command.StepSpec
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		action, ok := m["action"].(string)
		if !ok || action == "" {
			continue
		}
		params, _ := m["parameters"].(map[string]any)
		if params == nil {
			params = map[string]any{}
		}
		steps = append(steps, command.StepSpec{Action: action, Parameters: params})
	}

	return steps
}
