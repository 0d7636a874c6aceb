// Package handlers assembles the built-in action set.
package handlers

import (
	"deskpilot/pkg/actions"
	"deskpilot/pkg/executor"
	"deskpilot/pkg/handlers/clock"
	"deskpilot/pkg/handlers/desktop"
	"deskpilot/pkg/handlers/files"
	"deskpilot/pkg/handlers/system"
	"deskpilot/pkg/handlers/web"
	"deskpilot/pkg/history"
	"deskpilot/pkg/workflows"
)

// RegisterBuiltins fills the registry with every built-in action. The
// workflow executor is needed so load_workflow can replay stored steps, and
// the journal backs the history queries.
func RegisterBuiltins(reg *actions.Registry, store *workflows.Store, wf *executor.WorkflowExecutor, journal *history.Journal) {
	reg.Register(desktop.Handlers()...)
	reg.Register(files.Handlers()...)
	reg.Register(web.Handlers()...)
	reg.Register(system.Handlers()...)
	reg.Register(clock.Handlers()...)
	reg.Register(workflows.Handlers(store, wf)...)
	reg.Register(history.Handlers(journal)...)
}
