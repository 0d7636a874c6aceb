// Package desktop provides the application-control and shell actions. The
// platform-specific pieces live behind the Worker interface with one
// implementation per OS.
package desktop

import (
	"context"
	"strings"

	"deskpilot/pkg/actions"
	"deskpilot/pkg/command"

	"github.com/shirou/gopsutil/v4/process"
)

// Handlers returns the desktop control actions backed by the platform worker.
func Handlers() []actions.Handler {
	worker := NewOSWorker()

	return []actions.Handler{
		actions.NewFunc("open_app",
			"Open an application (parameters: app_name)",
			func(ctx context.Context, params map[string]any) (*command.Result, error) {
				name := actions.String(params, "app_name", "")
				if name == "" {
					return command.Fail("No application name provided").Ptr(), nil
				}
				if err := worker.OpenApp(ctx, name); err != nil {
					return command.Fail("Failed to open %s", name).Ptr(), nil
				}
				return command.Ok("Opened %s", name).Ptr(), nil
			}),

		actions.NewFunc("close_app",
			"Close a running application by name (parameters: app_name)",
			func(ctx context.Context, params map[string]any) (*command.Result, error) {
				name := actions.String(params, "app_name", "")
				if name == "" {
					return command.Fail("No application name provided").Ptr(), nil
				}
				closed, err := closeByName(ctx, name)
				if err != nil {
					return command.Fail("Failed to close %s: %v", name, err).Ptr(), nil
				}
				if closed == 0 {
					return command.Fail("%s is not running", name).Ptr(), nil
				}
				return command.Ok("Closed %d instance(s) of %s", closed, name).Ptr(), nil
			}),

		actions.NewFunc("lock_screen",
			"Lock the computer screen (parameters: none)",
			func(ctx context.Context, params map[string]any) (*command.Result, error) {
				method, err := worker.LockScreen(ctx)
				if err != nil {
					return command.Fail("Failed to lock screen: %v", err).Ptr(), nil
				}
				return command.Ok("Screen locked successfully (using %s)", method).Ptr(), nil
			}),

		actions.NewFunc("run_command",
			"Execute a shell command and return its output (parameters: command)",
			func(ctx context.Context, params map[string]any) (*command.Result, error) {
				cmdStr := actions.String(params, "command", "")
				if cmdStr == "" {
					return command.Fail("No command provided").Ptr(), nil
				}
				output, err := worker.RunCommand(ctx, cmdStr)
				if err != nil {
					return command.Fail("Command failed: %v", err).
						WithData(map[string]any{"output": output}).Ptr(), nil
				}
				msg := strings.TrimSpace(output)
				if msg == "" {
					msg = "Command executed"
				}
				return command.Ok("%s", msg).
					WithData(map[string]any{"output": output}).Ptr(), nil
			}),
	}
}

// closeByName terminates every process whose name contains the given string,
// case-insensitively, and reports how many were signalled.
func closeByName(ctx context.Context, appName string) (int, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return 0, err
	}

	needle := strings.ToLower(appName)
	closed := 0
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(name), needle) {
			if err := p.TerminateWithContext(ctx); err == nil {
				closed++
			}
		}
	}

	return closed, nil
}
