// Package clock provides the wait action used to pace workflow steps.
package clock

import (
	"context"
	"time"

	"deskpilot/pkg/actions"
	"deskpilot/pkg/command"
)

// maxWaitSeconds caps a single wait so a runaway step cannot stall the
// pipeline indefinitely.
const maxWaitSeconds = 300

// Handlers returns the timing actions.
func Handlers() []actions.Handler {
	return []actions.Handler{
		actions.NewFunc("wait",
			"Pause for a number of seconds (parameters: seconds)",
			func(ctx context.Context, params map[string]any) (*command.Result, error) {
				seconds := actions.Float(params, "seconds", 1)
				if seconds < 0 {
					seconds = 0
				}
				if seconds > maxWaitSeconds {
					seconds = maxWaitSeconds
				}

				timer := time.NewTimer(time.Duration(seconds * float64(time.Second)))
				defer timer.Stop()

				select {
				case <-timer.C:
					return command.Ok("Waited %g seconds", seconds).Ptr(), nil
				case <-ctx.Done():
					return command.Fail("Wait interrupted: %v", ctx.Err()).Ptr(), nil
				}
			}),
	}
}
