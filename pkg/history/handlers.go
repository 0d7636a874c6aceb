package history

import (
	"context"

	"deskpilot/pkg/actions"
	"deskpilot/pkg/command"
)

// Handlers returns the journal query actions.
func Handlers(journal *Journal) []actions.Handler {
	return []actions.Handler{
		actions.NewFunc("show_history",
			"Show recent command history (parameters: count)",
			func(ctx context.Context, params map[string]any) (*command.Result, error) {
				count := actions.Int(params, "count", 10)
				entries := journal.Recent(count)

				items := make([]map[string]any, 0, len(entries))
				for _, e := range entries {
					items = append(items, map[string]any{
						"timestamp":  e.Timestamp,
						"user_input": e.UserInput,
						"action":     e.Action,
						"success":    e.Success,
						"message":    e.Message,
					})
				}

				return command.Ok("Showing %d recent commands", len(entries)).
					WithData(map[string]any{"history": items}).Ptr(), nil
			}),

		actions.NewFunc("show_statistics",
			"Show command success statistics (parameters: none)",
			func(ctx context.Context, params map[string]any) (*command.Result, error) {
				stats := journal.Statistics()
				return command.Ok("Total: %d, Success: %d, Failed: %d, Success Rate: %s",
					stats.TotalCommands, stats.Successful, stats.Failed, stats.SuccessRate).
					WithData(map[string]any{"statistics": stats}).Ptr(), nil
			}),
	}
}
