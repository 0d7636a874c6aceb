package nlu

import (
	"fmt"
	"strings"

	"deskpilot/pkg/actions"
)

// BuildSystemPrompt generates the NLU system instruction from the live
// action registry. The catalog is derived from handler descriptions instead
// of being maintained by hand, so registering a new action automatically
// teaches the parser about it.
func BuildSystemPrompt(registry *actions.Registry, extra string) string {
	var sb strings.Builder

	sb.WriteString("You are a desktop automation assistant. Parse user commands into structured JSON actions.\n\n")
	sb.WriteString("Available actions:\n")

	for _, h := range registry.All() {
		fmt.Fprintf(&sb, "- %s: %s\n", h.Name(), h.Description())
	}

	sb.WriteString(`
For multi-step tasks, return steps as a list. Each step must have action and parameters.

Respond ONLY with valid JSON in this exact format:
{
  "action": "action_name",
  "parameters": {},
  "steps": [],
  "description": "human readable description"
}

For single actions, steps must be an empty list.
For multi-step workflows, each entry in steps must be {"action": "...", "parameters": {...}}.
If the request cannot be mapped to any available action, use action "error" with a short description of why.
`)

	if extra != "" {
		sb.WriteString("\nAdditional instructions:\n")
		sb.WriteString(extra)
		sb.WriteString("\n")
	}

	return sb.String()
}
