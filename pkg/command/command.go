package command

// ActionError is the reserved action name meaning "the instruction could not
// be interpreted". Commands carrying it never reach the registry.
const ActionError = "error"

// Command is the normalized instruction produced from natural language.
// It is created by Validate, is immutable afterwards, and is consumed
// exactly once by the interpreter.
type Command struct {
	// Action is the registry name of the handler to invoke. A Command with
	// non-empty Steps uses Steps instead and Action is informational only.
	Action string `json:"action"`
	// Parameters hold the handler arguments. Always non-nil after validation.
	Parameters map[string]any `json:"parameters"`
	// Steps is the ordered workflow when the instruction maps to more than
	// one action. Empty for single-action commands.
	Steps []StepSpec `json:"steps"`
	// Description is a human-readable summary used for logging and
	// acknowledgement. It never drives control flow.
	Description string `json:"description"`
}

// StepSpec is one (action, parameters) unit inside a multi-step Command.
type StepSpec struct {
	Action     string         `json:"action"`
	Parameters map[string]any `json:"parameters"`
}

// IsError reports whether the command is the canonical error sentinel.
func (c Command) IsError() bool {
	return c.Action == ActionError
}

// errorCommand builds the canonical error Command. detail ends up in
// parameters.error, description is the user-facing explanation.
func errorCommand(detail, description string) Command {
	params := map[string]any{}
	if detail != "" {
		params["error"] = detail
	}
	return Command{
		Action:      ActionError,
		Parameters:  params,
		Steps:       []StepSpec{},
		Description: description,
	}
}
