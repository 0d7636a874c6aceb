package command

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// requiredFields are checked in this order; the first one missing gets named
// in the resulting error Command.
var requiredFields = []string{"action", "parameters", "steps", "description"}

// Validate checks a raw decoded NLU object against the Command schema and
// returns either the well-formed Command or the canonical error Command.
// It is total: no input, however malformed, produces an error return or panic.
//
// Leniency rules: a present-but-wrong-typed "parameters" collapses to an
// empty map and a wrong-typed "steps" to an empty list. A malformed step,
// however, invalidates the whole Command before anything executes; partial
// workflows are never kept.
func Validate(raw any) Command {
	obj, ok := raw.(map[string]any)
	if !ok || obj == nil {
		return errorCommand(
			fmt.Sprintf("Missing required field: %s", requiredFields[0]),
			fmt.Sprintf("Invalid response structure: missing '%s'", requiredFields[0]),
		)
	}

	for _, field := range requiredFields {
		if _, present := obj[field]; !present {
			return errorCommand(
				fmt.Sprintf("Missing required field: %s", field),
				fmt.Sprintf("Invalid response structure: missing '%s'", field),
			)
		}
	}

	action, ok := obj["action"].(string)
	if !ok {
		return errorCommand(
			"Missing required field: action",
			"Invalid response structure: missing 'action'",
		)
	}

	description, ok := obj["description"].(string)
	if !ok {
		return errorCommand(
			"Missing required field: description",
			"Invalid response structure: missing 'description'",
		)
	}

	params, ok := obj["parameters"].(map[string]any)
	if !ok {
		params = map[string]any{}
	}

	rawSteps, ok := obj["steps"].([]any)
	if !ok {
		rawSteps = []any{}
	}

	steps := make([]StepSpec, 0, len(rawSteps))
	for i, rawStep := range rawSteps {
		step, stepErr := validateStep(rawStep)
		if stepErr {
			// All-or-nothing: one bad step voids the entire workflow.
			return errorCommand(
				fmt.Sprintf("Invalid step %d", i+1),
				fmt.Sprintf("Step %d has invalid structure", i+1),
			)
		}
		steps = append(steps, step)
	}

	return Command{
		Action:      action,
		Parameters:  params,
		Steps:       steps,
		Description: description,
	}
}

// validateStep checks one workflow entry. Both fields must be present;
// step parameters get the same wrong-type leniency as command parameters.
func validateStep(raw any) (StepSpec, bool) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return StepSpec{}, true
	}

	action, ok := obj["action"].(string)
	if !ok {
		return StepSpec{}, true
	}

	rawParams, present := obj["parameters"]
	if !present {
		return StepSpec{}, true
	}
	params, ok := rawParams.(map[string]any)
	if !ok {
		params = map[string]any{}
	}

	return StepSpec{Action: action, Parameters: params}, false
}

// Decode parses a raw NLU text blob into a generic object suitable for
// Validate. Models wrap JSON in markdown fences often enough that stripping
// them here saves a round trip.
func Decode(text string) (any, error) {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	var raw any
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
