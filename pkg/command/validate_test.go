package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRaw() map[string]any {
	return map[string]any{
		"action":      "open_app",
		"parameters":  map[string]any{"app_name": "firefox"},
		"steps":       []any{},
		"description": "Opening Firefox",
	}
}

func TestValidate_WellFormedCommand(t *testing.T) {
	cmd := Validate(validRaw())

	assert.False(t, cmd.IsError())
	assert.Equal(t, "open_app", cmd.Action)
	assert.Equal(t, "firefox", cmd.Parameters["app_name"])
	assert.Empty(t, cmd.Steps)
	assert.Equal(t, "Opening Firefox", cmd.Description)
}

func TestValidate_MissingFields(t *testing.T) {
	// The first missing field in schema order is the one reported.
	for _, field := range []string{"action", "parameters", "steps", "description"} {
		raw := validRaw()
		delete(raw, field)

		cmd := Validate(raw)

		require.True(t, cmd.IsError(), "missing %q should produce the error command", field)
		assert.Equal(t, "Missing required field: "+field, cmd.Parameters["error"])
		assert.Equal(t, "Invalid response structure: missing '"+field+"'", cmd.Description)
	}
}

func TestValidate_NonObjectInput(t *testing.T) {
	for _, raw := range []any{nil, "just text", 42.0, []any{"a", "b"}} {
		cmd := Validate(raw)

		require.True(t, cmd.IsError())
		assert.Equal(t, "Invalid response structure: missing 'action'", cmd.Description)
	}
}

func TestValidate_WrongTypedActionIsMissing(t *testing.T) {
	raw := validRaw()
	raw["action"] = 7.0

	cmd := Validate(raw)

	require.True(t, cmd.IsError())
	assert.Equal(t, "Invalid response structure: missing 'action'", cmd.Description)
}

func TestValidate_WrongTypedParametersCollapse(t *testing.T) {
	raw := validRaw()
	raw["parameters"] = "not a map"

	cmd := Validate(raw)

	require.False(t, cmd.IsError())
	assert.NotNil(t, cmd.Parameters)
	assert.Empty(t, cmd.Parameters)
}

func TestValidate_WrongTypedStepsCollapse(t *testing.T) {
	raw := validRaw()
	raw["steps"] = "not a list"

	cmd := Validate(raw)

	require.False(t, cmd.IsError())
	assert.Empty(t, cmd.Steps)
}

func TestValidate_WorkflowSteps(t *testing.T) {
	raw := validRaw()
	raw["action"] = "workflow"
	raw["steps"] = []any{
		map[string]any{"action": "open_app", "parameters": map[string]any{"app_name": "code"}},
		map[string]any{"action": "wait", "parameters": map[string]any{"seconds": 2.0}},
	}

	cmd := Validate(raw)

	require.False(t, cmd.IsError())
	require.Len(t, cmd.Steps, 2)
	assert.Equal(t, "open_app", cmd.Steps[0].Action)
	assert.Equal(t, "wait", cmd.Steps[1].Action)
}

func TestValidate_OneBadStepVoidsWholeCommand(t *testing.T) {
	raw := validRaw()
	raw["steps"] = []any{
		map[string]any{"action": "open_app", "parameters": map[string]any{}},
		"not a step",
		map[string]any{"action": "wait", "parameters": map[string]any{}},
	}

	cmd := Validate(raw)

	require.True(t, cmd.IsError())
	assert.Equal(t, "Invalid step 2", cmd.Parameters["error"])
	assert.Equal(t, "Step 2 has invalid structure", cmd.Description)
	assert.Empty(t, cmd.Steps)
}

func TestValidate_StepMissingAction(t *testing.T) {
	raw := validRaw()
	raw["steps"] = []any{
		map[string]any{"parameters": map[string]any{}},
	}

	cmd := Validate(raw)

	require.True(t, cmd.IsError())
	assert.Equal(t, "Step 1 has invalid structure", cmd.Description)
}

func TestValidate_StepMissingParameters(t *testing.T) {
	raw := validRaw()
	raw["steps"] = []any{
		map[string]any{"action": "wait"},
	}

	cmd := Validate(raw)

	require.True(t, cmd.IsError())
	assert.Equal(t, "Step 1 has invalid structure", cmd.Description)
}

func TestValidate_StepWrongTypedParametersCollapse(t *testing.T) {
	raw := validRaw()
	raw["steps"] = []any{
		map[string]any{"action": "wait", "parameters": "nope"},
	}

	cmd := Validate(raw)

	require.False(t, cmd.IsError())
	require.Len(t, cmd.Steps, 1)
	assert.Empty(t, cmd.Steps[0].Parameters)
}

func TestValidate_Idempotent(t *testing.T) {
	first := Validate(validRaw())
	second := Validate(validRaw())
	assert.Equal(t, first, second)

	// An already-valid error command round-trips unchanged too.
	errCmd := Validate(nil)
	again := Validate(map[string]any{
		"action":      errCmd.Action,
		"parameters":  errCmd.Parameters,
		"steps":       []any{},
		"description": errCmd.Description,
	})
	assert.Equal(t, errCmd.Action, again.Action)
	assert.Equal(t, errCmd.Description, again.Description)
}

func TestDecode_PlainJSON(t *testing.T) {
	raw, err := Decode(`{"action":"wait","parameters":{},"steps":[],"description":"d"}`)
	require.NoError(t, err)

	cmd := Validate(raw)
	assert.Equal(t, "wait", cmd.Action)
}

func TestDecode_StripsMarkdownFences(t *testing.T) {
	blob := "```json\n{\"action\":\"wait\",\"parameters\":{},\"steps\":[],\"description\":\"d\"}\n```"
	raw, err := Decode(blob)
	require.NoError(t, err)

	cmd := Validate(raw)
	assert.False(t, cmd.IsError())
	assert.Equal(t, "wait", cmd.Action)
}

func TestDecode_RejectsNonJSON(t *testing.T) {
	_, err := Decode("I opened the app for you!")
	assert.Error(t, err)
}
