package interpreter

import (
	"context"
	"errors"
	"testing"

	"deskpilot/pkg/actions"
	"deskpilot/pkg/command"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient returns a scripted response or error without any network.
type fakeClient struct {
	out string
	err error
}

func (f *fakeClient) ParseCommand(ctx context.Context, instruction string) (string, error) {
	return f.out, f.err
}

func (f *fakeClient) Provider() string                { return "fake" }
func (f *fakeClient) IsTransientError(err error) bool { return false }

func testRegistry(t *testing.T) *actions.Registry {
	t.Helper()
	reg := actions.NewRegistry()
	reg.Register(actions.NewFunc("greet", "say hi", func(ctx context.Context, params map[string]any) (*command.Result, error) {
		name := actions.String(params, "name", "world")
		return command.Ok("Hello, %s", name).Ptr(), nil
	}))
	reg.Register(actions.NewFunc("fail_always", "never works", func(ctx context.Context, params map[string]any) (*command.Result, error) {
		return command.Fail("intentional failure").Ptr(), nil
	}))
	return reg
}

func TestInterpret_SingleAction(t *testing.T) {
	client := &fakeClient{out: `{"action":"greet","parameters":{"name":"Sam"},"steps":[],"description":"Greeting Sam"}`}
	it := New(client, testRegistry(t))

	res := it.Interpret(context.Background(), "say hi to Sam")

	assert.True(t, res.Success)
	assert.Equal(t, "Hello, Sam", res.Message)
}

func TestInterpret_Workflow(t *testing.T) {
	client := &fakeClient{out: `{
		"action": "workflow",
		"parameters": {},
		"steps": [
			{"action": "greet", "parameters": {"name": "a"}},
			{"action": "greet", "parameters": {"name": "b"}}
		],
		"description": "Greet twice"
	}`}
	it := New(client, testRegistry(t))

	res := it.Interpret(context.Background(), "greet twice")

	assert.True(t, res.Success)
	assert.Equal(t, "Workflow completed successfully (2 steps)", res.Message)
}

func TestInterpret_WorkflowFailure(t *testing.T) {
	client := &fakeClient{out: `{
		"action": "workflow",
		"parameters": {},
		"steps": [
			{"action": "greet", "parameters": {}},
			{"action": "fail_always", "parameters": {}}
		],
		"description": "Doomed"
	}`}
	it := New(client, testRegistry(t))

	res := it.Interpret(context.Background(), "do the doomed thing")

	assert.False(t, res.Success)
	assert.Equal(t, "Workflow failed at step 2: intentional failure", res.Message)
}

func TestInterpret_NLUTransportFailure(t *testing.T) {
	client := &fakeClient{err: errors.New("connection refused")}
	it := New(client, testRegistry(t))

	res := it.Interpret(context.Background(), "anything")

	assert.False(t, res.Success)
	assert.Equal(t, "Error parsing command: connection refused", res.Message)
}

func TestInterpret_UndecodableOutput(t *testing.T) {
	client := &fakeClient{out: "Sure! I'll open Firefox for you."}
	it := New(client, testRegistry(t))

	res := it.Interpret(context.Background(), "open firefox")

	assert.False(t, res.Success)
	assert.Equal(t, "Invalid JSON response from AI", res.Message)
}

func TestInterpret_SchemaViolation(t *testing.T) {
	client := &fakeClient{out: `{"action":"greet","parameters":{}}`}
	it := New(client, testRegistry(t))

	res := it.Interpret(context.Background(), "greet")

	assert.False(t, res.Success)
	assert.Equal(t, "Invalid response structure: missing 'steps'", res.Message)
}

func TestInterpret_ModelDeclaredError(t *testing.T) {
	client := &fakeClient{out: `{
		"action": "error",
		"parameters": {"error": "ambiguous instruction"},
		"steps": [],
		"description": "Could not understand the request"
	}`}
	it := New(client, testRegistry(t))

	res := it.Interpret(context.Background(), "do the thing")

	assert.False(t, res.Success)
	assert.Equal(t, "Could not understand the request", res.Message)
}

func TestInterpret_ModelDeclaredErrorWithoutDescription(t *testing.T) {
	client := &fakeClient{out: `{"action":"error","parameters":{},"steps":[],"description":""}`}
	it := New(client, testRegistry(t))

	res := it.Interpret(context.Background(), "do the thing")

	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Message)
	assert.Equal(t, "Unable to interpret command", res.Message)
}

func TestInterpret_FencedJSON(t *testing.T) {
	client := &fakeClient{out: "```json\n{\"action\":\"greet\",\"parameters\":{},\"steps\":[],\"description\":\"d\"}\n```"}
	it := New(client, testRegistry(t))

	res := it.Interpret(context.Background(), "greet")

	assert.True(t, res.Success)
	assert.Equal(t, "Hello, world", res.Message)
}

func TestRun_ReturnsParsedCommand(t *testing.T) {
	client := &fakeClient{out: `{"action":"greet","parameters":{},"steps":[],"description":"Greeting"}`}
	it := New(client, testRegistry(t))

	cmd, res := it.Run(context.Background(), "greet")

	require.True(t, res.Success)
	assert.Equal(t, "greet", cmd.Action)
	assert.Equal(t, "Greeting", cmd.Description)
}

func TestInterpret_UnknownAction(t *testing.T) {
	client := &fakeClient{out: `{"action":"teleport","parameters":{},"steps":[],"description":"Teleporting"}`}
	it := New(client, testRegistry(t))

	res := it.Interpret(context.Background(), "teleport me")

	assert.False(t, res.Success)
	assert.Equal(t, "Unknown action: teleport", res.Message)
}
