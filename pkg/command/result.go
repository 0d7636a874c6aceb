package command

import "fmt"

// Result is the outcome of one handler invocation. Failure is always a value
// crossing the executor boundary, never a raised error; the Message is
// guaranteed non-empty so every outcome is explainable to the user.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	// Data carries optional handler-specific payload. The pipeline treats it
	// as opaque pass-through.
	Data map[string]any `json:"data,omitempty"`
}

// Ok builds a successful Result with a formatted message.
func Ok(format string, args ...any) Result {
	return Result{Success: true, Message: fmt.Sprintf(format, args...)}
}

// Fail builds a failed Result with a formatted message.
func Fail(format string, args ...any) Result {
	return Result{Success: false, Message: fmt.Sprintf(format, args...)}
}

// WithData attaches a payload map and returns the updated Result.
func (r Result) WithData(data map[string]any) Result {
	r.Data = data
	return r
}

// Ptr returns the Result as a pointer, for handlers that build one inline.
func (r Result) Ptr() *Result {
	return &r
}
