package desktop

import "context"

// Worker abstracts the OS-native primitives that differ per platform.
// NewOSWorker returns the implementation compiled for the current OS.
type Worker interface {
	// OpenApp launches an application by name and returns immediately.
	OpenApp(ctx context.Context, name string) error
	// LockScreen locks the desktop session and reports the method used.
	LockScreen(ctx context.Context) (string, error)
	// RunCommand executes a shell command and returns its combined output.
	// The working directory persists across calls so 'cd' behaves naturally.
	RunCommand(ctx context.Context, command string) (string, error)
}
