//go:build darwin

package desktop

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// DarwinWorker implements Worker for macOS.
type DarwinWorker struct {
	workingDir string
}

func NewOSWorker() Worker {
	cwd, _ := os.Getwd()
	return &DarwinWorker{
		workingDir: cwd,
	}
}

func (w *DarwinWorker) OpenApp(ctx context.Context, name string) error {
	cmd := exec.CommandContext(ctx, "open", "-a", name)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("open -a %s: %s", name, strings.TrimSpace(string(output)))
	}
	return nil
}

func (w *DarwinWorker) LockScreen(ctx context.Context) (string, error) {
	cgsession := "/System/Library/CoreServices/Menu Extras/User.menu/Contents/Resources/CGSession"
	cmd := exec.CommandContext(ctx, cgsession, "-suspend")
	if err := cmd.Run(); err == nil {
		return "CGSession", nil
	}

	// Fallback: blank the display, which triggers the lock when
	// "require password after sleep" is enabled.
	cmd = exec.CommandContext(ctx, "pmset", "displaysleepnow")
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("no lock method succeeded: %w", err)
	}
	return "pmset", nil
}

func (w *DarwinWorker) RunCommand(ctx context.Context, cmdStr string) (string, error) {
	slog.Info("Executing command", "dir", w.workingDir, "command", cmdStr)

	// Append pwd so directory changes survive into the next call.
	fullCmd := fmt.Sprintf("cd %q && %s && pwd", w.workingDir, cmdStr)

	cmd := exec.CommandContext(ctx, "/bin/zsh", "-c", fullCmd)
	outputBytes, err := cmd.CombinedOutput()
	output := string(outputBytes)

	if err != nil {
		return output, err
	}

	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) > 0 {
		possibleCwd := lines[len(lines)-1]
		if info, statErr := os.Stat(possibleCwd); statErr == nil && info.IsDir() {
			w.workingDir = possibleCwd
			output = strings.Join(lines[:len(lines)-1], "\n")
		}
	}

	return output, nil
}
