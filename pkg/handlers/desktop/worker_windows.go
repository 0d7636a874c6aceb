//go:build windows

package desktop

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"regexp"
	"strings"
)

// WindowsWorker implements Worker for Windows. It tracks the current working
// directory so sequential shell commands (e.g. 'cd') behave like a session.
type WindowsWorker struct {
	workingDir string
}

func NewOSWorker() Worker {
	cwd, _ := os.Getwd()
	return &WindowsWorker{
		workingDir: cwd,
	}
}

func (w *WindowsWorker) OpenApp(ctx context.Context, name string) error {
	// 'start' resolves App Paths registry entries, so friendly names like
	// "notepad" or "chrome" work without a full path.
	cmd := exec.CommandContext(ctx, "cmd", "/c", "start", "", name)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("start %s: %s", name, strings.TrimSpace(string(output)))
	}
	return nil
}

func (w *WindowsWorker) LockScreen(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "rundll32.exe", "user32.dll,LockWorkStation")
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("LockWorkStation failed: %w", err)
	}
	return "LockWorkStation", nil
}

// runCommand executes a string-based shell command via PowerShell.
// It expands %VAR% to $env:VAR, forces UTF-8 output, and appends the current
// location so directory changes persist across calls.
func (w *WindowsWorker) RunCommand(ctx context.Context, cmdStr string) (string, error) {
	re := regexp.MustCompile(`%([^%]+)%`)
	expandedCmd := re.ReplaceAllString(cmdStr, `$env:$1`)

	utf8Cmd := "[Console]::OutputEncoding = [System.Text.Encoding]::UTF8; $OutputEncoding = [System.Text.Encoding]::UTF8; " + expandedCmd
	fullCmd := fmt.Sprintf("%s; $ExecutionContext.SessionState.Path.CurrentLocation.Path", utf8Cmd)

	slog.Info("Executing command", "dir", w.workingDir, "command", cmdStr)

	cmd := exec.CommandContext(ctx, "powershell", "-Command", fullCmd)
	cmd.Dir = w.workingDir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()

	output := out.String()
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) > 0 {
		// Last line should be the new PWD
		newCwd := strings.TrimSpace(lines[len(lines)-1])
		if info, statErr := os.Stat(newCwd); statErr == nil && info.IsDir() {
			w.workingDir = newCwd
			output = strings.Join(lines[:len(lines)-1], "\n")

			if strings.TrimSpace(output) == "" {
				output = fmt.Sprintf("Current directory: %s", w.workingDir)
			}
		}
	}

	return output, err
}
