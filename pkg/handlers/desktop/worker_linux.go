//go:build linux

package desktop

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// LinuxWorker implements Worker for Linux desktops.
type LinuxWorker struct {
	workingDir string
}

func NewOSWorker() Worker {
	cwd, _ := os.Getwd()
	return &LinuxWorker{
		workingDir: cwd,
	}
}

func (w *LinuxWorker) OpenApp(ctx context.Context, name string) error {
	// Try the binary directly, then gtk-launch for .desktop entries,
	// then xdg-open as the catch-all.
	if path, err := exec.LookPath(name); err == nil {
		cmd := exec.Command(path)
		if err := cmd.Start(); err == nil {
			go cmd.Wait()
			return nil
		}
	}

	for _, launcher := range [][]string{
		{"gtk-launch", name},
		{"xdg-open", name},
	} {
		cmd := exec.CommandContext(ctx, launcher[0], launcher[1:]...)
		if err := cmd.Start(); err == nil {
			go cmd.Wait()
			return nil
		}
	}

	return fmt.Errorf("no launcher could start %q", name)
}

func (w *LinuxWorker) LockScreen(ctx context.Context) (string, error) {
	// Desktop environments disagree on lockers, so try them in order.
	lockMethods := []struct {
		name string
		args []string
	}{
		{"loginctl", []string{"lock-session"}},
		{"xdg-screensaver", []string{"lock"}},
		{"gnome-screensaver-command", []string{"--lock"}},
		{"dm-tool", []string{"lock"}},
		{"xscreensaver-command", []string{"-lock"}},
	}

	for _, method := range lockMethods {
		cmd := exec.CommandContext(ctx, method.name, method.args...)
		if err := cmd.Run(); err == nil {
			return method.name, nil
		}
	}

	return "", fmt.Errorf("no compatible screen locker found")
}

func (w *LinuxWorker) RunCommand(ctx context.Context, cmdStr string) (string, error) {
	slog.Info("Executing command", "dir", w.workingDir, "command", cmdStr)

	// Append pwd so directory changes survive into the next call.
	fullCmd := fmt.Sprintf("cd %q && %s && pwd", w.workingDir, cmdStr)

	cmd := exec.CommandContext(ctx, "/bin/bash", "-c", fullCmd)
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
