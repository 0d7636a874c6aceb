// Package system provides host health actions: CPU, memory, and disk checks
// plus a combined report.
package system

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"deskpilot/pkg/actions"
	"deskpilot/pkg/command"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	gonet "github.com/shirou/gopsutil/v4/net"
)

// Handlers returns the system monitoring actions.
func Handlers() []actions.Handler {
	return []actions.Handler{
		actions.NewFunc("check_cpu",
			"Check current CPU usage (parameters: none)",
			func(ctx context.Context, params map[string]any) (*command.Result, error) {
				info, err := cpuUsage(ctx)
				if err != nil {
					return command.Fail("Failed to read CPU usage: %v", err).Ptr(), nil
				}
				msg := fmt.Sprintf("CPU Usage: %.1f%% (%s)", info["usage_percent"], info["status"])
				return command.Ok("%s", msg).WithData(info).Ptr(), nil
			}),

		actions.NewFunc("check_memory",
			"Check RAM usage (parameters: none)",
			func(ctx context.Context, params map[string]any) (*command.Result, error) {
				info, err := memoryUsage(ctx)
				if err != nil {
					return command.Fail("Failed to read memory usage: %v", err).Ptr(), nil
				}
				msg := fmt.Sprintf("Memory: %s/%s (%.1f%% - %s)",
					info["used_gb"], info["total_gb"], info["usage_percent"], info["status"])
				return command.Ok("%s", msg).WithData(info).Ptr(), nil
			}),

		actions.NewFunc("check_disk",
			"Check disk usage (parameters: none)",
			func(ctx context.Context, params map[string]any) (*command.Result, error) {
				info, err := diskUsage(ctx)
				if err != nil {
					return command.Fail("Failed to read disk usage: %v", err).Ptr(), nil
				}
				msg := fmt.Sprintf("Disk: %s/%s (%.1f%% - %s)",
					info["used_gb"], info["total_gb"], info["usage_percent"], info["status"])
				return command.Ok("%s", msg).WithData(info).Ptr(), nil
			}),

		actions.NewFunc("system_report",
			"Generate a full system health report (parameters: none)",
			func(ctx context.Context, params map[string]any) (*command.Result, error) {
				report, err := buildReport(ctx)
				if err != nil {
					return command.Fail("Failed to generate system report: %v", err).Ptr(), nil
				}
				return command.Ok("System report generated").
					WithData(map[string]any{"report": report}).Ptr(), nil
			}),
	}
}

func cpuUsage(ctx context.Context) (map[string]any, error) {
	percents, err := cpu.PercentWithContext(ctx, time.Second, false)
	if err != nil || len(percents) == 0 {
		return nil, fmt.Errorf("cpu percent unavailable: %w", err)
	}
	usage := percents[0]

	counts, _ := cpu.CountsWithContext(ctx, true)

	status := "Low"
	switch {
	case usage > 80:
		status = "High"
	case usage > 50:
		status = "Normal"
	}

	return map[string]any{
		"usage_percent": usage,
		"cpu_count":     counts,
		"status":        status,
	}, nil
}

func memoryUsage(ctx context.Context) (map[string]any, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, err
	}

	status := "Normal"
	switch {
	case vm.UsedPercent > 90:
		status = "Critical"
	case vm.UsedPercent > 70:
		status = "High"
	}

	return map[string]any{
		"total_gb":      gb(vm.Total),
		"available_gb":  gb(vm.Available),
		"used_gb":       gb(vm.Used),
		"usage_percent": vm.UsedPercent,
		"status":        status,
	}, nil
}

func diskUsage(ctx context.Context) (map[string]any, error) {
	usage, err := disk.UsageWithContext(ctx, diskRoot())
	if err != nil {
		return nil, err
	}

	status := "Normal"
	switch {
	case usage.UsedPercent > 90:
		status = "Critical"
	case usage.UsedPercent > 70:
		status = "High"
	}

	return map[string]any{
		"total_gb":      gb(usage.Total),
		"used_gb":       gb(usage.Used),
		"free_gb":       gb(usage.Free),
		"usage_percent": usage.UsedPercent,
		"status":        status,
	}, nil
}

func diskRoot() string {
	if runtime.GOOS == "windows" {
		return `C:\`
	}
	return "/"
}

func gb(bytes uint64) string {
	return fmt.Sprintf("%.2f GB", float64(bytes)/(1024*1024*1024))
}

func buildReport(ctx context.Context) (string, error) {
	cpuInfo, err := cpuUsage(ctx)
	if err != nil {
		return "", err
	}
	memInfo, err := memoryUsage(ctx)
	if err != nil {
		return "", err
	}
	diskInfo, err := diskUsage(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("SYSTEM HEALTH REPORT\n")
	b.WriteString("====================\n\n")

	fmt.Fprintf(&b, "CPU:\n  Usage: %.1f%% (%s)\n  Cores: %v\n\n",
		cpuInfo["usage_percent"], cpuInfo["status"], cpuInfo["cpu_count"])
	fmt.Fprintf(&b, "MEMORY:\n  Total: %s\n  Used: %s (%.1f%%)\n  Available: %s\n  Status: %s\n\n",
		memInfo["total_gb"], memInfo["used_gb"], memInfo["usage_percent"],
		memInfo["available_gb"], memInfo["status"])
	fmt.Fprintf(&b, "DISK:\n  Total: %s\n  Used: %s (%.1f%%)\n  Free: %s\n  Status: %s\n\n",
		diskInfo["total_gb"], diskInfo["used_gb"], diskInfo["usage_percent"],
		diskInfo["free_gb"], diskInfo["status"])

	if counters, err := gonet.IOCountersWithContext(ctx, false); err == nil && len(counters) > 0 {
		fmt.Fprintf(&b, "NETWORK:\n  Sent: %.2f MB\n  Received: %.2f MB\n\n",
			float64(counters[0].BytesSent)/(1024*1024),
			float64(counters[0].BytesRecv)/(1024*1024))
	}

	if hi, err := host.InfoWithContext(ctx); err == nil {
		uptime := time.Duration(hi.Uptime) * time.Second
		fmt.Fprintf(&b, "SYSTEM:\n  Platform: %s %s\n  Arch: %s\n  Uptime: %s\n",
			hi.Platform, hi.PlatformVersion, hi.KernelArch, uptime)
	}

	return b.String(), nil
}
