package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"deskpilot/pkg/actions"
	"deskpilot/pkg/channels"
	_ "deskpilot/pkg/channels/autoload" // register channel factories
	"deskpilot/pkg/config"
	"deskpilot/pkg/executor"
	"deskpilot/pkg/gateway"
	"deskpilot/pkg/handlers"
	"deskpilot/pkg/history"
	"deskpilot/pkg/interpreter"
	"deskpilot/pkg/monitor"
	"deskpilot/pkg/nlu"
	_ "deskpilot/pkg/nlu/autoload" // register NLU providers
	"deskpilot/pkg/workflows"

	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	cfg, system, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	monitor.SetupSlog(system.LogLevel)
	monitor.PrintBanner()

	gw, err := buildGateway(cfg, system)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloadCh := config.WatchConfig(ctx, "config.json", "system.json")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-reloadCh:
			slog.Info("Configuration changed, restarting services")
			gw.StopAll()

			cfg, system, err = config.Load()
			if err != nil {
				log.Fatalf("Failed to reload configuration: %v", err)
			}
			monitor.SetupSlog(system.LogLevel)

			gw, err = buildGateway(cfg, system)
			if err != nil {
				log.Fatalf("Failed to restart: %v", err)
			}

		case <-sigChan:
			slog.Info("Received shutdown signal, stopping services")
			gw.StopAll()
			return
		}
	}
}

// buildGateway assembles the full pipeline: registry and built-in handlers,
// the NLU client stack, the interpreter, and the gateway with its configured
// channels.
func buildGateway(cfg *config.Config, system *config.SystemConfig) (*gateway.GatewayManager, error) {
	registry := actions.NewRegistry()
	stepExec := executor.NewStepExecutor(registry)
	wfExec := executor.NewWorkflowExecutor(stepExec)
	store := workflows.NewStore(system.WorkflowDir)
	journal := history.NewJournal(system.HistoryFile, system.HistoryLimit)

	handlers.RegisterBuiltins(registry, store, wfExec, journal)
	slog.Info("Actions registered", "count", registry.Len())

	systemPrompt := nlu.BuildSystemPrompt(registry, cfg.ExtraInstructions)
	client, err := nlu.NewFromConfig(cfg.NLU, system, systemPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to init NLU client: %w", err)
	}

	interp := interpreter.New(client, registry)

	handler := func(ins *gateway.Instruction) (string, bool) {
		ctx := context.Background()
		if system.ActionTimeoutMs > 0 {
			// One budget for the whole pipeline: the NLU call plus the
			// actions it triggers.
			total := time.Duration(system.NLUTimeoutMs+system.ActionTimeoutMs) * time.Millisecond
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, total)
			defer cancel()
		}

		cmd, result := interp.Run(ctx, ins.Text)
		journal.Record(ins.Text, cmd.Action, result.Success, result.Message)
		return result.Message, result.Success
	}

	return gateway.NewGatewayBuilder().
		WithMonitor(monitor.NewCLIMonitor()).
		WithHandler(handler).
		WithChannelLoader(func(g *gateway.GatewayManager) {
			channels.LoadFromConfig(g, cfg.Channels, system)
		}).
		Build()
}
