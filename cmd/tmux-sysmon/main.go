// tmux-sysmon prints one system metric per invocation, formatted for a
// terminal multiplexer status line:
//
//	set -g status-right '#(tmux-sysmon cpu -i 0) #(tmux-sysmon mem) #(tmux-sysmon battery -c)'
//
// A metric that cannot be read prints "N/A" and still exits 0, so a
// status bar never shows an error. Only malformed command lines exit
// non-zero.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/Dicklesworthstone/tmux-sysmon/internal/config"
	"github.com/Dicklesworthstone/tmux-sysmon/internal/metrics"
	"github.com/Dicklesworthstone/tmux-sysmon/internal/platform"
	"github.com/Dicklesworthstone/tmux-sysmon/internal/sampler"
	"github.com/Dicklesworthstone/tmux-sysmon/internal/ui"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const exitUsage = 2

func main() {
	a := &app{
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		getenv:      os.Getenv,
		newProvider: func() metrics.Provider { return sampler.New() },
		probe:       platform.HostProbe(),
	}
	os.Exit(a.run(context.Background(), os.Args[1:]))
}

type app struct {
	stdout      io.Writer
	stderr      io.Writer
	getenv      func(string) string
	newProvider func() metrics.Provider
	probe       platform.Probe
}

func (a *app) run(ctx context.Context, args []string) int {
	cfg, err := config.FromArgs(args, a.getenv)
	if err != nil {
		var usage *config.UsageError
		if errors.As(err, &usage) {
			fmt.Fprintf(a.stderr, "error: %v\n", err)
			if usage.Command != "" {
				fmt.Fprintf(a.stderr, "Run '%s %s --help' for usage.\n", config.Program, usage.Command)
			} else {
				fmt.Fprintf(a.stderr, "Run '%s --help' for usage.\n", config.Program)
			}
			return exitUsage
		}
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 1
	}

	switch {
	case cfg.Version:
		fmt.Fprintf(a.stdout, "%s %s\n", config.Program, version)
		return 0
	case cfg.Help && cfg.Command != "":
		ui.CommandUsage(a.stdout, cfg.Command)
		return 0
	case cfg.Help:
		ui.Usage(a.stdout, version)
		return 0
	}

	logger := newLogger(a.stderr, cfg.LogLevel).With("command", string(cfg.Command))
	out, err := a.report(ctx, cfg, logger)
	if err != nil {
		logger.Debug("metric unavailable", "error", err)
	}
	fmt.Fprintln(a.stdout, metrics.Line(out, err))
	return 0
}

// report runs the reporter for cfg.Command against a fresh provider.
func (a *app) report(ctx context.Context, cfg config.Config, logger *slog.Logger) (string, error) {
	provider := a.newProvider()
	switch cfg.Command {
	case config.CommandCPU:
		logger.Debug("sampling cpu", "interval", cfg.Interval, "percpu", cfg.PerCore)
		return metrics.NewCPUSampler(provider, cfg.Interval, cfg.PerCore).Report(ctx)
	case config.CommandMem:
		return metrics.Memory(ctx, provider, cfg.MemoryMode)
	case config.CommandDisk:
		path := a.probe.PickPath(ctx, cfg.DiskPath)
		logger.Debug("resolving volume", "path", path)
		return metrics.Disk(ctx, provider, path, cfg.DiskMode)
	case config.CommandBattery:
		return metrics.Battery(ctx, provider, cfg.BatteryMode)
	}
	return "", fmt.Errorf("unhandled command %q", cfg.Command)
}

// newLogger writes text records to a terminal and JSON records when
// stderr is redirected.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return slog.New(slog.NewTextHandler(w, options))
	}
	return slog.New(slog.NewJSONHandler(w, options))
}
