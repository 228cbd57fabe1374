package config

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/Dicklesworthstone/tmux-sysmon/internal/metrics"
)

// Program is the binary name used in help and errors.
const Program = "tmux-sysmon"

// Command names a subcommand.
type Command string

const (
	CommandCPU     Command = "cpu"
	CommandMem     Command = "mem"
	CommandDisk    Command = "disk"
	CommandBattery Command = "battery"
)

// Environment overrides, applied only when the matching flag is absent.
const (
	EnvInterval = "TMUX_SYSMON_INTERVAL"
	EnvDiskPath = "TMUX_SYSMON_DISK_PATH"
	EnvLogLevel = "TMUX_SYSMON_LOG_LEVEL"
)

// Config carries one invocation's options with every output mode
// already resolved.
type Config struct {
	Command Command

	Interval time.Duration
	PerCore  bool

	MemoryMode metrics.MemoryMode

	DiskPath string
	DiskMode metrics.DiskMode

	BatteryMode metrics.BatteryMode

	LogLevel slog.Level

	// Help and Version short-circuit the metric. Help with a Command
	// asks for that command's usage.
	Help    bool
	Version bool
}

func Default() Config {
	return Config{
		Interval: time.Second,
		LogLevel: slog.LevelWarn,
	}
}

// UsageError is a malformed command line. Command is empty for errors
// before the subcommand.
type UsageError struct {
	Command Command
	Err     error
}

func (e *UsageError) Error() string {
	if e.Command == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *UsageError) Unwrap() error { return e.Err }

func usageErrorf(cmd Command, format string, args ...any) error {
	return &UsageError{Command: cmd, Err: fmt.Errorf(format, args...)}
}

// FromArgs parses args (without the program name) and applies
// environment overrides read through getenv.
func FromArgs(args []string, getenv func(string) string) (Config, error) {
	cfg := Default()
	if v := getenv(EnvLogLevel); v != "" {
		if lvl, err := parseLevel(v); err == nil {
			cfg.LogLevel = lvl
		}
	}

	root := pflag.NewFlagSet(Program, pflag.ContinueOnError)
	root.SetInterspersed(false)
	root.Usage = func() {}
	root.SetOutput(io.Discard)
	root.BoolVarP(&cfg.Help, "help", "h", false, "show help")
	root.BoolVar(&cfg.Version, "version", false, "print version")
	addLogLevelFlag(root)
	if err := root.Parse(args); err != nil {
		return cfg, &UsageError{Err: err}
	}
	if err := applyLogLevel(root, &cfg); err != nil {
		return cfg, &UsageError{Err: err}
	}
	if cfg.Help || cfg.Version {
		return cfg, nil
	}

	rest := root.Args()
	if len(rest) == 0 {
		return cfg, &UsageError{Err: fmt.Errorf("missing command")}
	}
	cfg.Command = Command(rest[0])
	fs, finish, ok := commandFlags(&cfg)
	if !ok {
		return cfg, usageErrorf("", "unknown command %q", rest[0])
	}
	if err := fs.Parse(rest[1:]); err != nil {
		return cfg, &UsageError{Command: cfg.Command, Err: err}
	}
	if cfg.Help {
		return cfg, nil
	}
	if err := applyLogLevel(fs, &cfg); err != nil {
		return cfg, &UsageError{Command: cfg.Command, Err: err}
	}
	if fs.NArg() > 0 {
		return cfg, usageErrorf(cfg.Command, "unexpected argument %q", fs.Arg(0))
	}
	if err := finish(fs, getenv); err != nil {
		return cfg, &UsageError{Command: cfg.Command, Err: err}
	}
	return cfg, nil
}

// FlagSet returns the flags of cmd for help output, or nil for an
// unknown command.
func FlagSet(cmd Command) *pflag.FlagSet {
	cfg := Default()
	cfg.Command = cmd
	fs, _, ok := commandFlags(&cfg)
	if !ok {
		return nil
	}
	return fs
}

type finishFunc func(fs *pflag.FlagSet, getenv func(string) string) error

func commandFlags(cfg *Config) (*pflag.FlagSet, finishFunc, bool) {
	fs := pflag.NewFlagSet(string(cfg.Command), pflag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	fs.BoolVarP(&cfg.Help, "help", "h", false, "show help for this command")
	addLogLevelFlag(fs)

	switch cfg.Command {
	case CommandCPU:
		seconds := fs.UintP("interval", "i", 1, "measurement interval in seconds (0 = instantaneous)")
		fs.BoolVar(&cfg.PerCore, "percpu", false, "per-CPU output, comma-separated, no %")
		return fs, func(fs *pflag.FlagSet, getenv func(string) string) error {
			cfg.Interval = time.Duration(*seconds) * time.Second
			if fs.Changed("interval") {
				return nil
			}
			if v := getenv(EnvInterval); v != "" {
				if d, err := parseInterval(v); err == nil {
					cfg.Interval = d
				}
			}
			return nil
		}, true

	case CommandMem:
		total := fs.BoolP("total", "t", false, "show used/total, e.g. 7.23GB/31.26GB")
		return fs, func(*pflag.FlagSet, func(string) string) error {
			if *total {
				cfg.MemoryMode = metrics.MemoryUsedTotal
			}
			return nil
		}, true

	case CommandDisk:
		fs.StringVarP(&cfg.DiskPath, "path", "p", "", "target path or mount (default: system volume)")
		total := fs.BoolP("total", "t", false, "show used/total, humanized")
		free := fs.BoolP("free", "f", false, "show free space, humanized")
		return fs, func(fs *pflag.FlagSet, getenv func(string) string) error {
			if *total && *free {
				return fmt.Errorf("--total and --free cannot be used together")
			}
			switch {
			case *total:
				cfg.DiskMode = metrics.DiskUsedTotal
			case *free:
				cfg.DiskMode = metrics.DiskFree
			}
			if !fs.Changed("path") {
				cfg.DiskPath = getenv(EnvDiskPath)
			}
			return nil
		}, true

	case CommandBattery:
		percent := fs.BoolP("percent", "p", false, `percent output: "Charging" or rounded percentage (default)`)
		timeLeft := fs.BoolP("time", "t", false, `time remaining as H:MM:SS, or "Charging"`)
		long := fs.BoolP("long", "l", false, "descriptive text")
		fun := fs.BoolP("fun", "f", false, "descriptive text (same as --long)")
		compact := fs.BoolP("compact", "c", false, "single glyph output")
		return fs, func(*pflag.FlagSet, func(string) string) error {
			if *percent && *timeLeft {
				return fmt.Errorf("--percent and --time cannot be used together")
			}
			if *long && *fun {
				return fmt.Errorf("--long and --fun cannot be used together")
			}
			cfg.BatteryMode = ResolveBatteryMode(*timeLeft, *long || *fun, *compact)
			return nil
		}, true
	}
	return nil, nil, false
}

// ResolveBatteryMode keeps the highest-priority requested mode:
// compact, then long, then time, else percent.
func ResolveBatteryMode(timeLeft, long, compact bool) metrics.BatteryMode {
	switch {
	case compact:
		return metrics.BatteryCompact
	case long:
		return metrics.BatteryLong
	case timeLeft:
		return metrics.BatteryTime
	}
	return metrics.BatteryPercent
}

// parseInterval accepts seconds ("2", "0.5") or a Go duration ("1500ms"),
// truncated to whole seconds.
func parseInterval(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if n, err := strconv.ParseUint(v, 10, 32); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		// Bare fractions such as "0.5" are seconds.
		if d, err = time.ParseDuration(v + "s"); err != nil {
			return 0, fmt.Errorf("invalid interval %q", v)
		}
	}
	if d < 0 {
		return 0, fmt.Errorf("negative interval %q", v)
	}
	return d.Truncate(time.Second), nil
}

func addLogLevelFlag(fs *pflag.FlagSet) {
	fs.String("log-level", "", "stderr log level: debug|info|warn|error")
}

// applyLogLevel sets cfg.LogLevel when fs carries an explicit --log-level.
func applyLogLevel(fs *pflag.FlagSet, cfg *Config) error {
	if !fs.Changed("log-level") {
		return nil
	}
	v, err := fs.GetString("log-level")
	if err != nil {
		return err
	}
	lvl, err := parseLevel(v)
	if err != nil {
		return err
	}
	cfg.LogLevel = lvl
	return nil
}

func parseLevel(v string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(v))); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log level %q", v)
	}
	return lvl, nil
}
