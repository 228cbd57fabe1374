package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/tmux-sysmon/internal/config"
)

// Summary is the one-line description of each command, in help order.
var Summary = []struct {
	Command config.Command
	Text    string
}{
	{config.CommandCPU, "CPU utilization, aggregate or per core"},
	{config.CommandMem, "memory usage"},
	{config.CommandDisk, "disk usage of the volume backing a path"},
	{config.CommandBattery, "battery charge, time remaining or status glyph"},
}

// styles binds lipgloss styles to one writer so piped help stays plain.
type styles struct {
	title  lipgloss.Style
	subtle lipgloss.Style
	label  lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("45")),
		subtle: r.NewStyle().Foreground(lipgloss.Color("244")),
		label:  r.NewStyle().Foreground(lipgloss.Color("81")).Bold(true),
	}
}

// Usage writes the top-level help.
func Usage(w io.Writer, version string) {
	st := newStyles(w)
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", st.title.Render(config.Program), st.subtle.Render(version))
	b.WriteString("tmux status metrics (cpu, mem, disk, battery)\n\n")
	fmt.Fprintf(&b, "Usage: %s [--log-level LEVEL] <command> [flags]\n\n", config.Program)
	b.WriteString(st.label.Render("Commands") + "\n")
	for _, s := range Summary {
		fmt.Fprintf(&b, "  %s%s\n", st.label.Width(10).Render(string(s.Command)), st.subtle.Render(s.Text))
	}
	b.WriteString("\n" + st.label.Render("Environment") + "\n")
	fmt.Fprintf(&b, "  %s  default cpu --interval\n", config.EnvInterval)
	fmt.Fprintf(&b, "  %s  default disk --path\n", config.EnvDiskPath)
	fmt.Fprintf(&b, "  %s  stderr log level (default warn)\n", config.EnvLogLevel)
	fmt.Fprintf(&b, "\nRun '%s <command> --help' for command flags.\n", config.Program)
	io.WriteString(w, b.String())
}

// CommandUsage writes the help of one command. It reports false for an
// unknown command.
func CommandUsage(w io.Writer, cmd config.Command) bool {
	fs := config.FlagSet(cmd)
	if fs == nil {
		return false
	}
	st := newStyles(w)
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", st.title.Render(config.Program), st.title.Render(string(cmd)))
	for _, s := range Summary {
		if s.Command == cmd {
			fmt.Fprintf(&b, "  %s", st.subtle.Render(s.Text))
		}
	}
	b.WriteString("\n\n" + st.label.Render("Flags") + "\n")
	b.WriteString(fs.FlagUsages())
	io.WriteString(w, b.String())
	return true
}
