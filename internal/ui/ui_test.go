package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Dicklesworthstone/tmux-sysmon/internal/config"
)

func TestUsageListsCommands(t *testing.T) {
	var buf bytes.Buffer
	Usage(&buf, "v1.2.3")
	out := buf.String()
	for _, want := range []string{"tmux-sysmon", "v1.2.3", "cpu", "mem", "disk", "battery", config.EnvInterval} {
		if !strings.Contains(out, want) {
			t.Errorf("Usage() missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("Usage() to a buffer contains escape sequences:\n%q", out)
	}
}

func TestCommandUsage(t *testing.T) {
	var buf bytes.Buffer
	if !CommandUsage(&buf, config.CommandBattery) {
		t.Fatal("CommandUsage(battery) = false")
	}
	out := buf.String()
	for _, want := range []string{"--percent", "--time", "--long", "--fun", "--compact", "-c"} {
		if !strings.Contains(out, want) {
			t.Errorf("CommandUsage(battery) missing %q in:\n%s", want, out)
		}
	}

	buf.Reset()
	if CommandUsage(&buf, "gpu") {
		t.Error("CommandUsage(gpu) = true")
	}
	if buf.Len() != 0 {
		t.Errorf("CommandUsage(gpu) wrote %q", buf.String())
	}
}
