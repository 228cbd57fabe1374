package platform

import (
	"context"
	"errors"
	"testing"
)

func linuxProbe() Probe {
	return Probe{
		GOOS:          "linux",
		Getenv:        func(string) string { return "" },
		Exists:        func(string) bool { return false },
		KernelVersion: func(context.Context) (string, error) { return "6.8.0-45-generic", nil },
	}
}

func TestDefaultDiskPath(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		goos string
		want string
	}{
		{"windows", "C:"},
		{"darwin", "/System/Volumes/Data"},
		{"linux", "/"},
		{"freebsd", "/"},
	}
	for _, tt := range tests {
		p := linuxProbe()
		p.GOOS = tt.goos
		if got := p.DefaultDiskPath(ctx); got != tt.want {
			t.Errorf("DefaultDiskPath() on %s = %q, want %q", tt.goos, got, tt.want)
		}
	}
}

func TestIsWSL(t *testing.T) {
	ctx := context.Background()

	if linuxProbe().IsWSL(ctx) {
		t.Error("plain linux detected as WSL")
	}

	env := linuxProbe()
	env.Getenv = func(k string) string {
		if k == "WSL_DISTRO_NAME" {
			return "Ubuntu"
		}
		return ""
	}
	if !env.IsWSL(ctx) {
		t.Error("WSL_DISTRO_NAME not detected")
	}

	interop := linuxProbe()
	interop.Exists = func(p string) bool { return p == "/proc/sys/fs/binfmt_misc/WSLInterop" }
	if !interop.IsWSL(ctx) {
		t.Error("WSLInterop binfmt entry not detected")
	}

	kernel := linuxProbe()
	kernel.KernelVersion = func(context.Context) (string, error) { return "5.15.153.1-Microsoft-standard-WSL2", nil }
	if !kernel.IsWSL(ctx) {
		t.Error("microsoft kernel not detected")
	}
	if got := kernel.DefaultDiskPath(ctx); got != "/usr/lib/wsl/drivers" {
		t.Errorf("DefaultDiskPath() under WSL = %q, want %q", got, "/usr/lib/wsl/drivers")
	}

	failing := linuxProbe()
	failing.KernelVersion = func(context.Context) (string, error) { return "", errors.New("uname failed") }
	if failing.IsWSL(ctx) {
		t.Error("kernel probe failure detected as WSL")
	}

	windows := env
	windows.GOOS = "windows"
	if windows.IsWSL(ctx) {
		t.Error("non-linux host detected as WSL")
	}
}

func TestPickPath(t *testing.T) {
	ctx := context.Background()
	p := linuxProbe()
	if got := p.PickPath(ctx, "/data"); got != "/data" {
		t.Errorf("PickPath(/data) = %q", got)
	}
	if got := p.PickPath(ctx, " C: "); got != " C: " {
		t.Errorf("PickPath(' C: ') = %q, want the path untouched", got)
	}
	if got := p.PickPath(ctx, "   "); got != "/" {
		t.Errorf("PickPath(blank) = %q, want default", got)
	}
}
