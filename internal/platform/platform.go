// Package platform picks the disk path reported when the user gives none.
package platform

import (
	"context"
	"os"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

const (
	windowsDefault = "C:"
	darwinDefault  = "/System/Volumes/Data"
	wslDefault     = "/usr/lib/wsl/drivers"
	unixDefault    = "/"
)

// Probe is the slice of the host the default-path rules look at.
type Probe struct {
	GOOS          string
	Getenv        func(key string) string
	Exists        func(path string) bool
	KernelVersion func(ctx context.Context) (string, error)
}

// HostProbe inspects the running machine.
func HostProbe() Probe {
	return Probe{
		GOOS:   runtime.GOOS,
		Getenv: os.Getenv,
		Exists: func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		},
		KernelVersion: host.KernelVersionWithContext,
	}
}

// IsWSL reports whether a Linux host is running under the Windows
// Subsystem for Linux. Any single hint is enough.
func (p Probe) IsWSL(ctx context.Context) bool {
	if p.GOOS != "linux" {
		return false
	}
	if p.Getenv != nil && (p.Getenv("WSL_DISTRO_NAME") != "" || p.Getenv("WSL_INTEROP") != "") {
		return true
	}
	if p.Exists != nil {
		for _, path := range []string{"/usr/lib/wsl", "/proc/sys/fs/binfmt_misc/WSLInterop"} {
			if p.Exists(path) {
				return true
			}
		}
	}
	if p.KernelVersion != nil {
		if v, err := p.KernelVersion(ctx); err == nil && strings.Contains(strings.ToLower(v), "microsoft") {
			return true
		}
	}
	return false
}

// DefaultDiskPath is the path whose volume backs the system install.
func (p Probe) DefaultDiskPath(ctx context.Context) string {
	switch p.GOOS {
	case "windows":
		return windowsDefault
	case "darwin":
		return darwinDefault
	case "linux":
		if p.IsWSL(ctx) {
			return wslDefault
		}
	}
	return unixDefault
}

// PickPath returns user unless it is blank, else the default path.
func (p Probe) PickPath(ctx context.Context, user string) string {
	if strings.TrimSpace(user) != "" {
		return user
	}
	return p.DefaultDiskPath(ctx)
}
