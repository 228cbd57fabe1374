// Package metrics holds the reporters behind each subcommand. A reporter
// pulls one reading from a provider capability and renders the single
// line printed to the status bar.
//
// Providers are consumed through narrow interfaces so the sampling and
// classification rules can run against fakes. Any provider failure, empty
// enumeration or degenerate reading surfaces as an error; Line collapses
// all of them to "N/A".
package metrics

import (
	"context"
	"errors"

	"github.com/Dicklesworthstone/tmux-sysmon/internal/model"
)

// NotAvailable is printed in place of any metric that cannot be read.
const NotAvailable = "N/A"

// ErrNotAvailable marks readings that exist but cannot be reported, such
// as an empty volume list or a zero-capacity mount.
var ErrNotAvailable = errors.New("metric not available")

// CPUSource refreshes and reads CPU utilization. Utilization is computed
// between consecutive refreshes, so the first refresh reads as zero.
type CPUSource interface {
	RefreshCPU(ctx context.Context) error
	CPU() model.CPU
}

// MemorySource reads system memory.
type MemorySource interface {
	Memory(ctx context.Context) (model.Memory, error)
}

// VolumeSource enumerates mounted volumes in provider order.
type VolumeSource interface {
	Volumes(ctx context.Context) ([]model.Volume, error)
}

// BatterySource enumerates batteries in provider order.
type BatterySource interface {
	Batteries(ctx context.Context) ([]model.Battery, error)
}

// Provider is every capability a dispatcher needs.
type Provider interface {
	CPUSource
	MemorySource
	VolumeSource
	BatterySource
}

// Line returns out, or NotAvailable when err is set.
func Line(out string, err error) string {
	if err != nil {
		return NotAvailable
	}
	return out
}
