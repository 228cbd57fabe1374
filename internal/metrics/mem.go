package metrics

import (
	"context"
	"fmt"

	"github.com/Dicklesworthstone/tmux-sysmon/internal/format"
	"github.com/Dicklesworthstone/tmux-sysmon/internal/model"
)

// MemoryMode selects the memory line.
type MemoryMode int

const (
	MemoryPercent   MemoryMode = iota // used percentage
	MemoryUsedTotal                   // "used/total" in GB
)

// Memory reads src once and renders the line for mode.
func Memory(ctx context.Context, src MemorySource, mode MemoryMode) (string, error) {
	m, err := src.Memory(ctx)
	if err != nil {
		return "", fmt.Errorf("read memory: %w", err)
	}
	return FormatMemory(m, mode), nil
}

// FormatMemory renders a memory reading. A zero total reads as 0.0%.
func FormatMemory(m model.Memory, mode MemoryMode) string {
	used := m.Used()
	if mode == MemoryUsedTotal {
		return format.GiBLabel(used) + "/" + format.GiBLabel(m.TotalBytes)
	}
	var pct float64
	if m.TotalBytes > 0 {
		pct = float64(used) / float64(m.TotalBytes) * 100
	}
	return format.Percent1DP(model.ClampPercent(pct))
}
