package metrics

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dicklesworthstone/tmux-sysmon/internal/format"
	"github.com/Dicklesworthstone/tmux-sysmon/internal/model"
)

// DiskMode selects the disk line.
type DiskMode int

const (
	DiskPercent   DiskMode = iota // used percentage
	DiskUsedTotal                 // "used/total", humanized
	DiskFree                      // available, humanized
)

// ResolveVolume picks the volume backing path: the longest mount point
// that is a path-component prefix of path, the first volume when none
// match, and ErrNotAvailable when there are no volumes or the pick has
// no capacity.
func ResolveVolume(path string, volumes []model.Volume) (model.Volume, error) {
	if len(volumes) == 0 {
		return model.Volume{}, fmt.Errorf("no mounted volumes: %w", ErrNotAvailable)
	}

	best := -1
	for i, v := range volumes {
		if !hasPathPrefix(path, v.MountPoint) {
			continue
		}
		if best < 0 || len(v.MountPoint) > len(volumes[best].MountPoint) {
			best = i
		}
	}
	if best < 0 {
		best = 0
	}

	picked := volumes[best]
	if picked.TotalBytes == 0 {
		return model.Volume{}, fmt.Errorf("volume %q has no capacity: %w", picked.MountPoint, ErrNotAvailable)
	}
	return picked, nil
}

// hasPathPrefix reports whether mount contains path, comparing whole
// path components. Both separators are accepted so Windows drive mounts
// such as "C:" or `C:\` resolve too.
func hasPathPrefix(path, mount string) bool {
	if mount == "" || !strings.HasPrefix(path, mount) {
		return false
	}
	if len(path) == len(mount) || isSeparator(mount[len(mount)-1]) {
		return true
	}
	return isSeparator(path[len(mount)])
}

func isSeparator(c byte) bool { return c == '/' || c == '\\' }

// Disk resolves path against src and renders the line for mode.
func Disk(ctx context.Context, src VolumeSource, path string, mode DiskMode) (string, error) {
	volumes, err := src.Volumes(ctx)
	if err != nil {
		return "", fmt.Errorf("enumerate volumes: %w", err)
	}
	vol, err := ResolveVolume(path, volumes)
	if err != nil {
		return "", err
	}
	return FormatVolume(vol, mode), nil
}

// FormatVolume renders a resolved volume. Callers guarantee a non-zero
// total.
func FormatVolume(v model.Volume, mode DiskMode) string {
	used := v.Used()
	switch mode {
	case DiskFree:
		return format.HumanizeShort(v.AvailableBytes)
	case DiskUsedTotal:
		return format.HumanizeShort(used) + "/" + format.HumanizeShort(v.TotalBytes)
	default:
		pct := float64(used) / float64(v.TotalBytes) * 100
		return format.Percent1DP(model.ClampPercent(pct))
	}
}
