package sampler

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dicklesworthstone/tmux-sysmon/internal/model"
	"github.com/distatus/battery"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// System reads CPU, memory, volumes and batteries from the running host.
// It keeps only the previous CPU times, so build a fresh one per run.
type System struct {
	prevTotal float64
	prevIdle  float64
	prevCore  []cpu.TimesStat
	current   model.CPU

	// Host readers, swapped out in tests.
	times      func(ctx context.Context, perCPU bool) ([]cpu.TimesStat, error)
	virtualMem func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	partitions func(ctx context.Context, all bool) ([]disk.PartitionStat, error)
	usage      func(ctx context.Context, path string) (*disk.UsageStat, error)
	batteries  func() ([]*battery.Battery, error)
}

func New() *System {
	return &System{
		times:      cpu.TimesWithContext,
		virtualMem: mem.VirtualMemoryWithContext,
		partitions: disk.PartitionsWithContext,
		usage:      disk.UsageWithContext,
		batteries:  battery.GetAll,
	}
}

// RefreshCPU reads CPU times and recomputes utilization against the
// previous refresh.
func (s *System) RefreshCPU(ctx context.Context) error {
	times, err := s.times(ctx, false)
	if err != nil {
		return fmt.Errorf("cpu times: %w", err)
	}
	if len(times) == 0 {
		return errors.New("cpu times: empty")
	}
	coreTimes, err := s.times(ctx, true)
	if err != nil {
		return fmt.Errorf("per-cpu times: %w", err)
	}

	var total float64
	cur := times[0]
	curTotal := cur.Total()
	curIdle := cur.Idle + cur.Iowait
	if s.prevTotal > 0 {
		total = busyPercent(curTotal-s.prevTotal, curIdle-s.prevIdle)
	}
	s.prevTotal, s.prevIdle = curTotal, curIdle

	perCore := make([]float64, len(coreTimes))
	for i, c := range coreTimes {
		if i >= len(s.prevCore) {
			continue
		}
		prev := s.prevCore[i]
		perCore[i] = busyPercent(c.Total()-prev.Total(), (c.Idle+c.Iowait)-(prev.Idle+prev.Iowait))
	}
	s.prevCore = coreTimes

	s.current = model.CPU{Total: total, PerCore: perCore}
	return nil
}

// CPU returns utilization as of the last refresh.
func (s *System) CPU() model.CPU { return s.current }

func busyPercent(dt, di float64) float64 {
	if dt <= 0 {
		return 0
	}
	return model.ClampPercent(100 * (1 - di/dt))
}

func (s *System) Memory(ctx context.Context) (model.Memory, error) {
	vm, err := s.virtualMem(ctx)
	if err != nil {
		return model.Memory{}, fmt.Errorf("virtual memory: %w", err)
	}
	return model.Memory{TotalBytes: vm.Total, AvailableBytes: vm.Available}, nil
}

// Volumes lists physical mounts in enumeration order. A mount whose
// usage cannot be read is kept with zero capacity.
func (s *System) Volumes(ctx context.Context) ([]model.Volume, error) {
	parts, err := s.partitions(ctx, false)
	if err != nil && len(parts) == 0 {
		return nil, fmt.Errorf("partitions: %w", err)
	}
	volumes := make([]model.Volume, 0, len(parts))
	for _, p := range parts {
		v := model.Volume{MountPoint: p.Mountpoint}
		if u, err := s.usage(ctx, p.Mountpoint); err == nil && u != nil {
			v.TotalBytes = u.Total
			v.AvailableBytes = u.Free
		}
		volumes = append(volumes, v)
	}
	return volumes, nil
}

