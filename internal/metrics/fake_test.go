package metrics

import (
	"context"
	"time"

	"github.com/Dicklesworthstone/tmux-sysmon/internal/model"
)

// fakeCPU replays readings, one per refresh. The last reading repeats.
type fakeCPU struct {
	readings  []model.CPU
	refreshes int
	err       error
}

func (f *fakeCPU) RefreshCPU(context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.refreshes++
	return nil
}

func (f *fakeCPU) CPU() model.CPU {
	if len(f.readings) == 0 {
		return model.CPU{}
	}
	i := min(f.refreshes-1, len(f.readings)-1)
	return f.readings[max(i, 0)]
}

// fakeClock advances only when slept on.
type fakeClock struct {
	now    time.Time
	slept  time.Duration
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.now = c.now.Add(d)
	c.slept += d
	c.sleeps = append(c.sleeps, d)
	return nil
}

type fakeMemory struct {
	mem model.Memory
	err error
}

func (f fakeMemory) Memory(context.Context) (model.Memory, error) { return f.mem, f.err }

type fakeVolumes struct {
	volumes []model.Volume
	err     error
}

func (f fakeVolumes) Volumes(context.Context) ([]model.Volume, error) { return f.volumes, f.err }

type fakeBatteries struct {
	batteries []model.Battery
	err       error
}

func (f fakeBatteries) Batteries(context.Context) ([]model.Battery, error) {
	return f.batteries, f.err
}
