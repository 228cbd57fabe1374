package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Dicklesworthstone/tmux-sysmon/internal/format"
	"github.com/Dicklesworthstone/tmux-sysmon/internal/model"
)

const (
	// DefaultPollInterval is the sub-interval between refreshes when an
	// instantaneous reading is requested.
	DefaultPollInterval = 25 * time.Millisecond
	// DefaultPollBudget caps the total wait of an instantaneous reading.
	DefaultPollBudget = 250 * time.Millisecond
)

// CPUSampler turns refreshes of a CPUSource into one stable reading.
type CPUSampler struct {
	Source CPUSource

	// Interval is the blocking sample window. Zero polls every Poll
	// until a non-zero reading shows up or Budget is spent.
	Interval time.Duration
	PerCore  bool

	Poll   time.Duration
	Budget time.Duration

	// Now and Sleep default to the wall clock.
	Now   func() time.Time
	Sleep func(ctx context.Context, d time.Duration) error
}

// NewCPUSampler returns a sampler with the default polling cadence.
func NewCPUSampler(src CPUSource, interval time.Duration, perCore bool) *CPUSampler {
	return &CPUSampler{
		Source:   src,
		Interval: interval,
		PerCore:  perCore,
		Poll:     DefaultPollInterval,
		Budget:   DefaultPollBudget,
	}
}

// Sample takes the reading. An all-zero reading after the poll budget is
// still a reading, not an error.
func (s *CPUSampler) Sample(ctx context.Context) (model.CPU, error) {
	if err := s.Source.RefreshCPU(ctx); err != nil {
		return model.CPU{}, fmt.Errorf("cpu baseline: %w", err)
	}

	if s.Interval > 0 {
		if err := s.sleep(ctx, s.Interval); err != nil {
			return model.CPU{}, err
		}
		if err := s.Source.RefreshCPU(ctx); err != nil {
			return model.CPU{}, fmt.Errorf("cpu refresh: %w", err)
		}
		return s.Source.CPU(), nil
	}

	deadline := s.now().Add(s.Budget)
	var reading model.CPU
	for {
		step := s.Poll
		if remaining := deadline.Sub(s.now()); remaining < step {
			step = remaining
		}
		if step > 0 {
			if err := s.sleep(ctx, step); err != nil {
				return model.CPU{}, err
			}
		}
		if err := s.Source.RefreshCPU(ctx); err != nil {
			return model.CPU{}, fmt.Errorf("cpu refresh: %w", err)
		}
		reading = s.Source.CPU()
		if reading.Busy(s.PerCore) || !s.now().Before(deadline) {
			return reading, nil
		}
	}
}

// Report samples and renders the CPU line.
func (s *CPUSampler) Report(ctx context.Context) (string, error) {
	reading, err := s.Sample(ctx)
	if err != nil {
		return "", err
	}
	return FormatCPU(reading, s.PerCore), nil
}

// FormatCPU renders an aggregate percentage, or comma-joined per-core
// values without a "%" suffix.
func FormatCPU(c model.CPU, perCore bool) string {
	if !perCore {
		return format.Percent1DP(model.ClampPercent(c.Total))
	}
	parts := make([]string, len(c.PerCore))
	for i, v := range c.PerCore {
		parts[i] = format.Decimal1DP(model.ClampPercent(v))
	}
	return strings.Join(parts, ", ")
}

func (s *CPUSampler) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *CPUSampler) sleep(ctx context.Context, d time.Duration) error {
	if s.Sleep != nil {
		return s.Sleep(ctx, d)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
