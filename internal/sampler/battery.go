package sampler

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Dicklesworthstone/tmux-sysmon/internal/model"
	"github.com/distatus/battery"
)

// maxTimeToEmpty bounds estimates from a near-zero discharge rate.
var maxTimeToEmpty = time.Duration(math.MaxInt64).Truncate(time.Second)

// Batteries lists the host's batteries in provider order. A battery the
// provider could not read at all is skipped; partially read ones keep
// their zero fields.
func (s *System) Batteries(ctx context.Context) ([]model.Battery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	found, err := s.batteries()
	var perBattery battery.Errors
	if err != nil && !errors.As(err, &perBattery) {
		return nil, fmt.Errorf("batteries: %w", err)
	}

	out := make([]model.Battery, 0, len(found))
	for i, b := range found {
		if b == nil {
			continue
		}
		if i < len(perBattery) {
			var fatal battery.ErrFatal
			if errors.As(perBattery[i], &fatal) {
				continue
			}
		}
		out = append(out, toBattery(b))
	}
	return out, nil
}

// toBattery maps a provider battery. Energy is in mWh and the charge
// rate in mW, so their ratio is hours.
func toBattery(b *battery.Battery) model.Battery {
	out := model.Battery{Charging: b.State == battery.Charging}
	if b.Full > 0 {
		out.Fraction = min(max(b.Current/b.Full, 0), 1)
	}
	if out.Charging {
		return out
	}
	if rate := math.Abs(b.ChargeRate); rate > 0 && b.Current > 0 {
		out.TimeToEmpty, out.HasTimeToEmpty = hoursToDuration(b.Current/rate), true
	}
	return out
}

func hoursToDuration(h float64) time.Duration {
	ns := h * 3600 * float64(time.Second)
	if ns >= float64(math.MaxInt64) {
		return maxTimeToEmpty
	}
	return time.Duration(ns).Truncate(time.Second)
}
