package metrics

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Dicklesworthstone/tmux-sysmon/internal/format"
	"github.com/Dicklesworthstone/tmux-sysmon/internal/model"
)

// BatteryMode selects the battery line. When several are requested the
// caller keeps the highest: compact, then long, then time, then percent.
type BatteryMode int

const (
	BatteryPercent BatteryMode = iota // "Charging" or "<n>%"
	BatteryTime                       // "Charging", "H:MM:SS" or "N/A"
	BatteryLong                       // "Charging" or a descriptive phrase
	BatteryCompact                    // a single block glyph
)

// ChargingLabel is shown by every text mode while charging.
const ChargingLabel = "Charging"

const (
	chargingGlyph = '▓'
	lowestBar     = '▁'
	barLevels     = 8
)

// Battery renders the first battery src reports.
func Battery(ctx context.Context, src BatterySource, mode BatteryMode) (string, error) {
	batteries, err := src.Batteries(ctx)
	if err != nil {
		return "", fmt.Errorf("enumerate batteries: %w", err)
	}
	if len(batteries) == 0 {
		return "", fmt.Errorf("no battery: %w", ErrNotAvailable)
	}
	return FormatBattery(batteries[0], mode)
}

// FormatBattery renders b for mode. The only error is a discharging
// battery in time mode without an estimate.
func FormatBattery(b model.Battery, mode BatteryMode) (string, error) {
	pct := b.Percent()
	switch mode {
	case BatteryCompact:
		return string(BatteryGlyph(b.Charging, pct)), nil
	case BatteryLong:
		if b.Charging {
			return ChargingLabel, nil
		}
		return BatteryPhrase(pct), nil
	case BatteryTime:
		if b.Charging {
			return ChargingLabel, nil
		}
		if !b.HasTimeToEmpty || b.TimeToEmpty < 0 {
			return "", fmt.Errorf("no time-to-empty estimate: %w", ErrNotAvailable)
		}
		return format.DurationHMS(uint64(b.TimeToEmpty.Seconds())), nil
	default:
		if b.Charging {
			return ChargingLabel, nil
		}
		return strconv.Itoa(pct) + "%", nil
	}
}

// BatteryGlyph maps a rounded percentage onto eight bar glyphs, or the
// half-filled block while charging.
func BatteryGlyph(charging bool, pct int) rune {
	if charging {
		return chargingGlyph
	}
	pct = min(max(pct, 0), 100)
	level := min(pct*barLevels/100, barLevels-1)
	return lowestBar + rune(level)
}

// BatteryPhrase describes a discharging battery by rounded percentage.
func BatteryPhrase(pct int) string {
	switch {
	case pct == 100:
		return "Fully charged"
	case pct >= 95 && pct <= 99:
		return "Almost full"
	case pct >= 74 && pct <= 94:
		return "More than 3/4 full"
	case pct >= 50 && pct <= 73:
		return "More than half full"
	case pct >= 26 && pct <= 49:
		return "Less than half full"
	case pct >= 6 && pct <= 25:
		return "Battery is running low"
	case pct >= 2 && pct <= 5:
		return "Battery is almost empty"
	case pct == 1:
		return "I'm dying over here"
	default:
		return "Out of battery"
	}
}
