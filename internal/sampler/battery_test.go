package sampler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/distatus/battery"

	"github.com/Dicklesworthstone/tmux-sysmon/internal/format"
)

func batteryHost(found []*battery.Battery, err error) *System {
	return &System{batteries: func() ([]*battery.Battery, error) { return found, err }}
}

func TestToBattery(t *testing.T) {
	tests := []struct {
		name     string
		in       battery.Battery
		charging bool
		fraction float64
		left     time.Duration
		known    bool
	}{
		{
			name:     "discharging",
			in:       battery.Battery{State: battery.Discharging, Current: 30000, Full: 40000, ChargeRate: 15000},
			fraction: 0.75,
			left:     2 * time.Hour,
			known:    true,
		},
		{
			name:     "charging has no estimate",
			in:       battery.Battery{State: battery.Charging, Current: 10000, Full: 40000, ChargeRate: 20000},
			charging: true,
			fraction: 0.25,
		},
		{
			name:     "full reads as discharging",
			in:       battery.Battery{State: battery.Full, Current: 40000, Full: 40000},
			fraction: 1,
		},
		{
			name:     "negative rate",
			in:       battery.Battery{State: battery.Discharging, Current: 20000, Full: 40000, ChargeRate: -10000},
			fraction: 0.5,
			left:     2 * time.Hour,
			known:    true,
		},
		{
			name: "unknown capacity",
			in:   battery.Battery{State: battery.Unknown},
		},
		{
			name:     "current above full",
			in:       battery.Battery{State: battery.Discharging, Current: 50000, Full: 40000},
			fraction: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.in
			got := toBattery(&in)
			if got.Charging != tt.charging {
				t.Errorf("Charging = %v, want %v", got.Charging, tt.charging)
			}
			if got.Fraction != tt.fraction {
				t.Errorf("Fraction = %v, want %v", got.Fraction, tt.fraction)
			}
			if got.HasTimeToEmpty != tt.known || got.TimeToEmpty != tt.left {
				t.Errorf("TimeToEmpty = %v (known %v), want %v (known %v)", got.TimeToEmpty, got.HasTimeToEmpty, tt.left, tt.known)
			}
		})
	}
}

func TestToBatteryHugeEstimateStaysPositive(t *testing.T) {
	got := toBattery(&battery.Battery{State: battery.Discharging, Current: 50000, Full: 60000, ChargeRate: 1e-9})
	if !got.HasTimeToEmpty {
		t.Fatal("HasTimeToEmpty = false, want an estimate")
	}
	if got.TimeToEmpty != maxTimeToEmpty {
		t.Errorf("TimeToEmpty = %v, want %v", got.TimeToEmpty, maxTimeToEmpty)
	}
	if got.TimeToEmpty <= 0 {
		t.Errorf("TimeToEmpty = %v, want positive", got.TimeToEmpty)
	}
	if out := format.DurationHMS(uint64(got.TimeToEmpty.Seconds())); out != "2562047:47:16" {
		t.Errorf("DurationHMS() = %q, want %q", out, "2562047:47:16")
	}
}

func TestBatteries(t *testing.T) {
	found := []*battery.Battery{
		{State: battery.Discharging, Current: 10, Full: 100},
		nil,
		{State: battery.Charging, Current: 90, Full: 100},
	}
	got, err := batteryHost(found, nil).Batteries(context.Background())
	if err != nil {
		t.Fatalf("Batteries() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Batteries() = %d entries, want 2", len(got))
	}
	if got[0].Charging || got[0].Fraction != 0.1 {
		t.Errorf("got[0] = %+v, want discharging at 0.1", got[0])
	}
	if !got[1].Charging {
		t.Errorf("got[1] = %+v, want charging", got[1])
	}
}

func TestBatteriesSkipsUnreadable(t *testing.T) {
	found := []*battery.Battery{
		{State: battery.Discharging, Current: 10, Full: 100},
		{State: battery.Discharging, Current: 50, Full: 100},
	}
	perBattery := battery.Errors{
		battery.ErrFatal{Err: errors.New("uevent unreadable")},
		battery.ErrPartial{ChargeRate: errors.New("no power_now")},
	}
	got, err := batteryHost(found, perBattery).Batteries(context.Background())
	if err != nil {
		t.Fatalf("Batteries() error = %v", err)
	}
	if len(got) != 1 || got[0].Fraction != 0.5 {
		t.Errorf("Batteries() = %+v, want only the partially read battery", got)
	}
}

func TestBatteriesFatal(t *testing.T) {
	_, err := batteryHost(nil, battery.ErrFatal{Err: errors.New("no power_supply class")}).Batteries(context.Background())
	if err == nil {
		t.Error("Batteries() error = nil, want fatal error")
	}
}

func TestBatteriesNone(t *testing.T) {
	got, err := batteryHost(nil, nil).Batteries(context.Background())
	if err != nil || len(got) != 0 {
		t.Errorf("Batteries() = %v, %v, want empty", got, err)
	}
}
