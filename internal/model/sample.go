package model

import (
	"math"
	"time"
)

// CPU is one utilization reading, aggregate and per core.
type CPU struct {
	Total   float64   // percent 0-100
	PerCore []float64 // per-core percent, provider core order
}

// Busy reports whether any part of the reading is non-zero.
func (c CPU) Busy(perCore bool) bool {
	if !perCore {
		return c.Total > 0
	}
	for _, v := range c.PerCore {
		if v > 0 {
			return true
		}
	}
	return false
}

// Memory captures RAM in bytes for precision.
type Memory struct {
	TotalBytes     uint64
	AvailableBytes uint64
}

// Used is total minus available, never below zero.
func (m Memory) Used() uint64 { return saturatingSub(m.TotalBytes, m.AvailableBytes) }

// Volume is one mounted filesystem.
type Volume struct {
	MountPoint     string
	TotalBytes     uint64
	AvailableBytes uint64
}

// Used is total minus available, never below zero.
func (v Volume) Used() uint64 { return saturatingSub(v.TotalBytes, v.AvailableBytes) }

// Battery shows power state for a single battery.
type Battery struct {
	Charging bool
	Fraction float64 // state of charge, 0.0-1.0

	// TimeToEmpty is only meaningful when HasTimeToEmpty is set, which
	// providers do only while discharging.
	TimeToEmpty    time.Duration
	HasTimeToEmpty bool
}

// Percent is the state of charge scaled to 0-100, clamped and rounded.
func (b Battery) Percent() int {
	return int(math.Round(ClampPercent(b.Fraction * 100)))
}

// ClampPercent bounds v to [0, 100]. NaN reads as 0.
func ClampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}

func saturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
