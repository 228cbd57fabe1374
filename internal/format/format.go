// Package format turns raw readings into the fixed strings printed on
// the status line. Everything here is pure.
package format

import (
	"fmt"
	"math"
)

const gib = 1024 * 1024 * 1024

var shortUnits = [...]string{"B", "K", "M", "G", "T"}

// Decimal1DP rounds v to one decimal place, halves away from zero.
func Decimal1DP(v float64) string {
	return fmt.Sprintf("%.1f", math.Round(v*10)/10)
}

// Percent1DP is Decimal1DP with a "%" suffix. Callers clamp.
func Percent1DP(v float64) string {
	return Decimal1DP(v) + "%"
}

// GiBLabel renders bytes as gibibytes with two decimals, labelled "GB".
func GiBLabel(bytes uint64) string {
	return fmt.Sprintf("%.2fGB", float64(bytes)/gib)
}

// HumanizeShort renders bytes with one decimal and a single-letter unit,
// e.g. "55.7G". Anything below 1 KiB is "0.0K".
func HumanizeShort(bytes uint64) string {
	if bytes < 1024 {
		return "0.0K"
	}
	value := float64(bytes)
	idx := 0
	for value >= 1024 && idx < len(shortUnits)-1 {
		value /= 1024
		idx++
	}
	return Decimal1DP(value) + shortUnits[idx]
}

// DurationHMS formats seconds as H:MM:SS with unpadded hours.
func DurationHMS(totalSeconds uint64) string {
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
}
