// Package percentile implements the deterministic percentile labels used
// throughout snapshots: 0 and 100 are named "min"/"max", everything else
// is "p" followed by the value with its decimal point removed.
package percentile

import (
	"strconv"
	"strings"
)

// Percentile is a clamped value in [0, 100] with a deterministic label.
type Percentile struct {
	value float64
}

// From clamps v into [0, 100] and returns the corresponding Percentile.
func From(v float64) Percentile {
	if v <= 0 {
		return Percentile{value: 0}
	}
	if v >= 100 {
		return Percentile{value: 100}
	}
	return Percentile{value: v}
}

// Value returns the clamped percentile on its native 0-100 scale.
func (p Percentile) Value() float64 { return p.value }

// Quantile returns the clamped percentile as a fraction in [0, 1].
func (p Percentile) Quantile() float64 { return p.value / 100.0 }

// Label returns the deterministic snapshot label for this percentile:
// "min" for 0, "max" for 100, otherwise "p" followed by the value with
// its decimal point stripped (99.9 -> "p999", 99.99 -> "p9999").
func (p Percentile) Label() string {
	switch p.value {
	case 0:
		return "min"
	case 100:
		return "max"
	}
	s := strconv.FormatFloat(p.value, 'f', -1, 64)
	return "p" + strings.Replace(s, ".", "", 1)
}

// Default returns the standard percentile set: {0, 50, 95, 99, 99.9, 100}.
func Default() []Percentile {
	return []Percentile{From(0), From(50), From(95), From(99), From(99.9), From(100)}
}
