// Package snapshot defines the point-in-time view the controller returns
// from a snapshot request: an ordered list of typed measurements plus
// lookup helpers for consumers that know what they're looking for.
package snapshot

import (
	hdrhistogram "github.com/codahale/hdrhistogram"

	"github.com/greynewell/mist-metrics/percentile"
)

// Kind tags the variant carried by a Measurement.
type Kind uint8

const (
	KindCounter Kind = iota
	KindGauge
	KindTimingHistogram
	KindValueHistogram
)

// Summary carries a histogram's total observation count and one value
// per configured percentile, keyed by percentile label.
type Summary struct {
	Count  uint64
	Values map[string]uint64
}

// NewSummary builds a Summary from a merged histogram and the configured
// percentile set.
func NewSummary(merged *hdrhistogram.Histogram, percentiles []percentile.Percentile) Summary {
	s := Summary{
		Count:  uint64(merged.TotalCount()),
		Values: make(map[string]uint64, len(percentiles)),
	}
	for _, p := range percentiles {
		var v int64
		switch p.Value() {
		case 0:
			v = merged.Min()
		case 100:
			v = merged.Max()
		default:
			v = merged.ValueAtQuantile(p.Value())
		}
		if v < 0 {
			v = 0
		}
		s.Values[p.Label()] = uint64(v)
	}
	return s
}

// At returns the summarized value at the given percentile label, and
// whether that label was present (i.e. configured when the snapshot was
// taken).
func (s Summary) At(label string) (uint64, bool) {
	v, ok := s.Values[label]
	return v, ok
}

// Measurement is one typed entry in a Snapshot.
type Measurement struct {
	Kind    Kind
	Name    string
	Counter int64
	Gauge   uint64
	Summary Summary
}

// Snapshot is an ordered list of typed measurements captured at a single
// point in the receiver's processing of its control channel.
type Snapshot struct {
	Measurements []Measurement
}

// Count looks up a Counter measurement by name.
func (s *Snapshot) Count(name string) (int64, bool) {
	for _, m := range s.Measurements {
		if m.Kind == KindCounter && m.Name == name {
			return m.Counter, true
		}
	}
	return 0, false
}

// Gauge looks up a Gauge measurement by name.
func (s *Snapshot) Gauge(name string) (uint64, bool) {
	for _, m := range s.Measurements {
		if m.Kind == KindGauge && m.Name == name {
			return m.Gauge, true
		}
	}
	return 0, false
}

// TimingHistogram looks up a TimingHistogram measurement by name and
// returns its value at the requested percentile label.
func (s *Snapshot) TimingHistogram(name, percentileLabel string) (uint64, bool) {
	for _, m := range s.Measurements {
		if m.Kind == KindTimingHistogram && m.Name == name {
			return m.Summary.At(percentileLabel)
		}
	}
	return 0, false
}

// ValueHistogram looks up a ValueHistogram measurement by name and
// returns its value at the requested percentile label.
func (s *Snapshot) ValueHistogram(name, percentileLabel string) (uint64, bool) {
	for _, m := range s.Measurements {
		if m.Kind == KindValueHistogram && m.Name == name {
			return m.Summary.At(percentileLabel)
		}
	}
	return 0, false
}
