// Package histogram implements the per-key rolling-window HDR histogram
// that backs the timing and value distribution stores. It wraps
// github.com/codahale/hdrhistogram's WindowedHistogram, which already
// keeps the "N+1 rotating buckets" shape this design calls for: a
// configurable number of retired buckets plus one live writer, merged
// together on snapshot.
package histogram

import (
	hdrhistogram "github.com/codahale/hdrhistogram"
)

const (
	// lowestTrackableValue is the minimum value the histogram tracks.
	lowestTrackableValue int64 = 1
	// highestTrackableValue stands in for "u64::MAX" from the design: the
	// underlying library tracks values as signed 63-bit integers, and a
	// bound anywhere near the real uint64 maximum would blow up the
	// bucket count for the requested significant-figure precision. 1<<62
	// nanoseconds is about 146 years, which saturates in practice exactly
	// like an unbounded counter would.
	highestTrackableValue int64 = 1 << 62
	// significantFigures is the decimal precision HDR buckets are sized
	// to preserve.
	significantFigures = 3
)

// WindowedHistogram is a ring of N+1 HDR histograms covering windowNS of
// history at granularityNS resolution. Exactly one bucket is the current
// writer at any time; upkeep rotates the writer forward as time passes.
type WindowedHistogram struct {
	hdr           *hdrhistogram.WindowedHistogram
	granularityNS int64
	lastUpkeep    int64
}

func newWindowed(windowNS, granularityNS, now int64) *WindowedHistogram {
	n := int(windowNS/granularityNS) + 1
	if n < 1 {
		n = 1
	}
	return &WindowedHistogram{
		hdr:           hdrhistogram.NewWindowed(n, lowestTrackableValue, highestTrackableValue, significantFigures),
		granularityNS: granularityNS,
		lastUpkeep:    now,
	}
}

func clamp(v uint64) int64 {
	if v > uint64(highestTrackableValue) {
		return highestTrackableValue
	}
	if v < uint64(lowestTrackableValue) {
		return lowestTrackableValue
	}
	return int64(v)
}

// record saturating_record's v into the current writer bucket: values
// outside the tracked range clamp to the nearest bound instead of erroring.
func (w *WindowedHistogram) record(v uint64) {
	iv := clamp(v)
	if err := w.hdr.Current.RecordValue(iv); err != nil {
		_ = w.hdr.Current.RecordValue(highestTrackableValue)
	}
}

// upkeep advances the writer bucket for every granularity interval that
// has fully elapsed since the last call, clearing each newly-current
// bucket as it comes into rotation. Idempotent when called more often
// than granularityNS.
func (w *WindowedHistogram) upkeep(now int64) {
	for now-w.lastUpkeep >= w.granularityNS {
		w.hdr.Rotate()
		w.lastUpkeep += w.granularityNS
	}
}

// snapshot merges every bucket (the N retired plus the current writer)
// into a fresh histogram representing the full window.
func (w *WindowedHistogram) snapshot() *hdrhistogram.Histogram {
	return w.hdr.Merge()
}
