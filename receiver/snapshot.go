package receiver

import (
	hdrhistogram "github.com/codahale/hdrhistogram"

	"github.com/greynewell/mist-metrics/sample"
	"github.com/greynewell/mist-metrics/snapshot"
)

// buildSnapshot walks every store and composes a fully-qualified name for
// each key from its scope's registered name and its own display form.
// Keys whose scope id has no registered name are skipped. A RegisterScope
// frame travels ahead of every sample of its scope on the same FIFO data
// channel, so a key that has reached a store already has its scope
// registered; the check guards the lookup rather than a reachable case.
// Samples still queued on the data channel when a snapshot request is
// serviced are simply absent from that snapshot.
func (r *Receiver[K]) buildSnapshot() snapshot.Snapshot {
	var snap snapshot.Snapshot

	r.counters.Range(func(key sample.ScopedKey[K], v int64) {
		name, ok := r.qualifiedName(key)
		if !ok {
			return
		}
		snap.Measurements = append(snap.Measurements, snapshot.Measurement{
			Kind:    snapshot.KindCounter,
			Name:    name,
			Counter: v,
		})
	})

	r.gauges.Range(func(key sample.ScopedKey[K], v uint64) {
		name, ok := r.qualifiedName(key)
		if !ok {
			return
		}
		snap.Measurements = append(snap.Measurements, snapshot.Measurement{
			Kind:  snapshot.KindGauge,
			Name:  name,
			Gauge: v,
		})
	})

	r.timings.Range(func(key sample.ScopedKey[K], merged *hdrhistogram.Histogram) {
		name, ok := r.qualifiedName(key)
		if !ok {
			return
		}
		snap.Measurements = append(snap.Measurements, snapshot.Measurement{
			Kind:    snapshot.KindTimingHistogram,
			Name:    name,
			Summary: snapshot.NewSummary(merged, r.percentiles),
		})
	})

	r.values.Range(func(key sample.ScopedKey[K], merged *hdrhistogram.Histogram) {
		name, ok := r.qualifiedName(key)
		if !ok {
			return
		}
		snap.Measurements = append(snap.Measurements, snapshot.Measurement{
			Kind:    snapshot.KindValueHistogram,
			Name:    name,
			Summary: snapshot.NewSummary(merged, r.percentiles),
		})
	})

	return snap
}

func (r *Receiver[K]) qualifiedName(key sample.ScopedKey[K]) (string, bool) {
	prefix, ok := r.scopeNames[key.ScopeID]
	if !ok {
		return "", false
	}
	display := sample.Display(key.Name)
	if prefix == "" {
		return display, true
	}
	return prefix + "." + display, true
}
