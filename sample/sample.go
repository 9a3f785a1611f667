// Package sample defines the wire shape of a single measurement as it
// travels from a Sink to the receiver: the scoped key it is recorded
// under, and the tagged union of count/gauge/timing/value observations.
package sample

import "fmt"

// Key is the constraint a caller-supplied metric identifier must satisfy:
// hashable so it can key a store map, and displayable via fmt so it can be
// composed into a snapshot name. A short string or an int-backed enum both
// qualify; no Stringer implementation is required.
type Key interface {
	comparable
}

// Display renders a metric key as it will appear in a snapshot name.
func Display[K Key](k K) string {
	return fmt.Sprint(k)
}

// ScopedKey pairs a caller key with the numeric scope it was recorded
// under. ScopeID 0 is the reserved root scope.
type ScopedKey[K Key] struct {
	ScopeID uint64
	Name    K
}

// Kind tags the variant carried by a Sample.
type Kind uint8

const (
	// Count is a signed increment applied to the counter store.
	Count Kind = iota
	// Gauge is a last-writer-wins observation applied to the gauge store.
	Gauge
	// Timing is a paired raw-clock start/end reading plus an integral
	// count, applied to both the counter store (by Count) and the timing
	// histogram store (by the clock-scaled delta).
	Timing
	// ValueHistogram is a raw observation fed to the value distribution.
	ValueHistogram
	// RegisterScope associates a scope ID with its dot-joined name. A
	// non-root Sink sends one of these on the same channel as its
	// samples, before any sample that references its scope ID — since
	// one channel is FIFO, this gives scope availability a happens-before
	// relationship with every sample from that Sink, with no separate
	// synchronization needed.
	RegisterScope
)

// Sample is the tagged union carried on the data channel from a Sink to
// the receiver. Only the fields relevant to Kind are meaningful.
type Sample[K Key] struct {
	Kind Kind
	Key  ScopedKey[K]

	// Count: the signed delta to add to the counter.
	Delta int64

	// Gauge: the new value. ValueHistogram: the observed value.
	Value uint64

	// Timing: raw clock readings, meaningful only via clock.Delta.
	StartRaw uint64
	EndRaw   uint64
	// Timing: the caller-supplied row/item count for this span.
	TimingCount uint64

	// RegisterScope: the id being registered and its dot-joined name.
	// Key.ScopeID is unused for this variant.
	ScopeID   uint64
	ScopeName string
}

// NewCount builds a Count sample.
func NewCount[K Key](key ScopedKey[K], delta int64) Sample[K] {
	return Sample[K]{Kind: Count, Key: key, Delta: delta}
}

// NewGauge builds a Gauge sample.
func NewGauge[K Key](key ScopedKey[K], value uint64) Sample[K] {
	return Sample[K]{Kind: Gauge, Key: key, Value: value}
}

// NewTiming builds a Timing sample.
func NewTiming[K Key](key ScopedKey[K], startRaw, endRaw, count uint64) Sample[K] {
	return Sample[K]{Kind: Timing, Key: key, StartRaw: startRaw, EndRaw: endRaw, TimingCount: count}
}

// NewValue builds a ValueHistogram sample.
func NewValue[K Key](key ScopedKey[K], value uint64) Sample[K] {
	return Sample[K]{Kind: ValueHistogram, Key: key, Value: value}
}

// NewRegisterScope builds a RegisterScope frame.
func NewRegisterScope[K Key](id uint64, name string) Sample[K] {
	return Sample[K]{Kind: RegisterScope, ScopeID: id, ScopeName: name}
}
