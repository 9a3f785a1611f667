// Package sink implements the producer-side handle application code uses
// to record metrics. A Sink is cheap to create and cheap to share: it
// holds only channel handles, a scope id, and a clock, so cloning one
// into a new hierarchical scope costs one channel send.
package sink

import (
	"sync/atomic"

	"github.com/greynewell/mist-metrics/clock"
	"github.com/greynewell/mist-metrics/errors"
	"github.com/greynewell/mist-metrics/sample"
)

// nextScopeID is the process-wide scope id allocator. Scope 0 is the
// reserved root; every Scoped call hands out the next integer.
var nextScopeID atomic.Uint64

func init() {
	nextScopeID.Store(1)
}

// allocateScopeID returns the next unused scope id.
func allocateScopeID() uint64 {
	return nextScopeID.Add(1) - 1
}

// ErrInvalidScope is returned by Scoped when given an empty suffix.
var ErrInvalidScope = errors.New(errors.CodeValidation, "scope suffix must not be empty")

// Sink records counts, gauges, timings, and value observations under a
// fixed hierarchical scope. Update methods block while the data channel
// is full — backpressure, not data loss, is the answer to sustained
// overload — and only give up silently once the receiver has shut down.
type Sink[K sample.Key] struct {
	data    chan<- sample.Sample[K]
	closed  <-chan struct{}
	clock   clock.Source
	scopeID uint64
	name    string // dot-joined scope name, for composing child scopes
}

// New builds a root Sink (scope id 0) bound to a receiver's data channel.
func New[K sample.Key](data chan<- sample.Sample[K], closed <-chan struct{}, c clock.Source) *Sink[K] {
	return &Sink[K]{data: data, closed: closed, clock: c, scopeID: 0, name: ""}
}

// Clock returns the clock this Sink stamps Start/End readings with.
func (s *Sink[K]) Clock() clock.Source {
	return s.clock
}

// Scoped returns a child Sink whose scope name is this Sink's name with
// suffix appended (dot-joined), registering the new scope id with the
// receiver before returning. The registration frame travels on the same
// data channel as every sample this Sink will go on to send, so the
// scope is guaranteed to be known before the receiver ever applies a
// sample that references it. Rejects an empty suffix.
func (s *Sink[K]) Scoped(suffix string) (*Sink[K], error) {
	if suffix == "" {
		return nil, ErrInvalidScope
	}
	name := suffix
	if s.name != "" {
		name = s.name + "." + suffix
	}
	id := allocateScopeID()

	select {
	case s.data <- sample.NewRegisterScope[K](id, name):
	case <-s.closed:
		// The receiver is gone; the child Sink is still usable, its
		// updates will simply be dropped like any other post-shutdown
		// send attempt.
	}

	return &Sink[K]{data: s.data, closed: s.closed, clock: s.clock, scopeID: id, name: name}, nil
}

func (s *Sink[K]) key(name K) sample.ScopedKey[K] {
	return sample.ScopedKey[K]{ScopeID: s.scopeID, Name: name}
}

// send blocks the caller while the data channel is full — backpressure
// is intentional, since a dropped sample under load is worse than a
// slow producer. It only gives up without sending once the receiver has
// shut down, since there is then nobody left to ever drain a slot.
func (s *Sink[K]) send(sm sample.Sample[K]) {
	select {
	case s.data <- sm:
	case <-s.closed:
	}
}

// UpdateCount adds delta to the accumulated value for key.
func (s *Sink[K]) UpdateCount(key K, delta int64) {
	s.send(sample.NewCount(s.key(key), delta))
}

// Increment adds 1 to the accumulated value for key.
func (s *Sink[K]) Increment(key K) {
	s.UpdateCount(key, 1)
}

// Decrement subtracts 1 from the accumulated value for key.
func (s *Sink[K]) Decrement(key K) {
	s.UpdateCount(key, -1)
}

// UpdateGauge overwrites the value for key.
func (s *Sink[K]) UpdateGauge(key K, value uint64) {
	s.send(sample.NewGauge(s.key(key), value))
}

// UpdateValue records a single observation into key's value histogram.
func (s *Sink[K]) UpdateValue(key K, value uint64) {
	s.send(sample.NewValue(s.key(key), value))
}

// UpdateTiming records the elapsed span between two raw clock readings
// from s.Clock(), incrementing key's counter by 1.
func (s *Sink[K]) UpdateTiming(key K, start, end uint64) {
	s.UpdateTimingWithCount(key, start, end, 1)
}

// UpdateTimingWithCount records the elapsed span between two raw clock
// readings, incrementing key's counter by count (e.g. the number of rows
// processed during the measured span).
func (s *Sink[K]) UpdateTimingWithCount(key K, start, end, count uint64) {
	s.send(sample.NewTiming(s.key(key), start, end, count))
}

// StringKey is a convenience Key implementation for callers who want to
// build metric names from dynamic string values rather than a fixed
// enum. It memoizes nothing beyond the string itself; it exists purely
// to give fmt.Sprint-based Display a concrete, non-string-aliasing type
// to dispatch on.
type StringKey string
