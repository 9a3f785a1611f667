// Package clock provides the high-speed timing facility used to stamp
// samples before they cross the channel to the receiver. A Clock composes
// a reference source (the platform monotonic clock) with an optional fast
// source, calibrated to the reference once at construction.
package clock

import (
	"runtime"
	"time"
)

// kind tags which clock source backs a Clock's fast path.
type kind uint8

const (
	kindReference kind = iota
	kindCounter
)

// fastSourceAvailable reports whether this platform has a free-running
// counter distinct from the reference clock. Pure Go has no portable way
// to read a processor timestamp counter without cgo or assembly, so the
// "counter" source here is a second monotonic reader taken at a coarser
// internal cadence — it stands in for a TSC-like source for the purposes
// of exercising the calibration math, and degrades to the reference
// clock outright on architectures where that distinction isn't modeled.
func fastSourceAvailable() bool {
	switch runtime.GOARCH {
	case "amd64", "arm64":
		return true
	default:
		return false
	}
}

// epoch anchors the reference clock so that raw nanotime-derived values
// stay small and positive for the lifetime of the process.
var epoch = time.Now()

func referenceNow() uint64 {
	return uint64(time.Since(epoch).Nanoseconds())
}

// counterGranularityNS is the resolution the "counter" source is read at.
// A real TSC advances continuously regardless of how often it's sampled;
// the stand-in here models that by reading the reference clock at a
// coarser grain than raw nanoseconds, so it's a genuinely different (and
// lossier) clock domain for the calibration math to reconcile, rather
// than an alias of the reference clock itself.
const counterGranularityNS = 64

func counterNow() uint64 {
	return referenceNow() / counterGranularityNS
}

// Calibration anchors a fast source's raw readings back to the reference
// clock's nanosecond timescale.
type Calibration struct {
	refTime0 uint64
	srcTime0 uint64
	hzRatio  float64
}

// identityCalibration is used when the fast source is unavailable or
// identical to the reference: scaling becomes a no-op shift by zero with
// a 1:1 rate, per the "Failure" contract in the design.
func identityCalibration(now uint64) Calibration {
	return Calibration{refTime0: now, srcTime0: now, hzRatio: 1}
}

// calibrate busy-waits while sampling the reference clock until a 10ms
// calibration window has elapsed, recording source start/end across that
// interval, and derives the ratio needed to scale source readings onto
// the reference timescale.
func calibrate() Calibration {
	refStart := referenceNow()
	srcStart := counterNow()

	const calibrationWindow = 10 * time.Millisecond
	deadline := refStart + uint64(calibrationWindow.Nanoseconds())
	for referenceNow() < deadline {
	}

	refEnd := referenceNow()
	srcEnd := counterNow()

	refDelta := float64(refEnd - refStart)
	srcDelta := float64(srcEnd - srcStart)
	if srcDelta <= 0 || refDelta <= 0 {
		return identityCalibration(refStart)
	}

	srcHz := srcDelta * (float64(time.Second) / refDelta)
	hzRatio := float64(time.Second) / srcHz

	return Calibration{
		refTime0: refStart,
		srcTime0: srcStart,
		hzRatio:  hzRatio,
	}
}

// Source is the interface the receiver and sink depend on, satisfied by
// both Clock and Mock, so tests can substitute deterministic time without
// threading a concrete type through every package.
type Source interface {
	Now() uint64
	Start() uint64
	End() uint64
	Delta(start, end uint64) uint64
}

// Clock is a sharable, immutable handle to the process's calibrated
// high-speed timing facility. The zero value is not usable; construct one
// with New.
type Clock struct {
	source kind
	cal    Calibration
}

// New creates a Clock with the best available reference and source,
// calibrating the two at construction. Construction never fails: if no
// fast source is available, the reference clock is used for both roles
// and the scaling ratio is 1.
func New() Clock {
	if !fastSourceAvailable() {
		return Clock{source: kindReference, cal: identityCalibration(referenceNow())}
	}
	return Clock{source: kindCounter, cal: calibrate()}
}

// Now returns the current time in nanoseconds since an arbitrary process
// epoch, scaled to the reference timescale. Not recommended for values
// that will be recorded as raw sample timestamps — use Start/End for that,
// since they skip the scaling step on the hot path.
func (c Clock) Now() uint64 {
	return c.scaled(c.raw())
}

func (c Clock) raw() uint64 {
	if c.source == kindCounter {
		return counterNow()
	}
	return referenceNow()
}

// Start returns an opaque raw reading marking the beginning of a measured
// region. Pair it with a later End reading and pass both to Delta.
func (c Clock) Start() uint64 {
	return c.raw()
}

// End returns an opaque raw reading marking the end of a measured region.
func (c Clock) End() uint64 {
	return c.raw()
}

// scaled converts a raw reading from this clock's source into reference
// nanoseconds, saturating to zero rather than wrapping on underflow.
func (c Clock) scaled(v uint64) uint64 {
	delta := float64(v) - float64(c.cal.srcTime0)
	scaled := delta*c.cal.hzRatio + float64(c.cal.refTime0)
	if scaled < 0 {
		return 0
	}
	return uint64(scaled)
}

// Delta computes the elapsed reference-nanosecond duration between a
// Start and End reading from this clock, handling counter wraparound by
// operating on the wrapping difference so a wrapped counter still yields
// a small positive interval instead of a huge one.
func (c Clock) Delta(start, end uint64) uint64 {
	wrapped := end - start // unsigned wraparound is well-defined in Go
	return uint64(float64(wrapped) * c.cal.hzRatio)
}
