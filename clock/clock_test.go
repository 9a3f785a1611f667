package clock

import (
	"testing"
	"time"
)

func TestNewNeverFails(t *testing.T) {
	c := New()
	if c.Now() == 0 && c.raw() == 0 {
		// Both being zero on a freshly-constructed clock is plausible at
		// the very start of the process but vanishingly unlikely in a
		// test run; this just checks New doesn't panic or deadlock.
	}
}

func TestDeltaMonotonic(t *testing.T) {
	c := New()
	start := c.Start()
	for i := 0; i < 1000; i++ {
		_ = i
	}
	end := c.End()
	d := c.Delta(start, end)
	// Back-to-back Start/End calls span a tiny, non-negative interval —
	// possibly zero if both land in the same counter granularity window —
	// never a huge one.
	if d > uint64(1<<62) {
		t.Errorf("Delta returned an implausibly large value: %d", d)
	}
}

func TestIdentityCalibrationIsNoop(t *testing.T) {
	cal := identityCalibration(1000)
	c := Clock{source: kindReference, cal: cal}
	if got := c.scaled(1000); got != 1000 {
		t.Errorf("scaled(1000) with identity calibration = %d, want 1000", got)
	}
}

func TestScaledSaturatesAtZero(t *testing.T) {
	cal := Calibration{refTime0: 1000, srcTime0: 1000, hzRatio: 1}
	c := Clock{source: kindReference, cal: cal}
	if got := c.scaled(0); got != 0 {
		t.Errorf("scaled(0) with refTime0=1000 should saturate to 0, got %d", got)
	}
}

func TestFastSourceAvailableIsArchGated(t *testing.T) {
	// Just exercise the function; the result is architecture-dependent
	// and both outcomes are valid depending on the test runner.
	_ = fastSourceAvailable()
}

func TestCounterNowTracksElapsedTime(t *testing.T) {
	// counterNow must read real monotonic time, not merely advance once
	// per invocation: reading it many times in a tight loop must not
	// inflate its value by anything close to one granularity step per
	// read, since no meaningful time elapses between the reads.
	before := counterNow()
	for i := 0; i < 100_000; i++ {
		_ = counterNow()
	}
	after := counterNow()
	if after-before >= 100_000 {
		t.Errorf("counterNow advanced by %d across 100000 reads; looks like a call counter, not a time reader", after-before)
	}
}

func TestDeltaMeasuresElapsedNotCallCount(t *testing.T) {
	c := New()
	start := c.Start()
	// Read the clock many times without any real time passing; none of
	// these reads should be mistaken for elapsed duration.
	for i := 0; i < 1000; i++ {
		_ = c.Now()
	}
	end := c.End()
	d := c.Delta(start, end)
	// The loop above does negligible work; the measured span should be
	// microseconds, not anywhere near the 1000 intervening reads would
	// suggest under the old call-counting behavior.
	if d > uint64(5*time.Millisecond) {
		t.Errorf("Delta() = %d ns across a near-instantaneous region; want it to reflect elapsed time, not call count", d)
	}
}
