package histogram

import "testing"

func TestRecordSaturatesAboveMax(t *testing.T) {
	w := newWindowed(testWindowNS, testGranularityNS, 0)
	w.record(^uint64(0)) // far above highestTrackableValue

	snap := w.snapshot()
	if snap.TotalCount() != 1 {
		t.Fatalf("TotalCount() = %d, want 1", snap.TotalCount())
	}
	if snap.Max() != highestTrackableValue {
		t.Errorf("Max() = %d, want the saturated bound %d", snap.Max(), highestTrackableValue)
	}
}

func TestClamp(t *testing.T) {
	if got := clamp(0); got != lowestTrackableValue {
		t.Errorf("clamp(0) = %d, want %d", got, lowestTrackableValue)
	}
	if got := clamp(^uint64(0)); got != highestTrackableValue {
		t.Errorf("clamp(max) = %d, want %d", got, highestTrackableValue)
	}
	if got := clamp(500); got != 500 {
		t.Errorf("clamp(500) = %d, want 500", got)
	}
}

func TestUpkeepRotatesExactlyElapsedIntervals(t *testing.T) {
	w := newWindowed(testWindowNS, testGranularityNS, 0)
	w.record(100)
	w.upkeep(testGranularityNS) // exactly one interval elapsed

	if w.lastUpkeep != testGranularityNS {
		t.Errorf("lastUpkeep = %d, want %d", w.lastUpkeep, testGranularityNS)
	}
}
