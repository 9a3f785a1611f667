package receiver

import (
	"testing"
	"time"
)

func TestConfigurationDefaults(t *testing.T) {
	c := NewConfiguration[string]()
	if c.capacity != DefaultCapacity {
		t.Errorf("capacity = %d, want %d", c.capacity, DefaultCapacity)
	}
	if c.batchSize != DefaultBatchSize {
		t.Errorf("batchSize = %d, want %d", c.batchSize, DefaultBatchSize)
	}
	if c.histogramWindow != DefaultHistogramWindow {
		t.Errorf("histogramWindow = %v, want %v", c.histogramWindow, DefaultHistogramWindow)
	}
	if len(c.percentiles) == 0 {
		t.Error("percentiles should default to a non-empty set")
	}
}

func TestConfigurationOverrides(t *testing.T) {
	c := NewConfiguration[string]().
		WithCapacity(2048).
		WithBatchSize(128).
		WithHistogramWindow(30 * time.Second).
		WithHistogramGranularity(5 * time.Second)

	if c.capacity != 2048 || c.batchSize != 128 {
		t.Errorf("overrides not applied: capacity=%d batchSize=%d", c.capacity, c.batchSize)
	}
	if c.histogramWindow != 30*time.Second || c.histogramGranularity != 5*time.Second {
		t.Errorf("histogram overrides not applied: window=%v granularity=%v", c.histogramWindow, c.histogramGranularity)
	}
}

func TestBuildProducesUsableReceiver(t *testing.T) {
	r := NewConfiguration[string]().Build()
	if r.GetSink() == nil || r.GetController() == nil {
		t.Fatal("Build produced a Receiver with nil Sink or Controller")
	}
}
