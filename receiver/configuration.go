package receiver

import (
	"time"

	"github.com/greynewell/mist-metrics/clock"
	"github.com/greynewell/mist-metrics/logging"
	"github.com/greynewell/mist-metrics/percentile"
	"github.com/greynewell/mist-metrics/sample"
)

// Default tuning values for a Configuration that hasn't overridden them.
const (
	DefaultCapacity             = 1024
	DefaultBatchSize            = 64
	DefaultHistogramWindow      = 10 * time.Second
	DefaultHistogramGranularity = 1 * time.Second
)

// Configuration is a fluent builder for a Receiver. Start from
// NewConfiguration, which sets the package defaults, and call Build once
// all options are set. Build does not fill in defaults: a zero-value
// Configuration has zero capacity, batch size, window and granularity.
type Configuration[K sample.Key] struct {
	capacity             int
	batchSize            int
	histogramWindow      time.Duration
	histogramGranularity time.Duration
	percentiles          []percentile.Percentile
	log                  *logging.Logger
	clock                clock.Source
}

// NewConfiguration returns a Configuration with the package defaults.
func NewConfiguration[K sample.Key]() *Configuration[K] {
	return &Configuration[K]{
		capacity:             DefaultCapacity,
		batchSize:            DefaultBatchSize,
		histogramWindow:      DefaultHistogramWindow,
		histogramGranularity: DefaultHistogramGranularity,
		percentiles:          percentile.Default(),
	}
}

// WithCapacity sets the data channel buffer size. The control channel's
// depth is fixed and not affected.
func (c *Configuration[K]) WithCapacity(n int) *Configuration[K] {
	c.capacity = n
	return c
}

// WithBatchSize sets the maximum number of samples drained from the data
// channel per iteration of the receiver's Run loop.
func (c *Configuration[K]) WithBatchSize(n int) *Configuration[K] {
	c.batchSize = n
	return c
}

// WithHistogramWindow sets the total retained history for timing and
// value histograms.
func (c *Configuration[K]) WithHistogramWindow(d time.Duration) *Configuration[K] {
	c.histogramWindow = d
	return c
}

// WithHistogramGranularity sets the rotation period for histogram buckets.
func (c *Configuration[K]) WithHistogramGranularity(d time.Duration) *Configuration[K] {
	c.histogramGranularity = d
	return c
}

// WithPercentiles overrides the default percentile set computed for every
// histogram on snapshot.
func (c *Configuration[K]) WithPercentiles(p []percentile.Percentile) *Configuration[K] {
	c.percentiles = p
	return c
}

// WithLogger attaches a logger the receiver uses for lifecycle and
// diagnostic messages. Without one, the receiver logs nothing.
func (c *Configuration[K]) WithLogger(log *logging.Logger) *Configuration[K] {
	c.log = log
	return c
}

// WithClock overrides the receiver's time source. Tests inject a *clock.Mock
// here to make timing measurements and histogram rollover deterministic
// instead of depending on wall-clock time; production callers leave this
// unset and get the platform's calibrated clock.New().
func (c *Configuration[K]) WithClock(src clock.Source) *Configuration[K] {
	c.clock = src
	return c
}

// Build constructs a Receiver from this Configuration.
func (c *Configuration[K]) Build() *Receiver[K] {
	return newReceiver[K](c)
}
