// Package receiver implements the single-threaded aggregator: the Run
// loop that drains samples (including in-band scope registrations)
// produced by many Sinks and snapshot requests from Controllers,
// updating per-key counter, gauge, and histogram stores, and answering
// each snapshot request synchronously from that same goroutine so it
// never races a concurrent store update.
package receiver

import (
	"context"
	"time"

	"github.com/greynewell/mist-metrics/clock"
	"github.com/greynewell/mist-metrics/control"
	"github.com/greynewell/mist-metrics/histogram"
	"github.com/greynewell/mist-metrics/logging"
	"github.com/greynewell/mist-metrics/percentile"
	"github.com/greynewell/mist-metrics/sample"
	"github.com/greynewell/mist-metrics/sink"
	"github.com/greynewell/mist-metrics/snapshot"
	"github.com/greynewell/mist-metrics/store"
)

// Receiver owns all per-key state for one metrics namespace. It is not
// safe for concurrent use: only the goroutine running Run may touch its
// stores, which is exactly what makes every store implementation free of
// locking.
type Receiver[K sample.Key] struct {
	data chan sample.Sample[K]
	ctl  chan control.Message
	done chan struct{} // closed once, signals Run has returned

	clock       clock.Source
	batchSize   int
	granularity int64 // nanoseconds
	percentiles []percentile.Percentile
	log         *logging.Logger

	counters   *store.Counter[K]
	gauges     *store.Gauge[K]
	timings    *histogram.Store[K]
	values     *histogram.Store[K]
	scopeNames map[uint64]string

	lastUpkeep int64
}

// controlCapacity is the fixed depth of the control channel: snapshot
// requests are rare and synchronous from the caller's perspective, so
// unlike the data channel it doesn't need to scale with throughput.
const controlCapacity = 16

func newReceiver[K sample.Key](c *Configuration[K]) *Receiver[K] {
	windowNS := c.histogramWindow.Nanoseconds()
	granularityNS := c.histogramGranularity.Nanoseconds()
	clk := c.clock
	if clk == nil {
		clk = clock.New()
	}
	return &Receiver[K]{
		data:        make(chan sample.Sample[K], c.capacity),
		ctl:         make(chan control.Message, controlCapacity),
		done:        make(chan struct{}),
		clock:       clk,
		batchSize:   c.batchSize,
		granularity: granularityNS,
		percentiles: c.percentiles,
		log:         c.log,
		counters:    store.NewCounter[K](),
		gauges:      store.NewGauge[K](),
		timings:     histogram.NewStore[K](windowNS, granularityNS),
		values:      histogram.NewStore[K](windowNS, granularityNS),
		scopeNames:  map[uint64]string{0: ""},
		lastUpkeep:  int64(clk.Now()),
	}
}

// GetSink returns a root-scope Sink bound to this receiver's data channel.
func (r *Receiver[K]) GetSink() *sink.Sink[K] {
	return sink.New[K](r.data, r.done, r.clock)
}

// GetController returns a Controller that can request snapshots from
// this receiver.
func (r *Receiver[K]) GetController() *control.Controller {
	return control.New(r.ctl, r.done)
}

// Run drains the data and control channels until ctx is cancelled,
// applying samples to the store state and answering control messages as
// they arrive. It returns nil on a clean ctx cancellation. Run must be
// called from exactly one goroutine, and that goroutine is the only one
// permitted to read r's stores directly; everyone else goes through a
// Sink or a Controller.
func (r *Receiver[K]) Run(ctx context.Context) error {
	defer close(r.done)

	timer := time.NewTimer(r.upkeepInterval())
	defer timer.Stop()

	for {
		r.maybeUpkeep()
		r.drainControl()
		r.drainData()

		select {
		case <-ctx.Done():
			r.logf(ctx, "receiver shutting down")
			return nil
		case sm := <-r.data:
			r.applySample(sm)
		case msg := <-r.ctl:
			r.applyControl(msg)
		case <-timer.C:
			timer.Reset(r.upkeepInterval())
		}
	}
}

func (r *Receiver[K]) upkeepInterval() time.Duration {
	return time.Duration(r.granularity)
}

func (r *Receiver[K]) maybeUpkeep() {
	now := int64(r.clock.Now())
	if now-r.lastUpkeep < r.granularity {
		return
	}
	r.timings.Upkeep(now)
	r.values.Upkeep(now)
	r.lastUpkeep = now
}

// drainControl processes every control message currently queued, without
// blocking, so a burst of snapshot requests never waits behind the next
// idle-wait tick. Scope registrations arrive on the data channel instead.
func (r *Receiver[K]) drainControl() {
	for {
		select {
		case msg := <-r.ctl:
			r.applyControl(msg)
		default:
			return
		}
	}
}

// drainData applies up to batchSize queued samples without blocking,
// bounding how long one loop iteration can run before control messages
// get another chance to be serviced.
func (r *Receiver[K]) drainData() {
	for i := 0; i < r.batchSize; i++ {
		select {
		case sm := <-r.data:
			r.applySample(sm)
		default:
			return
		}
	}
}

func (r *Receiver[K]) applyControl(msg control.Message) {
	snap := r.buildSnapshot()
	msg.Responder <- control.Result{Snapshot: snap}
}

func (r *Receiver[K]) applySample(sm sample.Sample[K]) {
	now := int64(r.clock.Now())
	switch sm.Kind {
	case sample.Count:
		r.counters.Update(sm.Key, sm.Delta)
	case sample.Gauge:
		r.gauges.Update(sm.Key, sm.Value)
	case sample.Timing:
		r.counters.Update(sm.Key, int64(sm.TimingCount))
		elapsed := r.clock.Delta(sm.StartRaw, sm.EndRaw)
		r.timings.Update(sm.Key, elapsed, now)
	case sample.ValueHistogram:
		r.values.Update(sm.Key, sm.Value, now)
	case sample.RegisterScope:
		r.scopeNames[sm.ScopeID] = sm.ScopeName
	}
}

func (r *Receiver[K]) logf(ctx context.Context, msg string, args ...any) {
	if r.log == nil {
		return
	}
	r.log.Debug(ctx, msg, args...)
}
