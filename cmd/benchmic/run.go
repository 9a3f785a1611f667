package main

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/greynewell/mist-metrics/control"
	"github.com/greynewell/mist-metrics/logging"
	"github.com/greynewell/mist-metrics/output"
	"github.com/greynewell/mist-metrics/parallel"
	"github.com/greynewell/mist-metrics/percentile"
	"github.com/greynewell/mist-metrics/resource"
	"github.com/greynewell/mist-metrics/retry"
	"github.com/greynewell/mist-metrics/sink"
	"github.com/greynewell/mist-metrics/snapshot"
)

// payloadSizes cycles through a few representative observation sizes so
// the value histogram has something other than a single bucket to report.
var payloadSizes = [...]uint64{64, 128, 256, 512, 1024}

// runWorkload fans out cfg.Workers producer goroutines, each hammering
// its own scoped Sink at its own rate limit until ctx is cancelled. A
// shared resource.Limiter bounds how many simulated in-flight operations
// run at once, independent of the worker goroutine count.
func runWorkload(ctx context.Context, cfg BenchConfig, root *sink.Sink[string], monitor *resource.Monitor, log *logging.Logger) error {
	limiter := resource.NewLimiter("in-flight-ops", cfg.MaxConcurrency)
	monitor.Track(limiter)

	pool := parallel.NewPool(cfg.Workers)
	workerIDs := make([]int, cfg.Workers)
	for i := range workerIDs {
		workerIDs[i] = i
	}

	return parallel.Do(ctx, pool, workerIDs, func(ctx context.Context, id int) error {
		return runWorker(ctx, id, cfg, root, limiter, log)
	})
}

func runWorker(ctx context.Context, id int, cfg BenchConfig, root *sink.Sink[string], limiter *resource.Limiter, log *logging.Logger) error {
	child, err := root.Scoped(fmt.Sprintf("worker-%d", id))
	if err != nil {
		return err
	}

	limit := rate.Limit(cfg.RatePerWorker)
	burst := cfg.RatePerWorker / 10
	if burst < 1 {
		burst = 1
	}
	pacer := rate.NewLimiter(limit, int(burst))

	var n int
	for {
		if err := pacer.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		child.Increment("ops")

		if err := limiter.Acquire(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		start := child.Clock().Start()
		end := child.Clock().End()
		limiter.Release()

		child.UpdateTiming("latency", start, end)
		child.UpdateValue("payload_bytes", payloadSizes[n%len(payloadSizes)])
		n++
	}
}

// runReporter polls the controller on a fixed interval and prints each
// snapshot, retrying transient failures under the default backoff policy
// and giving up once the receiver reports it has shut down.
func runReporter(ctx context.Context, cfg BenchConfig, ctrl *control.Controller, w *output.Writer, monitor *resource.Monitor, log *logging.Logger) {
	ticker := time.NewTicker(cfg.reportInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var snap snapshot.Snapshot
			err := retry.DoAuto(ctx, retry.DefaultPolicy, func(ctx context.Context) error {
				s, err := ctrl.GetSnapshot(ctx)
				if err != nil {
					return err
				}
				snap = s
				return nil
			})
			if err != nil {
				log.Warn(ctx, "snapshot poll failed", "error", err)
				continue
			}
			printSnapshot(w, snap, monitor)
		}
	}
}

func printSnapshot(w *output.Writer, snap snapshot.Snapshot, monitor *resource.Monitor) {
	if w.Format == "json" {
		_ = w.JSON(struct {
			Measurements []snapshot.Measurement            `json:"measurements"`
			Resources    map[string]resource.ResourceStatus `json:"resources"`
		}{Measurements: snap.Measurements, Resources: monitor.Status()})
		return
	}

	headers := []string{"name", "kind", "value"}
	rows := make([][]string, 0, len(snap.Measurements))
	for _, m := range snap.Measurements {
		switch m.Kind {
		case snapshot.KindCounter:
			rows = append(rows, []string{m.Name, "counter", fmt.Sprintf("%d", m.Counter)})
		case snapshot.KindGauge:
			rows = append(rows, []string{m.Name, "gauge", fmt.Sprintf("%d", m.Gauge)})
		case snapshot.KindTimingHistogram, snapshot.KindValueHistogram:
			label := percentile.From(99).Label()
			v, _ := m.Summary.At(label)
			rows = append(rows, []string{m.Name, "histogram", fmt.Sprintf("count=%d %s=%d", m.Summary.Count, label, v)})
		}
	}
	w.Table(headers, rows)

	status := resource.TakeSnapshot()
	w.Table([]string{"resource", "value"}, [][]string{
		{"heap_bytes", fmt.Sprintf("%d", status.HeapBytes)},
		{"goroutines", fmt.Sprintf("%d", status.Goroutines)},
	})
}
