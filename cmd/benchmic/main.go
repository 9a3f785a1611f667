// benchmic drives a configurable load against an in-process receiver and
// reports live snapshots, exercising the mist-metrics aggregation path
// the way a real Sink-holding service would.
//
// Usage:
//
//	benchmic run                    Run with default tuning
//	benchmic run --config bench.toml --workers 32 --rate 5000
package main

import (
	"context"
	"os"

	"github.com/greynewell/mist-metrics/cli"
	"github.com/greynewell/mist-metrics/errors"
	"github.com/greynewell/mist-metrics/lifecycle"
	"github.com/greynewell/mist-metrics/logging"
	"github.com/greynewell/mist-metrics/output"
	"github.com/greynewell/mist-metrics/receiver"
	"github.com/greynewell/mist-metrics/resource"
)

var version = "dev"

const unsetInt = -1
const unsetFloat = -1.0

func main() {
	app := cli.NewApp("benchmic", version)

	cmd := &cli.Command{
		Name:  "run",
		Usage: "Run a benchmark workload against an in-process receiver",
		Run:   cmdRun,
	}
	cmd.AddStringFlag("config", "", "Path to a TOML config file")
	cmd.AddIntFlag("workers", unsetInt, "Number of concurrent producer goroutines")
	cmd.AddFloat64Flag("rate", unsetFloat, "Samples per second, per worker")
	cmd.AddIntFlag("duration", unsetInt, "Run duration in seconds")
	cmd.AddIntFlag("report-interval", unsetInt, "Snapshot report interval in seconds")
	cmd.AddIntFlag("capacity", unsetInt, "Receiver channel capacity")
	cmd.AddIntFlag("max-concurrency", unsetInt, "Bound on simulated in-flight operations")
	cmd.AddStringFlag("format", "", "Output format: table or json")
	app.AddCommand(cmd)

	if err := app.Execute(os.Args[1:]); err != nil {
		if code := errors.Code(err); code != "" {
			os.Exit(errors.ExitCode(code))
		}
		os.Exit(1)
	}
}

func cmdRun(cmd *cli.Command, _ []string) error {
	cfg, err := loadBenchConfig(cmd.GetString("config"))
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, &cfg)

	if cfg.Workers < 1 {
		return errors.New(errors.CodeValidation, "workers must be at least 1")
	}
	if cfg.RatePerWorker <= 0 {
		return errors.New(errors.CodeValidation, "rate must be positive")
	}

	log := logging.New("benchmic", logging.LevelInfo)
	w := output.New(cfg.Format)

	return lifecycle.Run(func(ctx context.Context) error {
		if cfg.DurationSeconds > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.duration())
			defer cancel()
		}

		r := receiver.NewConfiguration[string]().
			WithCapacity(cfg.Capacity).
			WithLogger(log).
			Build()

		dg := lifecycle.DrainGroup(ctx)
		dg.Add(1)
		go func() {
			defer dg.Done()
			if err := r.Run(ctx); err != nil {
				log.Error(ctx, "receiver exited with error", "error", err)
			}
		}()

		root := r.GetSink()
		ctrl := r.GetController()

		monitor := resource.NewMonitor()

		dg.Add(1)
		go func() {
			defer dg.Done()
			runReporter(ctx, cfg, ctrl, w, monitor, log)
		}()

		log.Info(ctx, "benchmark starting",
			"workers", cfg.Workers,
			"rate_per_worker", cfg.RatePerWorker,
			"duration_seconds", cfg.DurationSeconds,
			"capacity", cfg.Capacity,
		)

		err := runWorkload(ctx, cfg, root, monitor, log)
		if err != nil && ctx.Err() == nil {
			return err
		}

		final, snapErr := ctrl.GetSnapshot(context.Background())
		if snapErr == nil {
			printSnapshot(w, final, monitor)
		}
		log.Info(ctx, "benchmark finished")
		return nil
	})
}

// applyFlagOverrides overwrites cfg fields with explicitly-set command
// line flags. Flags left at their unset sentinel fall through to
// whatever loadBenchConfig already produced (defaults, or a config file).
func applyFlagOverrides(cmd *cli.Command, cfg *BenchConfig) {
	if v := cmd.GetInt("workers"); v != unsetInt {
		cfg.Workers = v
	}
	if v := cmd.GetFloat64("rate"); v != unsetFloat {
		cfg.RatePerWorker = v
	}
	if v := cmd.GetInt("duration"); v != unsetInt {
		cfg.DurationSeconds = v
	}
	if v := cmd.GetInt("report-interval"); v != unsetInt {
		cfg.ReportIntervalSeconds = v
	}
	if v := cmd.GetInt("capacity"); v != unsetInt {
		cfg.Capacity = v
	}
	if v := cmd.GetInt("max-concurrency"); v != unsetInt {
		cfg.MaxConcurrency = v
	}
	if v := cmd.GetString("format"); v != "" {
		cfg.Format = v
	}
}
