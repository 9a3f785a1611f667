package main

import (
	"time"

	"github.com/greynewell/mist-metrics/config"
	"github.com/greynewell/mist-metrics/errors"
)

// BenchConfig tunes a benchmic run. Every field has a default; a TOML
// file loaded via --config overrides defaults, and explicit flags
// override the file in turn.
type BenchConfig struct {
	Workers               int     `toml:"workers"`
	RatePerWorker         float64 `toml:"rate_per_worker"`
	DurationSeconds       int     `toml:"duration_seconds"`
	ReportIntervalSeconds int     `toml:"report_interval_seconds"`
	Capacity              int     `toml:"capacity"`
	MaxConcurrency        int     `toml:"max_concurrency"`
	Format                string  `toml:"format"`
}

// DefaultBenchConfig returns the out-of-the-box tuning.
func DefaultBenchConfig() BenchConfig {
	return BenchConfig{
		Workers:               8,
		RatePerWorker:         1000,
		DurationSeconds:       10,
		ReportIntervalSeconds: 2,
		Capacity:              4096,
		MaxConcurrency:        32,
		Format:                "table",
	}
}

// loadBenchConfig applies a TOML file (if path is non-empty) on top of
// the defaults.
func loadBenchConfig(path string) (BenchConfig, error) {
	cfg := DefaultBenchConfig()
	if path == "" {
		return cfg, nil
	}
	if err := config.Load(path, "BENCHMIC", &cfg); err != nil {
		return cfg, errors.Wrap(errors.CodeValidation, err, "loading benchmic config")
	}
	return cfg, nil
}

func (c BenchConfig) duration() time.Duration {
	return time.Duration(c.DurationSeconds) * time.Second
}

func (c BenchConfig) reportInterval() time.Duration {
	return time.Duration(c.ReportIntervalSeconds) * time.Second
}
