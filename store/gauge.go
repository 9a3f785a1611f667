package store

import "github.com/greynewell/mist-metrics/sample"

// Gauge maps scoped keys to a last-writer-wins unsigned value.
type Gauge[K sample.Key] struct {
	values *Map[K, uint64]
}

// NewGauge creates an empty gauge store.
func NewGauge[K sample.Key]() *Gauge[K] {
	return &Gauge[K]{values: New[K, uint64]()}
}

// Update sets the value for key, overwriting whatever was observed before.
func (g *Gauge[K]) Update(key sample.ScopedKey[K], value uint64) {
	g.values.Set(key, value)
}

// Value returns the most recently observed value for key, or zero if key
// has never been observed.
func (g *Gauge[K]) Value(key sample.ScopedKey[K]) uint64 {
	v, _ := g.values.Get(key)
	return v
}

// Range calls fn once for every key that has ever been observed.
func (g *Gauge[K]) Range(fn func(sample.ScopedKey[K], uint64)) {
	g.values.Range(fn)
}
