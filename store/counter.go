package store

import "github.com/greynewell/mist-metrics/sample"

// Counter maps scoped keys to a signed accumulator. Updates accumulate
// additively with no negative clamp; no registration is required before
// the first update.
type Counter[K sample.Key] struct {
	values *Map[K, int64]
}

// NewCounter creates an empty counter store.
func NewCounter[K sample.Key]() *Counter[K] {
	return &Counter[K]{values: New[K, int64]()}
}

// Update adds delta to the accumulated value for key, creating it at zero
// first if this is the first observation.
func (c *Counter[K]) Update(key sample.ScopedKey[K], delta int64) {
	c.values.Update(key, func(v int64) int64 { return v + delta })
}

// Value returns the current accumulated value for key, or zero if key has
// never been observed.
func (c *Counter[K]) Value(key sample.ScopedKey[K]) int64 {
	v, _ := c.values.Get(key)
	return v
}

// Range calls fn once for every key that has ever been observed.
func (c *Counter[K]) Range(fn func(sample.ScopedKey[K], int64)) {
	c.values.Range(fn)
}
