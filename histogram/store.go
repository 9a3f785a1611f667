package histogram

import (
	hdrhistogram "github.com/codahale/hdrhistogram"

	"github.com/greynewell/mist-metrics/sample"
	"github.com/greynewell/mist-metrics/store"
)

// Store maps scoped keys to a lazily-created WindowedHistogram. A
// WindowedHistogram entry persists for as long as its key has ever been
// observed; there is no deregistration.
type Store[K sample.Key] struct {
	windowNS      int64
	granularityNS int64
	values        *store.Map[K, *WindowedHistogram]
}

// NewStore creates an empty histogram store with the given window and
// granularity, both in nanoseconds.
func NewStore[K sample.Key](windowNS, granularityNS int64) *Store[K] {
	return &Store[K]{
		windowNS:      windowNS,
		granularityNS: granularityNS,
		values:        store.New[K, *WindowedHistogram](),
	}
}

// Update records v for key at time now (nanoseconds), creating a fresh
// WindowedHistogram if key has never been observed.
func (s *Store[K]) Update(key sample.ScopedKey[K], v uint64, now int64) {
	wh := s.values.GetOrInsert(key, func() *WindowedHistogram {
		return newWindowed(s.windowNS, s.granularityNS, now)
	})
	wh.record(v)
}

// Upkeep advances every stored WindowedHistogram's writer bucket for
// however many granularity intervals have elapsed since it was last
// called for that key.
func (s *Store[K]) Upkeep(now int64) {
	s.values.Range(func(_ sample.ScopedKey[K], wh *WindowedHistogram) {
		wh.upkeep(now)
	})
}

// Range calls fn with the merged, full-window histogram for every key
// that has ever been observed.
func (s *Store[K]) Range(fn func(sample.ScopedKey[K], *hdrhistogram.Histogram)) {
	s.values.Range(func(k sample.ScopedKey[K], wh *WindowedHistogram) {
		fn(k, wh.snapshot())
	})
}
