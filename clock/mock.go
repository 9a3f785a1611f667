package clock

import "sync/atomic"

// Mock is a test double that reports an explicitly controlled time instead
// of reading the platform clock. All three of Now/Start/End return the
// same offset; advance it with Advance between assertions.
type Mock struct {
	offset *atomic.Uint64
}

// NewMock creates a Mock starting at the given offset, in nanoseconds.
func NewMock(startNanos uint64) *Mock {
	m := &Mock{offset: new(atomic.Uint64)}
	m.offset.Store(startNanos)
	return m
}

// Advance moves the mock clock forward by the given number of nanoseconds.
func (m *Mock) Advance(nanos uint64) {
	m.offset.Add(nanos)
}

// Now returns the current mock offset.
func (m *Mock) Now() uint64 { return m.offset.Load() }

// Start returns the current mock offset.
func (m *Mock) Start() uint64 { return m.offset.Load() }

// End returns the current mock offset.
func (m *Mock) End() uint64 { return m.offset.Load() }

// Delta returns the difference between two mock readings directly, since
// the mock clock never scales (hzRatio is implicitly 1).
func (m *Mock) Delta(start, end uint64) uint64 { return end - start }
