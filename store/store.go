// Package store implements the hash maps the receiver uses to hold
// per-key state. It is the single consumer's private data: nothing here
// is safe for concurrent access, because nothing needs to be — the
// receiver is the only goroutine that ever touches a Map.
package store

import (
	"encoding/binary"
	"io"

	"github.com/cespare/xxhash/v2"

	"github.com/greynewell/mist-metrics/sample"
)

// entry holds a full key alongside its value so a bucket can detect and
// resolve hash collisions rather than trusting the hash alone.
type entry[K sample.Key, V any] struct {
	key   sample.ScopedKey[K]
	value V
}

// Map is a single-threaded hash map keyed by sample.ScopedKey, using
// xxhash (a fast non-cryptographic hasher) instead of Go's built-in map
// hash so that lookups are driven by one explicit, inspectable hash
// function shared by every store in this package.
type Map[K sample.Key, V any] struct {
	buckets map[uint64][]entry[K, V]
	count   int
}

// New creates an empty Map.
func New[K sample.Key, V any]() *Map[K, V] {
	return &Map[K, V]{buckets: make(map[uint64][]entry[K, V])}
}

func hashKey[K sample.Key](k sample.ScopedKey[K]) uint64 {
	d := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], k.ScopeID)
	_, _ = d.Write(buf[:])
	_, _ = io.WriteString(d, sample.Display(k.Name))
	return d.Sum64()
}

// Get returns the value stored for k, if any.
func (m *Map[K, V]) Get(k sample.ScopedKey[K]) (V, bool) {
	bucket := m.buckets[hashKey(k)]
	for _, e := range bucket {
		if e.key == k {
			return e.value, true
		}
	}
	var zero V
	return zero, false
}

// Set stores v for k, overwriting any existing value.
func (m *Map[K, V]) Set(k sample.ScopedKey[K], v V) {
	h := hashKey(k)
	bucket := m.buckets[h]
	for i, e := range bucket {
		if e.key == k {
			bucket[i].value = v
			return
		}
	}
	m.buckets[h] = append(bucket, entry[K, V]{key: k, value: v})
	m.count++
}

// GetOrInsert returns the existing value for k, or calls create, stores,
// and returns its result if k is not yet present.
func (m *Map[K, V]) GetOrInsert(k sample.ScopedKey[K], create func() V) V {
	h := hashKey(k)
	bucket := m.buckets[h]
	for _, e := range bucket {
		if e.key == k {
			return e.value
		}
	}
	v := create()
	m.buckets[h] = append(bucket, entry[K, V]{key: k, value: v})
	m.count++
	return v
}

// Update applies fn to the existing value for k (or the zero value, if
// absent) and stores the result.
func (m *Map[K, V]) Update(k sample.ScopedKey[K], fn func(V) V) {
	h := hashKey(k)
	bucket := m.buckets[h]
	for i, e := range bucket {
		if e.key == k {
			bucket[i].value = fn(e.value)
			return
		}
	}
	var zero V
	m.buckets[h] = append(bucket, entry[K, V]{key: k, value: fn(zero)})
	m.count++
}

// Range calls fn once for every stored entry, in unspecified order.
func (m *Map[K, V]) Range(fn func(sample.ScopedKey[K], V)) {
	for _, bucket := range m.buckets {
		for _, e := range bucket {
			fn(e.key, e.value)
		}
	}
}

// Len returns the number of stored entries.
func (m *Map[K, V]) Len() int { return m.count }
