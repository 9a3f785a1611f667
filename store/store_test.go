package store

import (
	"testing"

	"github.com/greynewell/mist-metrics/sample"
)

func key(name string) sample.ScopedKey[string] {
	return sample.ScopedKey[string]{ScopeID: 0, Name: name}
}

func TestGetOrInsert(t *testing.T) {
	m := New[string, int]()
	calls := 0
	create := func() int { calls++; return 7 }

	v := m.GetOrInsert(key("a"), create)
	if v != 7 || calls != 1 {
		t.Fatalf("first GetOrInsert: v=%d calls=%d, want 7 1", v, calls)
	}

	v = m.GetOrInsert(key("a"), create)
	if v != 7 || calls != 1 {
		t.Fatalf("second GetOrInsert should reuse existing entry: v=%d calls=%d", v, calls)
	}
}

func TestUpdateCreatesAtZero(t *testing.T) {
	m := New[string, int]()
	m.Update(key("a"), func(v int) int { return v + 5 })
	got, ok := m.Get(key("a"))
	if !ok || got != 5 {
		t.Fatalf("Get after Update = (%d, %v), want (5, true)", got, ok)
	}
}

func TestSetOverwrites(t *testing.T) {
	m := New[string, int]()
	m.Set(key("a"), 1)
	m.Set(key("a"), 2)
	got, _ := m.Get(key("a"))
	if got != 2 {
		t.Errorf("Set should overwrite: got %d, want 2", got)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestCollisionResolution(t *testing.T) {
	// Different scope ids with the same display name must not collide,
	// even if their hashes happen to land in the same bucket.
	m := New[string, int]()
	a := sample.ScopedKey[string]{ScopeID: 1, Name: "x"}
	b := sample.ScopedKey[string]{ScopeID: 2, Name: "x"}
	m.Set(a, 10)
	m.Set(b, 20)

	va, _ := m.Get(a)
	vb, _ := m.Get(b)
	if va != 10 || vb != 20 {
		t.Errorf("collision resolution failed: a=%d b=%d", va, vb)
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestRangeVisitsAll(t *testing.T) {
	m := New[string, int]()
	m.Set(key("a"), 1)
	m.Set(key("b"), 2)
	m.Set(key("c"), 3)

	seen := map[string]int{}
	m.Range(func(k sample.ScopedKey[string], v int) {
		seen[k.Name] = v
	})
	if len(seen) != 3 || seen["a"] != 1 || seen["b"] != 2 || seen["c"] != 3 {
		t.Errorf("Range did not visit all entries: %+v", seen)
	}
}
