package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterNeverOverwrites(t *testing.T) {
	r := New[int]()

	assert.True(t, r.Register("_http._tcp", 1))
	assert.False(t, r.Register("_http._tcp", 2))

	v, ok := r.Lookup("_http._tcp")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, r.Len())
}

func TestLookupMissing(t *testing.T) {
	r := New[string]()

	v, ok := r.Lookup("_ipp._tcp")
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestRemove(t *testing.T) {
	r := New[int]()
	r.Register("a", 1)
	r.Register("b", 2)
	r.Register("c", 3)

	r.Remove("b")
	r.Remove("missing")

	_, ok := r.Lookup("b")
	assert.False(t, ok)
	assert.Equal(t, []string{"a", "c"}, r.Keys())

	// Key is free again after removal.
	assert.True(t, r.Register("b", 4))
	assert.Equal(t, []string{"a", "c", "b"}, r.Keys())
}

func TestDrain(t *testing.T) {
	r := New[int]()
	r.Register("a", 1)
	r.Register("b", 2)
	r.Register("c", 3)

	var seen []string
	calls := map[string]int{}
	r.Drain(func(key string, v int) {
		// The entry is already gone when teardown runs.
		_, ok := r.Lookup(key)
		assert.False(t, ok)
		seen = append(seen, key)
		calls[key]++
	})

	assert.Equal(t, []string{"a", "b", "c"}, seen)
	assert.Equal(t, map[string]int{"a": 1, "b": 1, "c": 1}, calls)
	assert.Zero(t, r.Len())

	// Idempotent.
	r.Drain(func(string, int) { t.Fatal("teardown called on empty registry") })
	assert.Zero(t, r.Len())
}

func TestDrainEmpty(t *testing.T) {
	r := New[int]()
	r.Drain(nil)
	assert.Zero(t, r.Len())
	assert.Empty(t, r.Keys())
}

func TestDrainTeardownRemovesOthers(t *testing.T) {
	r := New[int]()
	r.Register("a", 1)
	r.Register("b", 2)

	var seen []string
	r.Drain(func(key string, _ int) {
		seen = append(seen, key)
		r.Remove("b")
	})

	assert.Equal(t, []string{"a"}, seen)
	assert.Zero(t, r.Len())
}
