// Package registry provides the keyed store of in-flight discovery sessions.
//
// A Registry maps an operation key (a service type) to exactly one value.
// It holds no cleanup logic of its own: callers release a value's resources
// before or after removing it, and Drain hands every entry to a teardown
// function supplied by the caller.
//
// Registries are not safe for concurrent use. They are owned by a single
// event-loop goroutine.
package registry

// Registry maps keys to values, preserving insertion order.
type Registry[V any] struct {
	entries map[string]V
	order   []string
}

// New creates an empty registry.
func New[V any]() *Registry[V] {
	return &Registry[V]{entries: make(map[string]V)}
}

// Register inserts v under key if key is absent. It reports whether the
// value was inserted; an existing entry is never overwritten.
func (r *Registry[V]) Register(key string, v V) bool {
	if _, exists := r.entries[key]; exists {
		return false
	}
	r.entries[key] = v
	r.order = append(r.order, key)
	return true
}

// Lookup returns the value registered under key.
func (r *Registry[V]) Lookup(key string) (V, bool) {
	v, ok := r.entries[key]
	return v, ok
}

// Remove deletes the entry for key. It is a no-op if key is absent.
func (r *Registry[V]) Remove(key string) {
	if _, exists := r.entries[key]; !exists {
		return
	}
	delete(r.entries, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Drain removes every entry in insertion order, calling teardown for each
// after it has been removed. Entries registered by teardown itself are
// drained too. Draining an empty registry does nothing.
func (r *Registry[V]) Drain(teardown func(key string, v V)) {
	for len(r.order) > 0 {
		key := r.order[0]
		v := r.entries[key]
		r.Remove(key)
		if teardown != nil {
			teardown(key, v)
		}
	}
}

// Len returns the number of entries.
func (r *Registry[V]) Len() int {
	return len(r.order)
}

// Keys returns the registered keys in insertion order.
func (r *Registry[V]) Keys() []string {
	keys := make([]string, len(r.order))
	copy(keys, r.order)
	return keys
}
