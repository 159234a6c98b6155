package casemap

import (
	"sort"
	"strings"
	"sync"
)

type entry[V any] struct {
	key   string
	value V
}

// Map is a concurrency-safe map with case-insensitive string keys.
// The zero value is an empty map ready to use.
type Map[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
}

// New creates an empty map.
func New[V any]() *Map[V] {
	return &Map[V]{entries: make(map[string]entry[V])}
}

// FromMap creates a map holding all entries of src.
// When src has keys that differ only in case, the winner is unspecified.
func FromMap[V any](src map[string]V) *Map[V] {
	m := New[V]()
	for k, v := range src {
		m.Put(k, v)
	}
	return m
}

func fold(key string) string {
	return strings.ToLower(key)
}

// ensure allocates entries on first write. Callers hold the write lock.
func (m *Map[V]) ensure() {
	if m.entries == nil {
		m.entries = make(map[string]entry[V])
	}
}

// Put stores value under key, replacing any entry whose key differs only in case.
func (m *Map[V]) Put(key string, value V) {
	m.mu.Lock()
	m.ensure()
	m.entries[fold(key)] = entry[V]{key: key, value: value}
	m.mu.Unlock()
}

// PutIfAbsent stores value only when no entry exists for key.
// It reports whether the value was stored.
func (m *Map[V]) PutIfAbsent(key string, value V) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensure()
	k := fold(key)
	if _, ok := m.entries[k]; ok {
		return false
	}
	m.entries[k] = entry[V]{key: key, value: value}
	return true
}

// Get returns the value stored under key.
func (m *Map[V]) Get(key string) (V, bool) {
	m.mu.RLock()
	e, ok := m.entries[fold(key)]
	m.mu.RUnlock()
	return e.value, ok
}

// Key returns the stored casing of key.
func (m *Map[V]) Key(key string) (string, bool) {
	m.mu.RLock()
	e, ok := m.entries[fold(key)]
	m.mu.RUnlock()
	return e.key, ok
}

// Has reports whether key is present.
func (m *Map[V]) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Delete removes key and reports whether it was present.
func (m *Map[V]) Delete(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := fold(key)
	if _, ok := m.entries[k]; !ok {
		return false
	}
	delete(m.entries, k)
	return true
}

// Len returns the number of entries.
func (m *Map[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Keys returns the stored keys, sorted.
func (m *Map[V]) Keys() []string {
	m.mu.RLock()
	keys := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		keys = append(keys, e.key)
	}
	m.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// Range calls fn for each entry in key order until fn returns false.
// fn must not modify the map.
func (m *Map[V]) Range(fn func(key string, value V) bool) {
	for _, k := range m.Keys() {
		v, ok := m.Get(k)
		if !ok {
			continue
		}
		if !fn(k, v) {
			return
		}
	}
}

// Merge copies every entry of other into m.
func (m *Map[V]) Merge(other *Map[V]) {
	if other == nil || other == m {
		return
	}
	other.mu.RLock()
	snapshot := make([]entry[V], 0, len(other.entries))
	for _, e := range other.entries {
		snapshot = append(snapshot, e)
	}
	other.mu.RUnlock()

	m.mu.Lock()
	m.ensure()
	for _, e := range snapshot {
		m.entries[fold(e.key)] = e
	}
	m.mu.Unlock()
}

// ToMap returns a plain map keyed by the stored casing.
func (m *Map[V]) ToMap() map[string]V {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]V, len(m.entries))
	for _, e := range m.entries {
		out[e.key] = e.value
	}
	return out
}
