// Package childmap implements the name→child associative container that
// arbortree treats as an external collaborator: insert, lookup, remove,
// size, iteration, and rendering the key set as a comma-joined string.
//
// Map is generic so arbortree can instantiate it over its node type without
// childmap importing arbortree (which owns the node type and its locking
// discipline). A Map is not itself synchronized: callers hold the owning
// node's writer lock for every mutation and at least its reader lock for
// Join.
package childmap

import (
	"sort"
	"strings"
)

// Map is a mapping from child name to child value.
type Map[V any] struct {
	data map[string]V
}

// New returns an empty Map.
func New[V any]() *Map[V] {
	return &Map[V]{data: make(map[string]V)}
}

// From wraps an existing native map, letting callers hand back a
// previously pooled map[string]V instead of allocating a fresh one.
func From[V any](data map[string]V) *Map[V] {
	if data == nil {
		data = make(map[string]V)
	}
	return &Map[V]{data: data}
}

// Insert overwrites-or-inserts key -> value.
func (m *Map[V]) Insert(key string, value V) {
	m.data[key] = value
}

// Get looks up key, reporting whether it was present.
func (m *Map[V]) Get(key string) (V, bool) {
	v, ok := m.data[key]
	return v, ok
}

// Remove deletes key, if present.
func (m *Map[V]) Remove(key string) {
	delete(m.data, key)
}

// Len reports the number of entries.
func (m *Map[V]) Len() int {
	return len(m.data)
}

// Each iterates every key/value pair in an unspecified order.
func (m *Map[V]) Each(f func(key string, value V)) {
	for k, v := range m.data {
		f(k, v)
	}
}

// Join renders the key set as a comma-joined string in ascending sorted
// order, empty string for an empty map, so that repeated calls against an
// unchanged map always agree.
func (m *Map[V]) Join() string {
	if len(m.data) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}

// Raw returns the underlying native map, so a caller (arbortree's node
// pool) can reclaim the allocation once the Map itself is discarded.
func (m *Map[V]) Raw() map[string]V {
	return m.data
}
