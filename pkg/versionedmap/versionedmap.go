// Package versionedmap provides a read/write-locked map with stacked speculative write layers.
//
// Version 0 is the committed base. PushVersion opens a new layer; writes made while a layer is open
// are only visible through the map until ApplyVersion merges the top layer into the one below it or
// PopVersion discards it. Removing a key inside a layer records a tombstone that shadows older layers.
package versionedmap

import (
	"errors"
	"sync"
)

// ErrNoVersion is returned when applying or popping without an open version.
var ErrNoVersion = errors.New("no open version")

type entry[V any] struct {
	value   V
	removed bool
}

// Map is safe for concurrent use. Accessors take the read lock, mutators the write lock.
type Map[K comparable, V any] struct {
	mu        sync.RWMutex
	committed map[K]V
	staged    []map[K]entry[V]
}

// New returns an empty Map at version 0.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{committed: make(map[K]V)}
}

// NewWithCapacity returns an empty Map whose committed layer is sized for n keys.
func NewWithCapacity[K comparable, V any](n int) *Map[K, V] {
	return &Map[K, V]{committed: make(map[K]V, n)}
}

// Version returns the number of open layers.
func (m *Map[K, V]) Version() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.staged)
}

// PushVersion opens a new write layer and returns the new version number.
func (m *Map[K, V]) PushVersion() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.staged = append(m.staged, make(map[K]entry[V]))
	return len(m.staged)
}

// PopVersion discards the top layer without merging it.
func (m *Map[K, V]) PopVersion() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.staged) == 0 {
		return ErrNoVersion
	}
	m.staged[len(m.staged)-1] = nil
	m.staged = m.staged[:len(m.staged)-1]
	return nil
}

// ApplyVersion merges the top layer into the layer below it (the committed map at version 1)
// and closes it.
func (m *Map[K, V]) ApplyVersion() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.staged) == 0 {
		return ErrNoVersion
	}
	m.applyTopLocked()
	return nil
}

// ApplyAll collapses every open layer into the committed map.
func (m *Map[K, V]) ApplyAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for len(m.staged) > 0 {
		m.applyTopLocked()
	}
}

func (m *Map[K, V]) applyTopLocked() {
	top := m.staged[len(m.staged)-1]
	m.staged = m.staged[:len(m.staged)-1]

	if len(m.staged) == 0 {
		for k, e := range top {
			if e.removed {
				delete(m.committed, k)
				continue
			}
			m.committed[k] = e.value
		}
		return
	}

	below := m.staged[len(m.staged)-1]
	for k, e := range top {
		below[k] = e
	}
}

// Put writes into the top layer, or the committed map when no layer is open.
func (m *Map[K, V]) Put(key K, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.staged) == 0 {
		m.committed[key] = value
		return
	}
	m.staged[len(m.staged)-1][key] = entry[V]{value: value}
}

// Remove deletes key from the committed map, or tombstones it in the top layer.
func (m *Map[K, V]) Remove(key K) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.staged) == 0 {
		delete(m.committed, key)
		return
	}
	m.staged[len(m.staged)-1][key] = entry[V]{removed: true}
}

// Get resolves key at the current version.
func (m *Map[K, V]) Get(key K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getLocked(key, len(m.staged))
}

// GetAt resolves key as seen from version. Versions above the current one are clamped.
func (m *Map[K, V]) GetAt(key K, version int) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if version > len(m.staged) {
		version = len(m.staged)
	}
	return m.getLocked(key, version)
}

func (m *Map[K, V]) getLocked(key K, version int) (V, bool) {
	for i := version; i > 0; i-- {
		if e, ok := m.staged[i-1][key]; ok {
			if e.removed {
				var zero V
				return zero, false
			}
			return e.value, true
		}
	}
	v, ok := m.committed[key]
	return v, ok
}

// ContainsKey reports whether key resolves to a value at the current version.
func (m *Map[K, V]) ContainsKey(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Count returns the number of keys visible at the current version.
func (m *Map[K, V]) Count() int {
	n := 0
	m.Visit(func(K, V) bool {
		n++
		return true
	})
	return n
}

// Keys returns the keys visible at the current version in no particular order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0)
	m.Visit(func(k K, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// Values returns the values visible at the current version in no particular order.
func (m *Map[K, V]) Values() []V {
	values := make([]V, 0)
	m.Visit(func(_ K, v V) bool {
		values = append(values, v)
		return true
	})
	return values
}

// StagedKeys returns the keys written or removed in the top layer.
func (m *Map[K, V]) StagedKeys() []K {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.staged) == 0 {
		return nil
	}
	top := m.staged[len(m.staged)-1]
	keys := make([]K, 0, len(top))
	for k := range top {
		keys = append(keys, k)
	}
	return keys
}

// Visit calls fn once for every key visible at the current version, newest layer first.
// Returning false stops the walk. fn must not call back into the map.
func (m *Map[K, V]) Visit(fn func(K, V) bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.visitLocked(len(m.staged), fn)
}

// VisitAt is Visit as seen from version. Versions above the current one are clamped.
func (m *Map[K, V]) VisitAt(version int, fn func(K, V) bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if version > len(m.staged) {
		version = len(m.staged)
	}
	m.visitLocked(version, fn)
}

func (m *Map[K, V]) visitLocked(version int, fn func(K, V) bool) {
	seen := make(map[K]struct{})
	for i := version; i > 0; i-- {
		for k, e := range m.staged[i-1] {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			if e.removed {
				continue
			}
			if !fn(k, e.value) {
				return
			}
		}
	}
	for k, v := range m.committed {
		if _, ok := seen[k]; ok {
			continue
		}
		if !fn(k, v) {
			return
		}
	}
}

// Clear drops every layer and the committed values.
func (m *Map[K, V]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.committed = make(map[K]V)
	m.staged = nil
}
