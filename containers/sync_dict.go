// File: containers/sync_dict.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package containers

import "sync"

// SyncDict is a mutex-guarded map for concurrent keyed access.
type SyncDict[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]V
}

// NewSyncDict allocates an empty synchronized dictionary.
func NewSyncDict[K comparable, V any]() *SyncDict[K, V] {
	return &SyncDict[K, V]{m: make(map[K]V)}
}

// Set stores v under k, replacing any previous value.
func (d *SyncDict[K, V]) Set(k K, v V) {
	d.mu.Lock()
	d.m[k] = v
	d.mu.Unlock()
}

// Get returns the value stored under k.
func (d *SyncDict[K, V]) Get(k K) (V, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.m[k]
	return v, ok
}

// GetOrSet returns the existing value for k, or stores and returns v.
// The second result reports whether the value was already present.
func (d *SyncDict[K, V]) GetOrSet(k K, v V) (V, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if old, ok := d.m[k]; ok {
		return old, true
	}
	d.m[k] = v
	return v, false
}

// Delete removes k. Returns false if k was not present.
func (d *SyncDict[K, V]) Delete(k K) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.m[k]; !ok {
		return false
	}
	delete(d.m, k)
	return true
}

// Len returns the number of stored entries.
func (d *SyncDict[K, V]) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.m)
}

// Keys returns a snapshot of the stored keys in unspecified order.
func (d *SyncDict[K, V]) Keys() []K {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]K, 0, len(d.m))
	for k := range d.m {
		out = append(out, k)
	}
	return out
}

// Range calls fn for every entry until fn returns false.
// The map is locked for the duration; fn must not call back into the dict.
func (d *SyncDict[K, V]) Range(fn func(k K, v V) bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for k, v := range d.m {
		if !fn(k, v) {
			return
		}
	}
}
