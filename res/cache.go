// Copyright (c) 2020 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package res

import "sync"

// NewCache creates an empty cache for one resource kind.
func NewCache[T any]() *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]weakRef[T]),
	}
}

// Cache maps asset paths to weakly held decoded data for a single
// resource kind. It remembers where a live copy of an asset can be
// found without extending the asset's lifetime. Caches for different
// kinds are independent namespaces with independent locks, so the
// same path string can appear in several of them.
//
// All methods are safe for concurrent use.
type Cache[T any] struct {
	mu      sync.Mutex
	entries map[string]weakRef[T]
}

// TryGet resolves the entry for key to a strong reference. It reports
// absence when no entry exists or when the entry's data has already
// been released. The read path never mutates the cache, removal of
// dead entries is left to Sweep so lookups stay cheap.
func (c *Cache[T]) TryGet(key string) (*Handle[T], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return entry.resolve()
}

// Publish inserts or replaces the entry for key with a weak view of
// the given strong reference. When two loads of the same key race,
// the last writer wins the slot.
func (c *Cache[T]) Publish(key string, h *Handle[T]) {
	c.mu.Lock()
	c.entries[key] = h.weak()
	c.mu.Unlock()
}

// Sweep removes every entry whose data no longer has a strong
// reference anywhere. Entries still backed by a live reference are
// never touched. Returns the number of entries removed.
func (c *Cache[T]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var removed int
	for key, entry := range c.entries {
		if entry.expired() {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Clear drops every entry, including ones still backed by live
// references. Holders keep valid data, it just stops being
// discoverable by path. Only shutdown should need this.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]weakRef[T])
	c.mu.Unlock()
}

// Len returns the current number of entries, live or stale.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
