// Package cache provides a small in-process TTL cache used in front of
// repository lookups.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value      V
	insertedAt time.Time
}

// TTLCache is a bounded read-through cache. Entries expire a fixed TTL
// after insertion (no sliding expiration) and the cache evicts in
// least-recently-inserted order once full. Safe for concurrent use;
// all state sits behind one mutex and no operation blocks beyond the
// lock hold time.
type TTLCache[K comparable, V any] struct {
	mu         sync.Mutex
	entries    map[K]entry[V]
	order      []K // insertion order, oldest first
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
}

// New creates a cache holding at most maxEntries values for ttl each.
func New[K comparable, V any](maxEntries int, ttl time.Duration) *TTLCache[K, V] {
	return &TTLCache[K, V]{
		entries:    make(map[K]entry[V]),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Get returns the cached value for key, if present and unexpired.
// Expired entries are dropped on access.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().Sub(e.insertedAt) > c.ttl {
		delete(c.entries, key)
		c.dropFromOrder(key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, restarting its TTL. When the cache is at
// capacity the oldest-inserted entry is evicted first.
func (c *TTLCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		// Re-insert: TTL restarts, so insertion order moves to the back.
		c.dropFromOrder(key)
	} else if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = entry[V]{value: value, insertedAt: c.now()}
	c.order = append(c.order, key)
}

// Remove drops key from the cache if present.
func (c *TTLCache[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		c.dropFromOrder(key)
	}
}

// Clear empties the cache.
func (c *TTLCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]entry[V])
	c.order = c.order[:0]
}

// Len returns the number of entries currently held, expired or not.
func (c *TTLCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *TTLCache[K, V]) dropFromOrder(key K) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
