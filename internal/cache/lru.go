// Package cache provides caching utilities for the MCP server.
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultMaxItems is used when a non-positive size is configured.
const DefaultMaxItems = 64

// TTLCache is a thread-safe LRU cache whose entries expire after a fixed TTL.
// A zero TTL keeps entries until they are evicted by size.
type TTLCache[V any] struct {
	cache *expirable.LRU[string, V]
}

// New creates a cache holding at most maxItems entries for ttl each.
func New[V any](maxItems int, ttl time.Duration) *TTLCache[V] {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	return &TTLCache[V]{cache: expirable.NewLRU[string, V](maxItems, nil, ttl)}
}

// Get retrieves a value by key.
// Returns the value and true if found and not expired.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	return c.cache.Get(key)
}

// Put adds or updates a value and restarts its TTL.
func (c *TTLCache[V]) Put(key string, value V) {
	c.cache.Add(key, value)
}

// Remove drops a key.
func (c *TTLCache[V]) Remove(key string) {
	c.cache.Remove(key)
}

// Purge drops every entry.
func (c *TTLCache[V]) Purge() {
	c.cache.Purge()
}

// Len returns the current number of items in the cache.
func (c *TTLCache[V]) Len() int {
	return c.cache.Len()
}
