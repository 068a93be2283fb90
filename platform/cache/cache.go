// Package cache provides a small bounded TTL cache for lookup results.
// This is part of the platform layer and contains no business logic.
//
// Instances are constructed explicitly and injected; nothing in this package
// is process-global. Entries are best-effort optimizations only and must
// never be correctness-bearing.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// TTL is a fixed-capacity cache with per-entry expiry. When full, the least
// recently used entry is evicted first.
type TTL[V any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	order   *list.List
	entries map[string]*list.Element

	// now is swappable for tests.
	now func() time.Time
}

type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
}

// NewTTL creates a cache holding at most maxSize entries for at most ttl each.
func NewTTL[V any](maxSize int, ttl time.Duration) *TTL[V] {
	if maxSize < 1 {
		maxSize = 1
	}
	return &TTL[V]{
		maxSize: maxSize,
		ttl:     ttl,
		order:   list.New(),
		entries: make(map[string]*list.Element),
		now:     time.Now,
	}
}

// Get returns the cached value for key if present and unexpired.
func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	elem, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	ent := elem.Value.(*entry[V])
	if c.now().After(ent.expiresAt) {
		c.order.Remove(elem)
		delete(c.entries, key)
		return zero, false
	}
	c.order.MoveToFront(elem)
	return ent.value, true
}

// Set stores value under key, evicting the least recently used entry when the
// cache is at capacity.
func (c *TTL[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)
	if elem, ok := c.entries[key]; ok {
		ent := elem.Value.(*entry[V])
		ent.value = value
		ent.expiresAt = expiresAt
		c.order.MoveToFront(elem)
		return
	}

	if c.order.Len() >= c.maxSize {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*entry[V]).key)
		}
	}

	c.entries[key] = c.order.PushFront(&entry[V]{key: key, value: value, expiresAt: expiresAt})
}

// Len returns the number of stored entries, expired or not.
func (c *TTL[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
