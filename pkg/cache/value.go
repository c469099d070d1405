package cache

import (
	"sync"
	"time"
)

// Value holds a single computed value for a fixed time window.
// A zero or negative TTL disables caching: every read recomputes.
type Value[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	val     V
	expires time.Time
	set     bool
}

// NewValue creates a single-value cache. A nil clock uses time.Now.
func NewValue[V any](ttl time.Duration, now func() time.Time) *Value[V] {
	if now == nil {
		now = time.Now
	}
	return &Value[V]{ttl: ttl, now: now}
}

// TTL returns the configured window.
func (c *Value[V]) TTL() time.Duration { return c.ttl }

// Get returns the cached value if it is still fresh.
func (c *Value[V]) Get() (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getLocked()
}

// Set stores v for one TTL window starting now.
func (c *Value[V]) Set(v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(v)
}

// GetOrCompute returns the fresh cached value or stores and returns fn().
// Concurrent callers wait for a single computation.
func (c *Value[V]) GetOrCompute(fn func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.getLocked(); ok {
		return v
	}
	v := fn()
	c.setLocked(v)
	return v
}

// Clear drops the cached value so the next read recomputes.
func (c *Value[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	c.val = zero
	c.set = false
	c.expires = time.Time{}
}

// Must be called with lock held.
func (c *Value[V]) getLocked() (V, bool) {
	if c.ttl <= 0 || !c.set || !c.now().Before(c.expires) {
		var zero V
		return zero, false
	}
	return c.val, true
}

// Must be called with lock held.
func (c *Value[V]) setLocked(v V) {
	if c.ttl <= 0 {
		return
	}
	c.val = v
	c.set = true
	c.expires = c.now().Add(c.ttl)
}
