package cache

import (
	"sync"
	"time"
)

// Cache is a keyed store with per-entry expiry. Implementations must be safe
// for concurrent use.
type Cache[V any] interface {
	// Get returns the value and true if the key is present and not expired.
	Get(key string) (V, bool)

	// Set stores a value for ttl, replacing any previous value.
	Set(key string, value V, ttl time.Duration)

	// Touch extends the expiry of a live entry. It reports whether the key
	// was present.
	Touch(key string, ttl time.Duration) bool

	Delete(key string)

	// Stop ends the background sweeper. It is safe to call more than once.
	Stop()
}

type cacheItem[V any] struct {
	value      V
	expiration time.Time
}

func (item *cacheItem[V]) isExpired(now time.Time) bool {
	return now.After(item.expiration)
}

// InMemoryCache keeps entries in a map guarded by a RWMutex and sweeps
// expired entries on a fixed interval.
type InMemoryCache[V any] struct {
	items           map[string]*cacheItem[V]
	mu              sync.RWMutex
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	stopOnce        sync.Once
	now             func() time.Time
}

// NewInMemoryCache starts the sweeper goroutine; call Stop to release it.
func NewInMemoryCache[V any](cleanupInterval time.Duration) *InMemoryCache[V] {
	c := &InMemoryCache[V]{
		items:           make(map[string]*cacheItem[V]),
		cleanupInterval: cleanupInterval,
		stopCleanup:     make(chan struct{}),
		now:             time.Now,
	}

	go c.startCleanup()

	return c
}

func (c *InMemoryCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var zero V
	item, found := c.items[key]
	if !found || item.isExpired(c.now()) {
		return zero, false
	}
	return item.value, true
}

func (c *InMemoryCache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = &cacheItem[V]{
		value:      value,
		expiration: c.now().Add(ttl),
	}
}

func (c *InMemoryCache[V]) Touch(key string, ttl time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	item, found := c.items[key]
	if !found || item.isExpired(now) {
		return false
	}
	item.expiration = now.Add(ttl)
	return true
}

func (c *InMemoryCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

func (c *InMemoryCache[V]) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCleanup)
	})
}

func (c *InMemoryCache[V]) startCleanup() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stopCleanup:
			return
		}
	}
}

func (c *InMemoryCache[V]) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, item := range c.items {
		if item.isExpired(now) {
			delete(c.items, key)
		}
	}
}
