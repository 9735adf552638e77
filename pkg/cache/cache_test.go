package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// entries counts stored items, including expired ones not yet swept.
func (c *InMemoryCache[V]) entries() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// fakeClock lets tests move time without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestCache[V any](t *testing.T) (*InMemoryCache[V], *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewInMemoryCache[V](time.Hour)
	c.now = clock.Now
	t.Cleanup(c.Stop)
	return c, clock
}

func TestInMemoryCache_SetGet(t *testing.T) {
	c, _ := newTestCache[[]byte](t)

	c.Set("session-1", []byte(`{"tree":[]}`), time.Minute)

	value, found := c.Get("session-1")
	assert.True(t, found)
	assert.Equal(t, `{"tree":[]}`, string(value))

	value, found = c.Get("missing")
	assert.False(t, found)
	assert.Nil(t, value)
}

func TestInMemoryCache_Expiration(t *testing.T) {
	c, clock := newTestCache[string](t)
	c.Set("k", "v", time.Minute)

	clock.Advance(59 * time.Second)
	_, found := c.Get("k")
	assert.True(t, found)

	clock.Advance(2 * time.Second)
	_, found = c.Get("k")
	assert.False(t, found)
	assert.Equal(t, 1, c.entries(), "expired entries stay until swept")

	c.cleanup()
	assert.Equal(t, 0, c.entries())
}

func TestInMemoryCache_Touch(t *testing.T) {
	c, clock := newTestCache[int](t)
	c.Set("k", 1, time.Minute)

	clock.Advance(50 * time.Second)
	assert.True(t, c.Touch("k", time.Minute))

	clock.Advance(50 * time.Second)
	value, found := c.Get("k")
	assert.True(t, found)
	assert.Equal(t, 1, value)

	clock.Advance(time.Minute)
	assert.False(t, c.Touch("k", time.Minute))
	assert.False(t, c.Touch("missing", time.Minute))
}

func TestInMemoryCache_Delete(t *testing.T) {
	c, _ := newTestCache[string](t)
	c.Set("a", "1", time.Minute)
	c.Set("b", "2", time.Minute)

	c.Delete("a")
	c.Delete("never-set")

	_, found := c.Get("a")
	assert.False(t, found)
	assert.Equal(t, 1, c.entries())
}

func TestInMemoryCache_SweeperRuns(t *testing.T) {
	c := NewInMemoryCache[string](5 * time.Millisecond)
	defer c.Stop()

	c.Set("short", "v", time.Millisecond)

	assert.Eventually(t, func() bool { return c.entries() == 0 }, time.Second, 5*time.Millisecond)
}

func TestInMemoryCache_StopIsIdempotent(t *testing.T) {
	c := NewInMemoryCache[string](time.Millisecond)

	assert.NotPanics(t, func() {
		c.Stop()
		c.Stop()
	})
}

func TestInMemoryCache_ConcurrentAccess(t *testing.T) {
	c, _ := newTestCache[int](t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", n%5)
			for j := 0; j < 100; j++ {
				c.Set(key, j, time.Minute)
				c.Get(key)
				c.Touch(key, time.Minute)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 5, c.entries())
}
