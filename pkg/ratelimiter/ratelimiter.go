// Package ratelimiter throttles requests per caller with a sliding window.
package ratelimiter

import (
	"sync"
	"time"
)

// Policy allows Limit requests per Window.
type Policy struct {
	Limit  int
	Window time.Duration
}

type bucketKey struct {
	namespace string
	key       string
}

// Limiter keeps the recent request times of every namespace and key pair in
// memory. Each namespace (an endpoint family) has its own policy; requests
// in a namespace without one are denied.
//
//	l := ratelimiter.New(time.Minute)
//	defer l.Stop()
//	l.SetPolicy("render", ratelimiter.Policy{Limit: 60, Window: time.Minute})
//	ok, retryAfter := l.Allow("render", userID)
type Limiter struct {
	mu       sync.Mutex
	hits     map[bucketKey][]time.Time
	policies map[string]Policy
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// New starts a limiter whose idle buckets are swept every sweepInterval.
func New(sweepInterval time.Duration) *Limiter {
	l := &Limiter{
		hits:     make(map[bucketKey][]time.Time),
		policies: make(map[string]Policy),
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go l.sweepLoop(sweepInterval)
	return l
}

func (l *Limiter) SetPolicy(namespace string, policy Policy) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.policies[namespace] = policy
}

// Allow records a request and reports whether it fits the namespace policy.
// A denied request is not recorded; retryAfter is then the time until the
// oldest recorded request leaves the window.
func (l *Limiter) Allow(namespace, key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	policy, ok := l.policies[namespace]
	if !ok || policy.Limit <= 0 {
		return false, 0
	}

	now := l.now()
	k := bucketKey{namespace: namespace, key: key}
	recent := pruned(l.hits[k], now.Add(-policy.Window))

	if len(recent) >= policy.Limit {
		l.hits[k] = recent
		return false, recent[0].Add(policy.Window).Sub(now)
	}

	l.hits[k] = append(recent, now)
	return true, 0
}

// Reset forgets the requests recorded for key.
func (l *Limiter) Reset(namespace, key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.hits, bucketKey{namespace: namespace, key: key})
}

// Stop ends the sweeper. It may be called more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// pruned drops the times at or before cutoff. Times are kept in ascending
// order so the first one still inside the window ends the scan.
func pruned(times []time.Time, cutoff time.Time) []time.Time {
	for i, t := range times {
		if t.After(cutoff) {
			return times[i:]
		}
	}
	return times[:0]
}

func (l *Limiter) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.sweep()
		case <-l.stop:
			return
		}
	}
}

// sweep removes buckets with no request left in their window.
func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for k, times := range l.hits {
		policy, ok := l.policies[k.namespace]
		if !ok || len(pruned(times, now.Add(-policy.Window))) == 0 {
			delete(l.hits, k)
		}
	}
}
