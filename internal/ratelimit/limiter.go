package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a process-wide registry of per-client token buckets.
//
// Each client identifier (typically the remote address) gets a bucket of
// `capacity` tokens. The bucket is fully reset to capacity once per fixed
// window; tokens are not drip-fed proportionally to elapsed time.
//
// Buckets are created lazily on first use and live for the process
// lifetime; there is no eviction, so the map grows with the number of
// distinct clients seen.
type Limiter struct {
	capacity int
	window   time.Duration
	now      func() time.Time

	buckets sync.Map // client id -> *bucket
}

type bucket struct {
	mu          sync.Mutex
	remaining   int
	windowStart time.Time
}

// New creates a Limiter granting capacity requests per window per client.
func New(capacity int, window time.Duration) *Limiter {
	return &Limiter{
		capacity: capacity,
		window:   window,
		now:      time.Now,
	}
}

// Allow reports whether a request from clientID may proceed, consuming one
// token when it does. No token is consumed on rejection.
//
// Concurrent first requests from the same client resolve to a single bucket
// (sync.Map.LoadOrStore), and test-and-decrement runs under the bucket's
// mutex, so admissions for one client are linearizable while unrelated
// clients never contend on a shared lock.
func (l *Limiter) Allow(clientID string) bool {
	v, ok := l.buckets.Load(clientID)
	if !ok {
		v, _ = l.buckets.LoadOrStore(clientID, &bucket{
			remaining:   l.capacity,
			windowStart: l.now(),
		})
	}
	b := v.(*bucket)

	b.mu.Lock()
	defer b.mu.Unlock()

	if now := l.now(); now.Sub(b.windowStart) >= l.window {
		b.remaining = l.capacity
		b.windowStart = now
	}

	if b.remaining <= 0 {
		return false
	}
	b.remaining--
	return true
}
