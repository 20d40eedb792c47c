// Package ratelimit throttles kiosk requests per client.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter decides whether one more request for key is allowed right now.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// clientLimiter holds a token bucket and when it was last used.
type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// MemoryLimiter keeps one token bucket per key in process memory.
type MemoryLimiter struct {
	limit           rate.Limit
	burst           int
	cleanupInterval time.Duration

	mu       sync.Mutex
	limiters map[string]*clientLimiter

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewMemoryLimiter allows perMinute requests per key with the given burst.
// Idle buckets are dropped in the background; call Stop to end that loop.
func NewMemoryLimiter(perMinute, burst int, cleanupInterval time.Duration) *MemoryLimiter {
	if burst < 1 {
		burst = 1
	}
	if cleanupInterval <= 0 {
		cleanupInterval = 5 * time.Minute
	}
	l := &MemoryLimiter{
		limit:           rate.Limit(float64(perMinute) / 60.0),
		burst:           burst,
		cleanupInterval: cleanupInterval,
		limiters:        make(map[string]*clientLimiter),
		stopCh:          make(chan struct{}),
	}

	go l.cleanupLoop()

	return l
}

// Allow consumes a token for key if one is available.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	return l.get(key).Allow(), nil
}

// Len returns the number of tracked keys.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// Stop ends the cleanup goroutine.
func (l *MemoryLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}

func (l *MemoryLimiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if cl, ok := l.limiters[key]; ok {
		cl.lastAccess = time.Now()
		return cl.limiter
	}

	cl := &clientLimiter{
		limiter:    rate.NewLimiter(l.limit, l.burst),
		lastAccess: time.Now(),
	}
	l.limiters[key] = cl
	return cl.limiter
}

func (l *MemoryLimiter) cleanupLoop() {
	ticker := time.NewTicker(l.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup(time.Now())
		case <-l.stopCh:
			return
		}
	}
}

// cleanup drops buckets idle for more than two cleanup intervals.
func (l *MemoryLimiter) cleanup(now time.Time) {
	ttl := l.cleanupInterval * 2

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, cl := range l.limiters {
		if now.Sub(cl.lastAccess) > ttl {
			delete(l.limiters, key)
		}
	}
}
