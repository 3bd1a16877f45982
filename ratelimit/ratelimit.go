// Package ratelimit provides a fixed-window request counter keyed by
// caller identity. The limiter is injected where it is used so the
// in-memory implementation can be swapped for the Redis one without
// touching call sites.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter reports whether one more request from key is admitted inside
// the current window.
type Limiter interface {
	Allow(key string) bool
}

type windowCounter struct {
	count   int
	resetAt time.Time
}

// FixedWindow is a process-local limiter: a counter per key that resets
// when its window elapses.
type FixedWindow struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	counters map[string]*windowCounter
	now      func() time.Time
}

func NewFixedWindow(limit int, window time.Duration) *FixedWindow {
	return &FixedWindow{
		limit:    limit,
		window:   window,
		counters: make(map[string]*windowCounter),
		now:      time.Now,
	}
}

func (f *FixedWindow) Allow(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	counter, ok := f.counters[key]
	if !ok || now.After(counter.resetAt) {
		f.counters[key] = &windowCounter{count: 1, resetAt: now.Add(f.window)}
		return true
	}

	if counter.count >= f.limit {
		return false
	}
	counter.count++
	return true
}
