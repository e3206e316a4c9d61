package ratelimit

import (
	"sync"
	"time"
)

// Limiter defines the interface for rate limiting
type Limiter interface {
	// Allow checks if a request is allowed under the current rate limit
	Allow() bool
	// Reset resets the rate limiter state
	Reset()
}

// SlidingWindow implements a sliding window rate limiter. It is advisory:
// a denied call means the caller should skip the request, not queue it.
type SlidingWindow struct {
	windowSize  time.Duration
	maxRequests int
	requests    []time.Time
	now         func() time.Time
	mu          sync.Mutex
}

// NewSlidingWindow creates a new sliding window rate limiter
func NewSlidingWindow(maxRequests int, windowSize time.Duration) *SlidingWindow {
	return &SlidingWindow{
		windowSize:  windowSize,
		maxRequests: maxRequests,
		requests:    make([]time.Time, 0, maxRequests),
		now:         time.Now,
	}
}

// Allow checks if a request can proceed, recording it if so
func (sw *SlidingWindow) Allow() bool {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	now := sw.now()
	sw.cleanOldRequests(now)

	if len(sw.requests) < sw.maxRequests {
		sw.requests = append(sw.requests, now)
		return true
	}

	return false
}

// Remaining reports how many requests are left in the current window.
func (sw *SlidingWindow) Remaining() int {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	sw.cleanOldRequests(sw.now())
	return sw.maxRequests - len(sw.requests)
}

// Reset clears all recorded requests
func (sw *SlidingWindow) Reset() {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	sw.requests = sw.requests[:0]
}

// cleanOldRequests removes requests outside the sliding window
func (sw *SlidingWindow) cleanOldRequests(now time.Time) {
	cutoff := now.Add(-sw.windowSize)

	i := 0
	for i < len(sw.requests) && sw.requests[i].Before(cutoff) {
		i++
	}

	if i > 0 {
		copy(sw.requests, sw.requests[i:])
		sw.requests = sw.requests[:len(sw.requests)-i]
	}
}

// Gate tracks one sliding window per logical endpoint group. All groups
// share the same ceiling and window size.
type Gate struct {
	maxRequests int
	windowSize  time.Duration
	windows     map[string]*SlidingWindow
	mu          sync.Mutex
}

// NewGate creates a rate gate with the given per-group ceiling.
func NewGate(maxRequests int, windowSize time.Duration) *Gate {
	return &Gate{
		maxRequests: maxRequests,
		windowSize:  windowSize,
		windows:     make(map[string]*SlidingWindow),
	}
}

// Allow checks whether a request to the named endpoint group may proceed.
func (g *Gate) Allow(group string) bool {
	return g.window(group).Allow()
}

// Remaining reports the unused budget for the named endpoint group.
func (g *Gate) Remaining(group string) int {
	return g.window(group).Remaining()
}

// Reset clears every group's window.
func (g *Gate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, sw := range g.windows {
		sw.Reset()
	}
}

func (g *Gate) window(group string) *SlidingWindow {
	g.mu.Lock()
	defer g.mu.Unlock()

	sw, ok := g.windows[group]
	if !ok {
		sw = NewSlidingWindow(g.maxRequests, g.windowSize)
		g.windows[group] = sw
	}
	return sw
}
