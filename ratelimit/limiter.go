// Package ratelimit counts requests per client identity inside a sliding
// window.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Result describes one admission decision.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	// ResetAfter is how long until the oldest counted request leaves the window.
	ResetAfter time.Duration
}

// Limiter decides whether identity may make another request.
type Limiter interface {
	Allow(ctx context.Context, identity string) (Result, error)
}

// MemoryLimiter keeps request timestamps per identity in process memory.
// Only admitted requests are recorded.
type MemoryLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	now     func() time.Time
	clients map[string][]time.Time
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	if limit <= 0 {
		limit = 20
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &MemoryLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		clients: make(map[string][]time.Time),
	}
}

// WithClock replaces the time source, for tests.
func (l *MemoryLimiter) WithClock(now func() time.Time) *MemoryLimiter {
	l.now = now
	return l
}

func (l *MemoryLimiter) Allow(_ context.Context, identity string) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	hits := trim(l.clients[identity], now.Add(-l.window))

	res := Result{Limit: l.limit}
	if len(hits) >= l.limit {
		l.clients[identity] = hits
		res.ResetAfter = hits[0].Add(l.window).Sub(now)
		return res, nil
	}

	hits = append(hits, now)
	l.clients[identity] = hits
	res.Allowed = true
	res.Remaining = l.limit - len(hits)
	res.ResetAfter = hits[0].Add(l.window).Sub(now)
	return res, nil
}

// Sweep drops identities with no requests left in the window.
func (l *MemoryLimiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	for id, hits := range l.clients {
		hits = trim(hits, cutoff)
		if len(hits) == 0 {
			delete(l.clients, id)
			continue
		}
		l.clients[id] = hits
	}
}

// Run sweeps every interval until ctx is done.
func (l *MemoryLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep()
		}
	}
}

func (l *MemoryLimiter) tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// trim drops timestamps at or before cutoff. hits is sorted ascending.
func trim(hits []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	if i == 0 {
		return hits
	}
	return append(hits[:0:0], hits[i:]...)
}
