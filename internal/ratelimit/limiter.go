package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a sliding-window request counter, exact per client key.
// On each check it prunes timestamps older than the window for that
// key, denies when the remaining count has reached the limit, and
// records the attempt otherwise.
//
// Known limitation: keys are never evicted, so memory grows with the
// number of distinct clients for the process lifetime. State is
// ephemeral and resets on restart.
type Limiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	clients map[string][]time.Time

	// now is swappable for tests.
	now func() time.Time
}

// New creates a limiter allowing limit attempts per key within window.
func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:   limit,
		window:  window,
		clients: make(map[string][]time.Time),
		now:     time.Now,
	}
}

// Allow reports whether key may proceed, recording the attempt if so.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := l.clients[key][:0]
	for _, ts := range l.clients[key] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= l.limit {
		l.clients[key] = recent
		return false
	}

	l.clients[key] = append(recent, now)
	return true
}

// Window returns the window length, used as the retry hint for denied
// requests.
func (l *Limiter) Window() time.Duration {
	return l.window
}
