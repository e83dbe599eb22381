package usecase

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ViewRateLimiter throttles view recording per client IP before the counter
// store is touched. It is an explicitly-constructed component with its own
// state and a reset/teardown contract; nothing here is package-global.
type ViewRateLimiter struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry

	rps     rate.Limit
	burst   int
	idleTTL time.Duration
}

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// NewViewRateLimiter creates a limiter allowing perSecond views with the
// given burst per client IP.
func NewViewRateLimiter(perSecond float64, burst int) *ViewRateLimiter {
	return &ViewRateLimiter{
		entries: make(map[string]*limiterEntry),
		rps:     rate.Limit(perSecond),
		burst:   burst,
		idleTTL: 15 * time.Minute,
	}
}

// Allow reports whether a view from this IP may proceed right now.
func (l *ViewRateLimiter) Allow(clientIP string) bool {
	now := time.Now()

	l.mu.Lock()
	ent, ok := l.entries[clientIP]
	if !ok {
		ent = &limiterEntry{lim: rate.NewLimiter(l.rps, l.burst)}
		l.entries[clientIP] = ent
	}
	ent.lastSeen = now
	l.mu.Unlock()

	return ent.lim.Allow()
}

// Reset drops all per-IP state.
func (l *ViewRateLimiter) Reset() {
	l.mu.Lock()
	l.entries = make(map[string]*limiterEntry)
	l.mu.Unlock()
}

// StartJanitor evicts idle IPs periodically until ctx is cancelled.
func (l *ViewRateLimiter) StartJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = 2 * time.Minute
	}
	t := time.NewTicker(every)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				l.cleanup()
			}
		}
	}()
}

func (l *ViewRateLimiter) cleanup() {
	cutoff := time.Now().Add(-l.idleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()

	for ip, ent := range l.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(l.entries, ip)
		}
	}
}
