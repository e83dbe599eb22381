package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestViewRateLimiterAllowsWithinBurst(t *testing.T) {
	l := NewViewRateLimiter(0.001, 2)

	assert.True(t, l.Allow("203.0.113.1"))
	assert.True(t, l.Allow("203.0.113.1"))
	assert.False(t, l.Allow("203.0.113.1"), "burst exhausted")
}

func TestViewRateLimiterIsPerIP(t *testing.T) {
	l := NewViewRateLimiter(0.001, 1)

	assert.True(t, l.Allow("203.0.113.1"))
	assert.False(t, l.Allow("203.0.113.1"))
	assert.True(t, l.Allow("203.0.113.2"), "a second IP has its own bucket")
}

func TestViewRateLimiterReset(t *testing.T) {
	l := NewViewRateLimiter(0.001, 1)

	assert.True(t, l.Allow("203.0.113.1"))
	assert.False(t, l.Allow("203.0.113.1"))

	l.Reset()
	assert.True(t, l.Allow("203.0.113.1"))
}

func TestViewRateLimiterCleanupEvictsIdleIPs(t *testing.T) {
	l := NewViewRateLimiter(0.001, 1)
	l.Allow("203.0.113.1")

	l.mu.Lock()
	l.entries["203.0.113.1"].lastSeen = time.Now().Add(-time.Hour)
	l.mu.Unlock()

	l.cleanup()

	l.mu.Lock()
	_, ok := l.entries["203.0.113.1"]
	l.mu.Unlock()
	assert.False(t, ok)
}
