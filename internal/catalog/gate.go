// Package catalog serves the movie to people table from memory and decides
// when it must be rebuilt from upstream.
package catalog

import (
	"sync"
	"time"
)

// DefaultRefreshInterval is how long a refresh stays fresh.
const DefaultRefreshInterval = 60 * time.Second

// Gate tracks when the last refresh was attempted. The zero time means
// never, so the first check is always due.
type Gate struct {
	mu       sync.Mutex
	last     time.Time
	interval time.Duration
}

// NewGate creates a gate that expires interval after each attempt.
func NewGate(interval time.Duration) *Gate {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Gate{interval: interval}
}

// Due reports whether at least the interval has passed since the last attempt.
func (g *Gate) Due(now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return now.Sub(g.last) >= g.interval
}

// MarkAttempted records an attempt starting at now, whether or not it
// later succeeds.
func (g *Gate) MarkAttempted(now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.last = now
}

// LastAttempt returns the start time of the last attempt.
func (g *Gate) LastAttempt() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last
}

// Interval returns the configured interval.
func (g *Gate) Interval() time.Duration {
	return g.interval
}
