package autostop

import (
	"sync"
	"time"
)

// Gate limits timer-driven sweeps to at most one per wall-clock
// minute, regardless of how often the owning tick fires.
type Gate struct {
	mu   sync.Mutex
	last time.Time
}

// Allow reports whether a sweep may run at instant now, and records
// the instant when it may. Two calls within the same wall-clock
// minute admit only the first.
func (g *Gate) Allow(now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.last.IsZero() && now.Truncate(time.Minute).Equal(g.last.Truncate(time.Minute)) {
		return false
	}
	g.last = now
	return true
}
