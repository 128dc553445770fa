// Package loading holds back content until a fixed delay has passed.
package loading

import (
	"sync"
	"time"

	"github.com/MontecalvoAm/portfolio/internal/schedule"
)

// DefaultDelay is how long the spinner shows before content mounts.
const DefaultDelay = time.Second

// Gate runs its mount callback exactly once, after the delay, unless it is
// cancelled first.
type Gate struct {
	mu        sync.Mutex
	timer     schedule.Timer
	open      bool
	cancelled bool
	onMount   func()
}

// Start arms a gate on clock. onMount runs once when the delay elapses.
func Start(clock schedule.Clock, delay time.Duration, onMount func()) *Gate {
	g := &Gate{onMount: onMount}
	g.mu.Lock()
	g.timer = clock.AfterFunc(delay, g.fire)
	g.mu.Unlock()
	return g
}

func (g *Gate) fire() {
	g.mu.Lock()
	if g.open || g.cancelled {
		g.mu.Unlock()
		return
	}
	g.open = true
	fn := g.onMount
	g.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Loading reports whether the gate is still closed.
func (g *Gate) Loading() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.open
}

// Stop cancels a gate that has not opened yet. It satisfies schedule.Timer.
func (g *Gate) Stop() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.open || g.cancelled {
		return false
	}
	g.cancelled = true
	g.timer.Stop()
	return true
}
