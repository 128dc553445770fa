// Package schedule provides cancellable scheduled callbacks.
//
// Components that animate or delay work take a Clock instead of calling the
// time package directly, so tests can drive them with a ManualClock.
package schedule

import (
	"sync"
	"time"
)

// Timer is a handle to a pending callback.
type Timer interface {
	// Stop cancels the callback. It reports whether the call stopped it
	// before it ran.
	Stop() bool
}

// Clock schedules callbacks.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

// Real returns a Clock backed by the time package.
func Real() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Interval calls f every d until f returns false or the interval is stopped.
type Interval struct {
	clock Clock
	every time.Duration
	fn    func() bool

	mu      sync.Mutex
	timer   Timer
	stopped bool
}

// Every starts an Interval. The first call happens after d.
func Every(clock Clock, d time.Duration, f func() bool) *Interval {
	iv := &Interval{clock: clock, every: d, fn: f}
	iv.mu.Lock()
	iv.timer = clock.AfterFunc(d, iv.fire)
	iv.mu.Unlock()
	return iv
}

func (iv *Interval) fire() {
	iv.mu.Lock()
	if iv.stopped {
		iv.mu.Unlock()
		return
	}
	iv.mu.Unlock()

	again := iv.fn()

	iv.mu.Lock()
	defer iv.mu.Unlock()
	if !again {
		iv.stopped = true
		return
	}
	if iv.stopped {
		return
	}
	iv.timer = iv.clock.AfterFunc(iv.every, iv.fire)
}

// Stop cancels the interval. It reports whether the interval was still
// running.
func (iv *Interval) Stop() bool {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	if iv.stopped {
		return false
	}
	iv.stopped = true
	if iv.timer != nil {
		iv.timer.Stop()
	}
	return true
}

// Group owns a set of timers and cancels all of them on Stop. A stopped
// group cancels anything added afterwards immediately.
type Group struct {
	mu      sync.Mutex
	timers  []Timer
	stopped bool
}

// Add registers t with the group and returns it.
func (g *Group) Add(t Timer) Timer {
	g.mu.Lock()
	if g.stopped {
		g.mu.Unlock()
		t.Stop()
		return t
	}
	g.timers = append(g.timers, t)
	g.mu.Unlock()
	return t
}

// Stop cancels every timer in the group.
func (g *Group) Stop() {
	g.mu.Lock()
	timers := g.timers
	g.timers = nil
	g.stopped = true
	g.mu.Unlock()

	for _, t := range timers {
		t.Stop()
	}
}

// Stopped reports whether Stop has been called.
func (g *Group) Stopped() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stopped
}
