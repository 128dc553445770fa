// Package visibility tracks which page regions are in the viewport.
//
// The browser measures intersection ratios and reports them; an Observer
// turns ratios into threshold crossings, and the trackers turn crossings into
// page state: revealed elements and the active navigation entry.
package visibility

import (
	"fmt"
	"sync"
)

// Default thresholds, as fractions of the target's area.
const (
	RevealThreshold = 0.15
	NavThreshold    = 0.5
)

// Entry describes one threshold crossing.
type Entry struct {
	Target       string
	Ratio        float64
	Intersecting bool
}

// Observer invokes its callback whenever an observed target crosses the
// threshold in either direction. The first report for a target always
// fires.
type Observer struct {
	threshold float64
	callback  func(Entry)

	mu      sync.Mutex
	targets map[string]*bool
	closed  bool
}

// NewObserver returns an Observer with no targets.
func NewObserver(threshold float64, callback func(Entry)) *Observer {
	return &Observer{
		threshold: threshold,
		callback:  callback,
		targets:   make(map[string]*bool),
	}
}

// Threshold returns the ratio at which a target counts as intersecting.
func (o *Observer) Threshold() float64 { return o.threshold }

// Observe registers target. Observing a target twice is a no-op.
func (o *Observer) Observe(targets ...string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	for _, t := range targets {
		if _, ok := o.targets[t]; !ok {
			o.targets[t] = nil
		}
	}
}

// Observes reports whether target is registered.
func (o *Observer) Observes(target string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.targets[target]
	return ok
}

// Unobserve drops target.
func (o *Observer) Unobserve(target string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.targets, target)
}

// Report records the current intersection ratio of target. It returns an
// error for targets that are not observed or after Disconnect.
func (o *Observer) Report(target string, ratio float64) error {
	if ratio < 0 || ratio > 1 {
		return fmt.Errorf("ratio %v for %q: %w", ratio, target, ErrRatio)
	}

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return ErrDisconnected
	}
	last, ok := o.targets[target]
	if !ok {
		o.mu.Unlock()
		return fmt.Errorf("%q: %w", target, ErrNotObserved)
	}
	in := ratio > 0 && ratio >= o.threshold
	if last != nil && *last == in {
		o.mu.Unlock()
		return nil
	}
	o.targets[target] = &in
	cb := o.callback
	o.mu.Unlock()

	if cb != nil {
		cb(Entry{Target: target, Ratio: ratio, Intersecting: in})
	}
	return nil
}

// Disconnect drops every target. Later reports fail with ErrDisconnected.
func (o *Observer) Disconnect() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
	o.targets = make(map[string]*bool)
}

// Stop disconnects the observer so it can live in a schedule.Group.
func (o *Observer) Stop() bool {
	o.mu.Lock()
	was := !o.closed
	o.mu.Unlock()
	o.Disconnect()
	return was
}
