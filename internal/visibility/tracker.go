package visibility

import (
	"fmt"
	"slices"
)

// Reveal remembers which animatable elements are currently shown. Elements
// fade in on entry and reset on exit.
type Reveal struct {
	visible map[string]bool
}

// NewReveal returns a tracker with nothing visible.
func NewReveal() *Reveal {
	return &Reveal{visible: make(map[string]bool)}
}

// Handle applies a crossing reported by an Observer.
func (r *Reveal) Handle(e Entry) {
	if e.Intersecting {
		r.visible[e.Target] = true
		return
	}
	delete(r.visible, e.Target)
}

// Visible reports whether target is shown.
func (r *Reveal) Visible(target string) bool { return r.visible[target] }

// NavMode selects how the active navigation entry reacts to sections
// leaving the viewport.
type NavMode int

const (
	// NavSticky only ever moves the highlight to a section that enters the
	// viewport; leaving never clears it.
	NavSticky NavMode = iota
	// NavExclusive removes the highlight from a section that leaves and
	// falls back to the most recent section still in view.
	NavExclusive
)

func (m NavMode) String() string {
	switch m {
	case NavSticky:
		return "sticky"
	case NavExclusive:
		return "exclusive"
	default:
		return fmt.Sprintf("NavMode(%d)", int(m))
	}
}

// ParseNavMode parses "sticky" or "exclusive".
func ParseNavMode(s string) (NavMode, error) {
	switch s {
	case "sticky", "":
		return NavSticky, nil
	case "exclusive":
		return NavExclusive, nil
	}
	return 0, fmt.Errorf("unknown nav mode %q", s)
}

// Nav tracks the highlighted navigation entry. The latest qualifying entry
// wins; simultaneous entries have no defined order.
type Nav struct {
	mode   NavMode
	active string
	inView []string
}

// NewNav returns a tracker with initial highlighted.
func NewNav(mode NavMode, initial string) *Nav {
	return &Nav{mode: mode, active: initial}
}

func (n *Nav) Mode() NavMode { return n.mode }

// Active returns the highlighted section id, or "" when none is.
func (n *Nav) Active() string { return n.active }

// Set forces the highlight, as when a visitor clicks a nav link.
func (n *Nav) Set(id string) { n.active = id }

// Handle applies a crossing reported by an Observer.
func (n *Nav) Handle(e Entry) {
	n.inView = slices.DeleteFunc(n.inView, func(s string) bool { return s == e.Target })
	if e.Intersecting {
		n.inView = append(n.inView, e.Target)
		n.active = e.Target
		return
	}
	if n.mode != NavExclusive || n.active != e.Target {
		return
	}
	n.active = ""
	if len(n.inView) > 0 {
		n.active = n.inView[len(n.inView)-1]
	}
}
