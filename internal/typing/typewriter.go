// Package typing reveals a fixed string one character at a time.
package typing

import (
	"time"

	"github.com/MontecalvoAm/portfolio/internal/schedule"
)

// DefaultInterval is the delay between two revealed characters.
const DefaultInterval = 100 * time.Millisecond

// Progress is what a typewriter has revealed so far.
type Progress struct {
	Text     string
	Complete bool
}

// Typewriter holds the reveal state for one string. It is not safe for
// concurrent use; Start serialises its own ticks.
type Typewriter struct {
	full     []rune
	shown    int
	complete bool
}

// New returns a Typewriter that has revealed nothing yet.
func New(text string) *Typewriter {
	return &Typewriter{full: []rune(text)}
}

// Full returns the whole string.
func (t *Typewriter) Full() string { return string(t.full) }

// Progress returns the revealed prefix and completion flag.
func (t *Typewriter) Progress() Progress {
	return Progress{Text: string(t.full[:t.shown]), Complete: t.complete}
}

// Step performs one tick: it reveals one more character, or, once the full
// string is shown, marks the typewriter complete. It returns false when the
// typewriter was already complete and the tick changed nothing.
func (t *Typewriter) Step() bool {
	if t.complete {
		return false
	}
	if t.shown < len(t.full) {
		t.shown++
		return true
	}
	t.complete = true
	return true
}

// Start ticks tw every interval on clock and reports each change to
// onUpdate. The interval stops itself after the completion tick. Stop the
// returned handle to abandon the animation early.
func Start(clock schedule.Clock, interval time.Duration, tw *Typewriter, onUpdate func(Progress)) *schedule.Interval {
	return schedule.Every(clock, interval, func() bool {
		if !tw.Step() {
			return false
		}
		p := tw.Progress()
		if onUpdate != nil {
			onUpdate(p)
		}
		return !p.Complete
	})
}
