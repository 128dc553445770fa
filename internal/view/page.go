package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/MontecalvoAm/portfolio/internal/content"
	"github.com/MontecalvoAm/portfolio/internal/loading"
	"github.com/MontecalvoAm/portfolio/internal/media"
	"github.com/MontecalvoAm/portfolio/internal/schedule"
	"github.com/MontecalvoAm/portfolio/internal/typing"
	"github.com/MontecalvoAm/portfolio/internal/visibility"
)

// Page is a mounted State plus everything that mutates it on a timer.
// All methods are safe for concurrent use.
type Page struct {
	content *content.Content
	clock   schedule.Clock
	opts    Options
	logger  *slog.Logger

	timers schedule.Group
	gate   *loading.Gate
	reveal *visibility.Observer
	nav    *visibility.Observer

	mu        sync.Mutex
	state     *State
	subs      map[int]chan Snapshot
	nextSub   int
	unmounted bool
}

// Mount creates a page and starts its loading gate. When the gate opens the
// typing animation starts and the visibility observers accept reports.
func Mount(c *content.Content, clock schedule.Clock, opts Options, logger *slog.Logger) *Page {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	p := &Page{
		content: c,
		clock:   clock,
		opts:    opts,
		logger:  logger,
		state:   NewState(c, opts, logger),
		subs:    make(map[int]chan Snapshot),
	}

	p.mu.Lock()
	p.reveal = visibility.NewObserver(opts.RevealThreshold, p.state.HandleReveal)
	p.reveal.Observe(RevealTargets(c)...)
	p.nav = visibility.NewObserver(opts.NavThreshold, p.state.HandleNav)
	p.nav.Observe(c.SectionIDs()...)
	p.timers.Add(p.reveal)
	p.timers.Add(p.nav)
	p.mu.Unlock()

	p.gate = loading.Start(clock, opts.LoadingDelay, p.finishLoading)
	p.timers.Add(p.gate)
	return p
}

func (p *Page) finishLoading() {
	p.mu.Lock()
	if p.unmounted || !p.state.FinishLoading() {
		p.mu.Unlock()
		return
	}
	p.notifyLocked()
	p.mu.Unlock()

	tw := typing.New(p.content.Profile.Name)
	p.timers.Add(typing.Start(p.clock, p.opts.TypingInterval, tw, p.typed))
}

func (p *Page) typed(progress typing.Progress) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.unmounted {
		return
	}
	p.state.SetTyping(progress)
	p.notifyLocked()
}

// Snapshot returns the current state.
func (p *Page) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Snapshot()
}

// Update applies fn to the state and notifies subscribers.
func (p *Page) Update(fn func(*State) error) (Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.unmounted {
		return Snapshot{}, ErrUnmounted
	}
	if err := fn(p.state); err != nil {
		return p.state.Snapshot(), err
	}
	p.notifyLocked()
	return p.state.Snapshot(), nil
}

// SelectTab shows one about panel.
func (p *Page) SelectTab(t Tab) (Snapshot, error) {
	return p.Update(func(s *State) error { return s.SelectTab(t) })
}

func (p *Page) NextSkillsPage() (Snapshot, error) {
	return p.Update(func(s *State) error { s.NextSkillsPage(); return nil })
}

func (p *Page) PrevSkillsPage() (Snapshot, error) {
	return p.Update(func(s *State) error { s.PrevSkillsPage(); return nil })
}

func (p *Page) OpenMenu() (Snapshot, error) {
	return p.Update(func(s *State) error { s.OpenMenu(); return nil })
}

func (p *Page) CloseMenu() (Snapshot, error) {
	return p.Update(func(s *State) error { s.CloseMenu(); return nil })
}

func (p *Page) NavigateTo(id string) (Snapshot, error) {
	return p.Update(func(s *State) error { return s.NavigateTo(id) })
}

func (p *Page) OpenProject(i int) (Snapshot, error) {
	return p.Update(func(s *State) error { return s.OpenProject(i) })
}

func (p *Page) DismissLightbox(target media.ClickTarget) (Snapshot, error) {
	return p.Update(func(s *State) error { s.DismissLightbox(target); return nil })
}

func (p *Page) EnterPreview(ctx context.Context, i int) (Snapshot, error) {
	return p.Update(func(s *State) error { return s.EnterPreview(ctx, i) })
}

func (p *Page) LeavePreview(i int) (Snapshot, error) {
	return p.Update(func(s *State) error { return s.LeavePreview(i) })
}

// Observe feeds a measured intersection ratio for target to whichever
// observer watches it. Reports before loading has finished are rejected:
// the observed elements do not exist yet.
func (p *Page) Observe(target string, ratio float64) (Snapshot, error) {
	return p.Update(func(s *State) error {
		if s.loading {
			return ErrLoading
		}
		var obs *visibility.Observer
		switch {
		case p.nav.Observes(target):
			obs = p.nav
		case p.reveal.Observes(target):
			obs = p.reveal
		default:
			return fmt.Errorf("%q: %w", target, visibility.ErrNotObserved)
		}
		return obs.Report(target, ratio)
	})
}

// Subscribe returns a channel that receives a snapshot after every change.
// Slow readers only see the latest snapshot. The channel closes on cancel
// or Unmount.
func (p *Page) Subscribe() (<-chan Snapshot, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ch := make(chan Snapshot, 1)
	if p.unmounted {
		close(ch)
		return ch, func() {}
	}
	id := p.nextSub
	p.nextSub++
	p.subs[id] = ch
	ch <- p.state.Snapshot()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			if c, ok := p.subs[id]; ok {
				delete(p.subs, id)
				close(c)
			}
		})
	}
}

func (p *Page) notifyLocked() {
	snap := p.state.Snapshot()
	for _, ch := range p.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

// Unmount cancels the loading gate, the typing animation and the observers
// and closes every subscription. It is idempotent.
func (p *Page) Unmount() {
	p.mu.Lock()
	if p.unmounted {
		p.mu.Unlock()
		return
	}
	p.unmounted = true
	for id, ch := range p.subs {
		delete(p.subs, id)
		close(ch)
	}
	p.mu.Unlock()

	p.timers.Stop()
}

// Unmounted reports whether Unmount has run.
func (p *Page) Unmounted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.unmounted
}

// IsClientError reports whether err came from a bad request rather than
// from the page lifecycle.
func IsClientError(err error) bool {
	return errors.Is(err, ErrUnknownTab) ||
		errors.Is(err, ErrUnknownProject) ||
		errors.Is(err, ErrUnknownSection) ||
		errors.Is(err, visibility.ErrNotObserved) ||
		errors.Is(err, visibility.ErrRatio)
}
