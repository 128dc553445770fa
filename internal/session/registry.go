// Package session keeps one mounted page per page view. Every browser tab
// gets its own page id, so tabs never share state.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MontecalvoAm/portfolio/internal/view"
)

var ErrNotFound = errors.New("session not found")

// MountFunc creates the page for a new session.
type MountFunc func() *view.Page

type entry struct {
	page     *view.Page
	lastSeen time.Time
}

// Registry maps session ids to pages. Pages idle for longer than the TTL
// are unmounted and forgotten.
type Registry struct {
	mount  MountFunc
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger

	mu       sync.Mutex
	sessions map[string]*entry
}

func NewRegistry(mount MountFunc, ttl time.Duration, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		mount:    mount,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
		sessions: make(map[string]*entry),
	}
}

// Start mounts a fresh page under a new id. Pages of other views are left
// alone; they end through End or expire.
func (r *Registry) Start() (string, *view.Page) {
	id := uuid.NewString()
	page := r.mount()

	r.mu.Lock()
	r.sessions[id] = &entry{page: page, lastSeen: r.now()}
	r.mu.Unlock()
	return id, page
}

// Get returns the page for id and marks the session as active.
func (r *Registry) Get(id string) (*view.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.lastSeen = r.now()
	return e.page, nil
}

// End unmounts and forgets the session.
func (r *Registry) End(id string) {
	r.mu.Lock()
	e, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		e.page.Unmount()
	}
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep unmounts sessions idle for longer than the TTL and returns how many
// it removed.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)
	var expired []*view.Page

	r.mu.Lock()
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			expired = append(expired, e.page)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, p := range expired {
		p.Unmount()
	}
	return len(expired)
}

// Run sweeps every interval until ctx is done, then unmounts everything.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.Close()
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Debug("expired sessions", "count", n)
			}
		}
	}
}

// Close unmounts every session.
func (r *Registry) Close() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*entry)
	r.mu.Unlock()

	for _, e := range sessions {
		e.page.Unmount()
	}
}
