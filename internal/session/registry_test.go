package session

import (
	"testing"
	"time"

	"github.com/MontecalvoAm/portfolio/internal/content"
	"github.com/MontecalvoAm/portfolio/internal/schedule"
	"github.com/MontecalvoAm/portfolio/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) (*Registry, *time.Time) {
	t.Helper()
	clock := schedule.NewManualClock(time.Unix(0, 0))
	c := content.MustDefault()
	r := NewRegistry(func() *view.Page {
		return view.Mount(c, clock, view.DefaultOptions(), nil)
	}, time.Minute, nil)
	now := time.Unix(1000, 0)
	r.now = func() time.Time { return now }
	t.Cleanup(r.Close)
	return r, &now
}

func TestRegistry_StartAndGet(t *testing.T) {
	r, _ := newTestRegistry(t)
	id, page := r.Start()
	require.NotEmpty(t, id)

	got, err := r.Get(id)
	require.NoError(t, err)
	assert.Same(t, page, got)

	_, err = r.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistry_StartKeepsOtherPages(t *testing.T) {
	r, _ := newTestRegistry(t)
	firstID, first := r.Start()
	secondID, second := r.Start()

	assert.NotEqual(t, firstID, secondID)
	assert.NotSame(t, first, second)
	assert.False(t, first.Unmounted())
	assert.False(t, second.Unmounted())
	assert.Equal(t, 2, r.Len())

	got, err := r.Get(firstID)
	require.NoError(t, err)
	assert.Same(t, first, got)
}

func TestRegistry_SweepExpiresIdleSessions(t *testing.T) {
	r, now := newTestRegistry(t)
	idleID, idle := r.Start()
	*now = now.Add(45 * time.Second)
	activeID, active := r.Start()
	*now = now.Add(30 * time.Second)
	_, err := r.Get(activeID)
	require.NoError(t, err)

	assert.Equal(t, 1, r.Sweep())
	assert.True(t, idle.Unmounted())
	assert.False(t, active.Unmounted())

	_, err = r.Get(idleID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistry_EndAndClose(t *testing.T) {
	r, _ := newTestRegistry(t)
	id, page := r.Start()
	_, other := r.Start()

	r.End(id)
	assert.True(t, page.Unmounted())
	r.End(id)

	r.Close()
	assert.True(t, other.Unmounted())
	assert.Zero(t, r.Len())
}
