package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MontecalvoAm/portfolio/internal/content"
	"github.com/MontecalvoAm/portfolio/internal/schedule"
	"github.com/MontecalvoAm/portfolio/internal/view"
)

type testDriver struct {
	t     *testing.T
	clock *schedule.ManualClock
	page  *view.Page
	model *Model
	opts  view.Options
	c     *content.Content
}

func newTestDriver(t *testing.T) *testDriver {
	t.Helper()
	c := content.MustDefault()
	clock := schedule.NewManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	opts := view.DefaultOptions()
	page := view.Mount(c, clock, opts, nil)
	t.Cleanup(page.Unmount)
	return &testDriver{t: t, clock: clock, page: page, model: New(page, c), opts: opts, c: c}
}

// advance moves the clock and delivers the page's latest snapshot.
func (d *testDriver) advance(dur time.Duration) {
	d.clock.Advance(dur)
	d.model.Update(snapshotMsg(d.page.Snapshot()))
}

func (d *testDriver) press(k string) tea.Cmd {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	_, cmd := d.model.Update(msg)
	return cmd
}

func (d *testDriver) loaded() {
	d.advance(d.opts.LoadingDelay)
}

func TestTUI_SpinnerUntilLoaded(t *testing.T) {
	d := newTestDriver(t)

	assert.Contains(t, d.model.View(), "Loading...")
	d.press("2")
	assert.Equal(t, view.TabSkills, d.page.Snapshot().Tab)

	d.loaded()
	assert.NotContains(t, d.model.View(), "Loading...")
	assert.Contains(t, d.model.View(), "Hi, I'm ▌")
}

func TestTUI_TypingGrowsOneCharacterPerTick(t *testing.T) {
	d := newTestDriver(t)
	d.loaded()

	name := []rune(d.c.Profile.Name)
	for i := 1; i <= 3; i++ {
		d.advance(d.opts.TypingInterval)
		assert.Contains(t, d.model.View(), "Hi, I'm "+string(name[:i])+"▌")
	}

	d.advance(time.Duration(len(name)) * d.opts.TypingInterval)
	assert.Contains(t, d.model.View(), "Hi, I'm "+d.c.Profile.Name)
	assert.NotContains(t, d.model.View(), "▌")
}

func TestTUI_TabsAndPaging(t *testing.T) {
	d := newTestDriver(t)
	d.loaded()

	assert.Contains(t, d.model.View(), "Page 1 of 2")
	d.press("l")
	assert.Contains(t, d.model.View(), "Page 2 of 2")
	assert.Contains(t, d.model.View(), d.c.Skills[8].Title)

	d.press("2")
	v := d.model.View()
	assert.Contains(t, v, d.c.Education[0].Title)
	assert.NotContains(t, v, "Page 2 of 2")

	d.press("3")
	assert.Contains(t, d.model.View(), d.c.Certificates[0].Title)

	d.press("1")
	assert.Contains(t, d.model.View(), "Page 2 of 2")
	d.press("h")
	d.press("h")
	assert.Contains(t, d.model.View(), "Page 1 of 2")
}

func TestTUI_SectionNavigationAndMenu(t *testing.T) {
	d := newTestDriver(t)
	d.loaded()

	d.press("m")
	assert.True(t, d.page.Snapshot().MenuOpen)

	d.press("j")
	snap := d.page.Snapshot()
	assert.Equal(t, d.c.SectionIDs()[1], snap.ActiveNav)
	assert.False(t, snap.MenuOpen)

	d.press("k")
	d.press("k")
	assert.Equal(t, view.HomeSection, d.page.Snapshot().ActiveNav)
}

func TestTUI_PreviewAndLightbox(t *testing.T) {
	d := newTestDriver(t)
	d.loaded()

	d.press("]")
	assert.True(t, d.page.Snapshot().Previews[0].Playing)
	d.press("]")
	snap := d.page.Snapshot()
	assert.False(t, snap.Previews[0].Playing)
	assert.True(t, snap.Previews[1].Playing)

	d.press("enter")
	require.True(t, d.page.Snapshot().LightboxOpen())
	assert.Equal(t, d.c.Projects[1].Video, d.page.Snapshot().ActiveVideo)
	assert.Contains(t, d.model.View(), d.c.Projects[1].Title)

	d.press(" ")
	assert.True(t, d.page.Snapshot().LightboxOpen())

	d.press("esc")
	assert.False(t, d.page.Snapshot().LightboxOpen())

	d.press("[")
	d.press("[")
	assert.True(t, d.page.Snapshot().Previews[len(d.c.Projects)-1].Playing)
}

func TestTUI_QuitUnmountsPage(t *testing.T) {
	d := newTestDriver(t)
	d.loaded()

	cmd := d.press("ctrl+c")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.True(t, d.page.Unmounted())
	assert.Empty(t, d.model.View())
	assert.Zero(t, d.clock.Pending())
}
