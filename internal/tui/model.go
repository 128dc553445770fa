// Package tui renders the portfolio page in a terminal. It drives the same
// view.Page as the web server: the loading gate, the typing animation and
// every key press go through the page's state container.
package tui

import (
	"context"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MontecalvoAm/portfolio/internal/content"
	"github.com/MontecalvoAm/portfolio/internal/media"
	"github.com/MontecalvoAm/portfolio/internal/view"
)

type snapshotMsg view.Snapshot

type closedMsg struct{}

// Model is the bubbletea model of one mounted page.
type Model struct {
	page    *view.Page
	content *content.Content
	updates <-chan view.Snapshot
	cancel  func()

	snap     view.Snapshot
	spinner  spinner.Model
	keys     keyMap
	hovered  int
	width    int
	quitting bool
}

// New subscribes to page. The page is unmounted when the model quits.
func New(page *view.Page, c *content.Content) *Model {
	updates, cancel := page.Subscribe()
	return &Model{
		page:    page,
		content: c,
		updates: updates,
		cancel:  cancel,
		snap:    page.Snapshot(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle)),
		keys:    defaultKeys(),
		hovered: -1,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.wait())
}

// wait delivers the next snapshot published by the page's timers.
func (m *Model) wait() tea.Cmd {
	ch := m.updates
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return closedMsg{}
		}
		return snapshotMsg(snap)
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case snapshotMsg:
		m.snap = view.Snapshot(msg)
		return m, m.wait()

	case closedMsg:
		m.quitting = true
		return m, tea.Quit

	case spinner.TickMsg:
		if !m.snap.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		m.cancel()
		m.page.Unmount()
		return m, tea.Quit
	}
	if m.snap.Loading {
		return m, nil
	}

	if m.snap.LightboxOpen() {
		switch {
		case key.Matches(msg, m.keys.Close):
			m.apply(m.page.DismissLightbox(media.ClickClose))
		case key.Matches(msg, m.keys.ClickVideo):
			m.apply(m.page.DismissLightbox(media.ClickVideo))
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Skills):
		m.apply(m.page.SelectTab(view.TabSkills))
	case key.Matches(msg, m.keys.Education):
		m.apply(m.page.SelectTab(view.TabEducation))
	case key.Matches(msg, m.keys.Certificates):
		m.apply(m.page.SelectTab(view.TabCertificates))
	case key.Matches(msg, m.keys.PrevPage):
		m.apply(m.page.PrevSkillsPage())
	case key.Matches(msg, m.keys.NextPage):
		m.apply(m.page.NextSkillsPage())
	case key.Matches(msg, m.keys.PrevSection):
		m.moveSection(-1)
	case key.Matches(msg, m.keys.NextSection):
		m.moveSection(1)
	case key.Matches(msg, m.keys.Menu):
		if m.snap.MenuOpen {
			m.apply(m.page.CloseMenu())
		} else {
			m.apply(m.page.OpenMenu())
		}
	case key.Matches(msg, m.keys.PrevProject):
		m.hover(-1)
	case key.Matches(msg, m.keys.NextProject):
		m.hover(1)
	case key.Matches(msg, m.keys.Open):
		if m.hovered >= 0 {
			m.apply(m.page.OpenProject(m.hovered))
		}
	case key.Matches(msg, m.keys.Close):
		if m.snap.MenuOpen {
			m.apply(m.page.CloseMenu())
		}
	}
	return m, nil
}

func (m *Model) apply(snap view.Snapshot, err error) {
	if err == nil {
		m.snap = snap
	}
}

// moveSection jumps to the neighbouring section, which also closes the menu.
func (m *Model) moveSection(delta int) {
	ids := m.content.SectionIDs()
	i := slices.Index(ids, m.snap.ActiveNav) + delta
	i = max(0, min(i, len(ids)-1))
	m.apply(m.page.NavigateTo(ids[i]))
}

// hover moves the pointer delta projects along, wrapping at both ends. The
// preview under the old position stops and the new one starts.
func (m *Model) hover(delta int) {
	n := len(m.content.Projects)
	if n == 0 {
		return
	}
	var i int
	switch {
	case m.hovered >= 0:
		i = ((m.hovered+delta)%n + n) % n
	case delta < 0:
		i = n - 1
	}
	if m.hovered >= 0 {
		m.apply(m.page.LeavePreview(m.hovered))
	}
	m.hovered = i
	m.apply(m.page.EnterPreview(context.Background(), i))
}
