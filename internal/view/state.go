// Package view owns the transient state of one visitor's page.
//
// State is the plain container with named update functions. Page wraps a
// State with its lifecycle: the loading gate, the typing animation and the
// visibility observers, all cancelled together on Unmount.
package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/MontecalvoAm/portfolio/internal/content"
	"github.com/MontecalvoAm/portfolio/internal/media"
	"github.com/MontecalvoAm/portfolio/internal/pager"
	"github.com/MontecalvoAm/portfolio/internal/typing"
	"github.com/MontecalvoAm/portfolio/internal/visibility"
)

var (
	ErrUnknownTab     = errors.New("unknown tab")
	ErrUnknownProject = errors.New("unknown project")
	ErrUnknownSection = errors.New("unknown section")
	ErrLoading        = errors.New("page still loading")
	ErrUnmounted      = errors.New("page unmounted")
)

// Tab identifies one of the about panels.
type Tab string

const (
	TabSkills       Tab = "skills"
	TabEducation    Tab = "education"
	TabCertificates Tab = "certificates"
)

// Tabs lists the about panels in display order.
var Tabs = []Tab{TabSkills, TabEducation, TabCertificates}

// ParseTab validates a tab id.
func ParseTab(s string) (Tab, error) {
	t := Tab(s)
	if !slices.Contains(Tabs, t) {
		return "", fmt.Errorf("%q: %w", s, ErrUnknownTab)
	}
	return t, nil
}

// HomeSection is highlighted before any section reports in.
const HomeSection = "home"

// State is the page's UI state. It is not safe for concurrent use.
type State struct {
	content *content.Content
	logger  *slog.Logger

	loading        bool
	typed          string
	typingComplete bool
	tab            Tab
	menuOpen       bool
	skills         pager.Pager
	lightbox       media.Lightbox
	previews       []media.Element
	nav            *visibility.Nav
	reveal         *visibility.Reveal
}

// NewState returns the state of a freshly mounted page: loading, nothing
// typed, skills tab on page 1, home highlighted, no video open.
func NewState(c *content.Content, opts Options, logger *slog.Logger) *State {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	previews := make([]media.Element, len(c.Projects))
	for i, p := range c.Projects {
		previews[i] = media.Element{Source: p.Video}
		if opts.VideoExists != nil {
			previews[i].Missing = !opts.VideoExists(p.Video)
		}
	}
	return &State{
		content:  c,
		logger:   logger,
		loading:  true,
		tab:      TabSkills,
		skills:   pager.New(len(c.Skills), opts.SkillsPageSize),
		previews: previews,
		nav:      visibility.NewNav(opts.NavMode, HomeSection),
		reveal:   visibility.NewReveal(),
	}
}

// FinishLoading ends the loading phase. It reports false if loading had
// already finished.
func (s *State) FinishLoading() bool {
	if !s.loading {
		return false
	}
	s.loading = false
	return true
}

// SetTyping records typing progress.
func (s *State) SetTyping(p typing.Progress) {
	s.typed = p.Text
	s.typingComplete = p.Complete
}

// SelectTab shows one about panel. The skills page is kept.
func (s *State) SelectTab(t Tab) error {
	if _, err := ParseTab(string(t)); err != nil {
		return err
	}
	s.tab = t
	return nil
}

func (s *State) NextSkillsPage() { s.skills = s.skills.Next() }
func (s *State) PrevSkillsPage() { s.skills = s.skills.Prev() }

func (s *State) OpenMenu()  { s.menuOpen = true }
func (s *State) CloseMenu() { s.menuOpen = false }

// NavigateTo handles a click on a navigation link: the mobile menu closes
// and the section is highlighted straight away.
func (s *State) NavigateTo(id string) error {
	if !slices.Contains(s.content.SectionIDs(), id) {
		return fmt.Errorf("%q: %w", id, ErrUnknownSection)
	}
	s.menuOpen = false
	s.nav.Set(id)
	return nil
}

// OpenProject shows project i in the lightbox.
func (s *State) OpenProject(i int) error {
	p, ok := s.content.Project(i)
	if !ok {
		return fmt.Errorf("project %d: %w", i, ErrUnknownProject)
	}
	s.lightbox.Open(p.Video)
	return nil
}

// DismissLightbox handles a click inside the lightbox and reports whether
// it closed.
func (s *State) DismissLightbox(target media.ClickTarget) bool {
	return s.lightbox.Dismiss(target)
}

// EnterPreview starts the hover preview of project i. Play failures are
// logged and dropped.
func (s *State) EnterPreview(ctx context.Context, i int) error {
	if i < 0 || i >= len(s.previews) {
		return fmt.Errorf("project %d: %w", i, ErrUnknownProject)
	}
	media.NewPreview(&s.previews[i], s.logger.With("video", s.previews[i].Source)).Enter(ctx)
	return nil
}

// LeavePreview pauses and rewinds the hover preview of project i.
func (s *State) LeavePreview(i int) error {
	if i < 0 || i >= len(s.previews) {
		return fmt.Errorf("project %d: %w", i, ErrUnknownProject)
	}
	media.NewPreview(&s.previews[i], s.logger).Leave()
	return nil
}

// HandleReveal is the callback for the reveal observer.
func (s *State) HandleReveal(e visibility.Entry) { s.reveal.Handle(e) }

// HandleNav is the callback for the navigation observer.
func (s *State) HandleNav(e visibility.Entry) { s.nav.Handle(e) }

// Snapshot copies the state for rendering.
func (s *State) Snapshot() Snapshot {
	video, _ := s.lightbox.Active()
	revealed := make(map[string]bool)
	for _, id := range RevealTargets(s.content) {
		if s.reveal.Visible(id) {
			revealed[id] = true
		}
	}
	return Snapshot{
		Content:        s.content,
		Loading:        s.loading,
		Typed:          s.typed,
		TypingComplete: s.typingComplete,
		Tab:            s.tab,
		ActiveNav:      s.nav.Active(),
		MenuOpen:       s.menuOpen,
		SkillsPage:     s.skills.Page(),
		SkillsPages:    s.skills.Total(),
		HasPrevSkills:  s.skills.HasPrev(),
		HasNextSkills:  s.skills.HasNext(),
		Skills:         pager.Slice(s.skills, s.content.Skills),
		ActiveVideo:    video,
		Revealed:       revealed,
		Previews:       slices.Clone(s.previews),
	}
}

// Snapshot is a read-only copy of State.
type Snapshot struct {
	// Content is what the page was mounted with; a later reload of the
	// content file does not change it.
	Content *content.Content

	Loading        bool
	Typed          string
	TypingComplete bool
	Tab            Tab
	ActiveNav      string
	MenuOpen       bool

	SkillsPage    int
	SkillsPages   int
	HasPrevSkills bool
	HasNextSkills bool
	Skills        []content.Skill

	// ActiveVideo is the lightbox video path, "" when closed.
	ActiveVideo string
	Revealed    map[string]bool
	Previews    []media.Element
}

// LightboxOpen reports whether a video is shown full screen.
func (s Snapshot) LightboxOpen() bool { return s.ActiveVideo != "" }

// RevealTargets lists the ids of elements that fade in on scroll.
func RevealTargets(c *content.Content) []string {
	return c.RevealIDs()
}
