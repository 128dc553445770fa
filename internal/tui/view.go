package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MontecalvoAm/portfolio/internal/view"
)

var (
	gold   = lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#EEC18D"}
	dim    = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	light  = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F3F4F6"}
	accent = lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"}

	accentStyle  = lipgloss.NewStyle().Foreground(gold)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(light)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(gold).MarginTop(1)
	dimStyle     = lipgloss.NewStyle().Foreground(dim)
	activeStyle  = lipgloss.NewStyle().Bold(true).Foreground(gold).Underline(true)
	tabStyle     = lipgloss.NewStyle().Padding(0, 1).Foreground(dim)
	activeTab    = tabStyle.Foreground(light).Background(accent)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(gold).Padding(0, 2)
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.snap.Loading {
		return fmt.Sprintf("\n  %s Loading...\n", m.spinner.View())
	}
	if m.snap.LightboxOpen() {
		return m.lightboxView()
	}

	var b strings.Builder
	b.WriteString(m.navView())
	b.WriteString("\n")
	if m.snap.MenuOpen {
		b.WriteString(m.menuView())
		b.WriteString("\n")
	}
	b.WriteString(m.heroView())
	b.WriteString(m.aboutView())
	b.WriteString(m.servicesView())
	b.WriteString(m.portfolioView())
	b.WriteString(m.contactView())
	b.WriteString("\n")
	b.WriteString(m.helpView())
	return b.String()
}

func (m *Model) navView() string {
	items := make([]string, 0, len(m.content.Nav))
	for _, n := range m.content.Nav {
		if n.ID == m.snap.ActiveNav {
			items = append(items, activeStyle.Render(n.Label))
		} else {
			items = append(items, dimStyle.Render(n.Label))
		}
	}
	return strings.Join(items, "  ")
}

func (m *Model) menuView() string {
	lines := make([]string, 0, len(m.content.Nav))
	for _, n := range m.content.Nav {
		marker := "  "
		if n.ID == m.snap.ActiveNav {
			marker = accentStyle.Render("> ")
		}
		lines = append(lines, marker+n.Label)
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) heroView() string {
	p := m.content.Profile
	typed := m.snap.Typed
	if !m.snap.TypingComplete {
		typed += "▌"
	}
	return headingStyle.Render(p.Role) + "\n" +
		titleStyle.Render("Hi, I'm "+typed) + "\n" +
		dimStyle.Render(p.Tagline) + "\n"
}

func (m *Model) aboutView() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("About Me"))
	b.WriteString("\n")

	tabs := make([]string, 0, len(view.Tabs))
	for _, t := range view.Tabs {
		label := strings.ToUpper(string(t)[:1]) + string(t)[1:]
		if t == m.snap.Tab {
			tabs = append(tabs, activeTab.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")

	switch m.snap.Tab {
	case view.TabSkills:
		for _, s := range m.snap.Skills {
			fmt.Fprintf(&b, "  %s  %s\n", titleStyle.Render(s.Title), dimStyle.Render(s.Description))
		}
		fmt.Fprintf(&b, "  %s\n", dimStyle.Render(fmt.Sprintf("Page %d of %d", m.snap.SkillsPage, m.snap.SkillsPages)))
	case view.TabEducation:
		for _, e := range m.content.Education {
			fmt.Fprintf(&b, "  %s  %s\n  %s\n", accentStyle.Render(e.YearRange), titleStyle.Render(e.Title), dimStyle.Render(e.Institution))
		}
	case view.TabCertificates:
		for _, c := range m.content.Certificates {
			fmt.Fprintf(&b, "  %s  %s\n", accentStyle.Render(c.Year), titleStyle.Render(c.Title))
			if c.Note != "" {
				fmt.Fprintf(&b, "  %s\n", dimStyle.Render(c.Note))
			}
		}
	}
	return b.String()
}

func (m *Model) servicesView() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("My Services"))
	b.WriteString("\n")
	for _, s := range m.content.Services {
		fmt.Fprintf(&b, "  %s  %s\n", titleStyle.Render(s.Title), dimStyle.Render(s.Description))
	}
	return b.String()
}

func (m *Model) portfolioView() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Featured Work"))
	b.WriteString("\n")
	for i, p := range m.content.Projects {
		marker := "  "
		if i == m.hovered {
			marker = accentStyle.Render("> ")
		}
		state := ""
		if i < len(m.snap.Previews) && m.snap.Previews[i].Playing {
			state = accentStyle.Render(" ▶ preview")
		}
		fmt.Fprintf(&b, "%s%s  %s%s\n", marker, titleStyle.Render(p.Title), dimStyle.Render(p.Tag), state)
	}
	return b.String()
}

func (m *Model) contactView() string {
	p := m.content.Profile
	return headingStyle.Render("Let's Connect") + "\n" +
		fmt.Sprintf("  %s  %s\n", p.Email, p.Phone)
}

func (m *Model) lightboxView() string {
	title := m.snap.ActiveVideo
	for _, p := range m.content.Projects {
		if p.Video == m.snap.ActiveVideo {
			title = p.Title
			break
		}
	}
	body := titleStyle.Render("▶ "+title) + "\n" + dimStyle.Render(m.snap.ActiveVideo)
	return "\n" + boxStyle.Render(body) + "\n\n" + m.helpView()
}

func (m *Model) helpView() string {
	hints := make([]string, 0, 8)
	for _, b := range m.keys.ShortHelp(m.snap.LightboxOpen()) {
		hints = append(hints, dimStyle.Render(b.Help().Key+": "+b.Help().Desc))
	}
	return strings.Join(hints, "  ")
}

// Run starts the terminal program and blocks until the visitor quits.
func Run(m *Model, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
