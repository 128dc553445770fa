package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit         key.Binding
	Skills       key.Binding
	Education    key.Binding
	Certificates key.Binding
	PrevPage     key.Binding
	NextPage     key.Binding
	PrevSection  key.Binding
	NextSection  key.Binding
	Menu         key.Binding
	PrevProject  key.Binding
	NextProject  key.Binding
	Open         key.Binding
	Close        key.Binding
	ClickVideo   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Skills:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1-3", "tabs")),
		Education:    key.NewBinding(key.WithKeys("2")),
		Certificates: key.NewBinding(key.WithKeys("3")),
		PrevPage:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "skills page")),
		NextPage:     key.NewBinding(key.WithKeys("right", "l")),
		PrevSection:  key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "section")),
		NextSection:  key.NewBinding(key.WithKeys("down", "j")),
		Menu:         key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
		PrevProject:  key.NewBinding(key.WithKeys("[")),
		NextProject:  key.NewBinding(key.WithKeys("]"), key.WithHelp("[/]", "project")),
		Open:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
		Close:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		ClickVideo:   key.NewBinding(key.WithKeys(" ")),
	}
}

// ShortHelp lists the bindings shown in the footer.
func (k keyMap) ShortHelp(lightbox bool) []key.Binding {
	if lightbox {
		return []key.Binding{k.Close, k.Quit}
	}
	return []key.Binding{k.Skills, k.PrevPage, k.PrevSection, k.NextProject, k.Open, k.Menu, k.Quit}
}
