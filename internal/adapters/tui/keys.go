package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings consumed outside of text entry.
type keyMap struct {
	Quit      key.Binding
	NextPanel key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Edit      key.Binding
	New       key.Binding
	Delete    key.Binding
	Enter     key.Binding
	Cancel    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q", "ctrl+c"),
			key.WithHelp("ctrl+q", "quit"),
		),
		NextPanel: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next panel"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "right"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "rename"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new project"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// helpFor returns the bindings worth showing for the focused panel.
func (k keyMap) helpFor(f Focus) []key.Binding {
	switch f {
	case FocusTimerButtons:
		return []key.Binding{k.Left, k.Right, k.Enter, k.NextPanel, k.Quit}
	case FocusProjectList:
		return []key.Binding{k.Up, k.Down, k.Edit, k.New, k.Delete, k.NextPanel, k.Quit}
	case FocusTimerList:
		return []key.Binding{k.Up, k.Down, k.NextPanel, k.Quit}
	case FocusProjectInput:
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
			k.Cancel,
			k.Quit,
		}
	default:
		return nil
	}
}
