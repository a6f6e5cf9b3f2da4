package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the app. Letter keys are avoided on the
// search screen since they go to the query input.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Tab      key.Binding // Switch between search and groups
	Field    key.Binding // Next input of a group row
	Enter    key.Binding // Launch / edit row
	NewGroup key.Binding
	Delete   key.Binding // Delete group row
	Refresh  key.Binding // Rescan applications
	Preview  key.Binding // Toggle JSON preview
	Help     key.Binding
	Quit     key.Binding
	Escape   key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "search/groups"),
		),
		Field: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "name/apps"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "launch"),
		),
		NewGroup: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "new group"),
		),
		Delete: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "delete group"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "rescan apps"),
		),
		Preview: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "config preview"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear/back"),
		),
	}
}

// ShortHelp returns keybindings to show in short help
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Tab, k.Help, k.Quit}
}

// FullHelp returns all keybindings for full help
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Navigation
		{k.Up, k.Down, k.Tab, k.Escape},
		// Groups
		{k.Field, k.NewGroup, k.Delete, k.Preview},
		// General
		{k.Enter, k.Refresh, k.Help, k.Quit},
	}
}
