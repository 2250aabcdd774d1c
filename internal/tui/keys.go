package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the panel TUI.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding

	// Panel actions (need management permission).
	Add       key.Binding
	Remove    key.Binding
	Customize key.Binding

	// Modal flow.
	Select     key.Binding // Enter: add/remove in the catalog, submit forms.
	OptionOne  key.Binding // Picker: add an existing roadmap.
	OptionTwo  key.Binding // Picker: create a custom roadmap.
	NextField  key.Binding
	Close      key.Binding
	ConfirmYes key.Binding
	ConfirmNo  key.Binding

	Reload key.Binding
	Quit   key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add roadmap"),
	),
	Remove: key.NewBinding(
		key.WithKeys("d", "x"),
		key.WithHelp("d", "remove"),
	),
	Customize: key.NewBinding(
		key.WithKeys("c", "e"),
		key.WithHelp("c", "customize"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	OptionOne: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "existing roadmap"),
	),
	OptionTwo: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "custom roadmap"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("tab", "next field"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	ConfirmYes: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	ConfirmNo: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n", "cancel"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
