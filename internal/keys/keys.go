package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down  key.Binding
	Up    key.Binding
	Left  key.Binding
	Right key.Binding

	// Calendar
	PrevMonth key.Binding
	NextMonth key.Binding
	Select    key.Binding

	// Tabs
	NextTab key.Binding

	// Filters
	FilterAll       key.Binding
	FilterActive    key.Binding
	FilterCompleted key.Binding
	CycleCategory   key.Binding
	ResetFilters    key.Binding

	// Todo actions
	Add       key.Binding
	Edit      key.Binding
	Toggle    key.Binding
	Delete    key.Binding
	RemoveDue key.Binding

	Categories key.Binding
	Refresh    key.Binding
	Command    key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	Help key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "prev day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next day"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("h", "pgup"),
			key.WithHelp("h", "prev month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("l", "pgdown"),
			key.WithHelp("l", "next month"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select day"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "today/calendar"),
		),
		FilterAll: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "all"),
		),
		FilterActive: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "active"),
		),
		FilterCompleted: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "completed"),
		),
		CycleCategory: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cycle category"),
		),
		ResetFilters: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "reset filters"),
		),
		Add: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new todo"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("x", " "),
			key.WithHelp("x", "toggle done"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		RemoveDue: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "remove due date"),
		),
		Categories: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "categories"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.NextTab, k.Add, k.Edit, k.Toggle, k.Delete,
		k.Quit, k.Help,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.NextTab, k.Back, k.Quit},
		{k.PrevMonth, k.NextMonth, k.Select},
		{k.FilterAll, k.FilterActive, k.FilterCompleted, k.CycleCategory, k.ResetFilters},
		{k.Add, k.Edit, k.Toggle, k.Delete, k.RemoveDue, k.Categories, k.Refresh, k.Command, k.Help},
	}
}
