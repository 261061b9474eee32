package todolist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todocal/internal/keys"
	"github.com/nhle/todocal/internal/model"
	"github.com/nhle/todocal/internal/theme"
)

// Model is a scrollable list of todos.
type Model struct {
	list   list.Model
	keys   *keys.KeyMap
	empty  string
	width  int
	height int
}

// New creates a todo list with the given title.
func New(title string, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		keys:   k,
		width:  width,
		height: height,
	}
}

// SetTodos replaces the list contents. Categories resolve each todo's
// label; unknown category ids render without one.
func (m *Model) SetTodos(todos []model.Todo, categories []model.Category) tea.Cmd {
	items := make([]list.Item, len(todos))
	for i, t := range todos {
		it := TodoItem{Todo: t}
		if c, ok := model.FindCategory(categories, t.CategoryID); ok {
			it.Category = &c
		}
		items[i] = it
	}
	return m.list.SetItems(items)
}

// SetTitle changes the list heading.
func (m *Model) SetTitle(title string) {
	m.list.Title = title
}

// SetEmptyMessage sets the text shown when there are no todos.
func (m *Model) SetEmptyMessage(s string) {
	m.empty = s
}

// Len returns the number of todos shown.
func (m Model) Len() int {
	return len(m.list.Items())
}

// Selected returns the todo under the cursor.
func (m Model) Selected() (model.Todo, bool) {
	it, ok := m.list.SelectedItem().(TodoItem)
	if !ok {
		return model.Todo{}, false
	}
	return it.Todo, true
}

// Update handles cursor movement.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Up):
			m.list.CursorUp()
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.list.CursorDown()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the list or the empty message.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		title := m.list.Styles.Title.Render(m.list.Title)
		body := lipgloss.NewStyle().
			Width(m.width).
			Height(max(1, m.height-2)).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render(m.empty)
		return lipgloss.JoinVertical(lipgloss.Left, title, body)
	}

	return m.list.View()
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height)
}
