package app

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/todocal/internal/model"
	"github.com/nhle/todocal/internal/service"
	"github.com/nhle/todocal/internal/view"
)

// todayLoadedMsg carries the Today tab's todos for load generation gen.
type todayLoadedMsg struct {
	gen   int
	todos []model.Todo
	err   error
}

// monthLoadedMsg carries the calendar data for load generation gen.
type monthLoadedMsg struct {
	gen   int
	month service.Month
	err   error
}

// categoriesLoadedMsg carries every category.
type categoriesLoadedMsg struct {
	categories []model.Category
	err        error
}

// todoSavedMsg is sent after a create, update or toggle.
type todoSavedMsg struct {
	id   string
	verb string
	todo *model.Todo
	err  error
}

// todoDeletedMsg is sent after a todo is deleted.
type todoDeletedMsg struct {
	id  string
	err error
}

// todoEditReadyMsg carries the fresh copy of the todo to edit.
type todoEditReadyMsg struct {
	todo *model.Todo
	err  error
}

// reload bumps the load generation and re-runs every query for the
// current state. Results from older generations are dropped on arrival.
func (m *Model) reload() tea.Cmd {
	m.gen++
	gen := m.gen
	svc := m.svc
	st := m.state
	now := m.now()

	loadToday := func() tea.Msg {
		todos, err := svc.Query(context.Background(), st.ListQuery(now))
		return todayLoadedMsg{gen: gen, todos: todos, err: err}
	}
	loadMonth := func() tea.Msg {
		month, err := svc.LoadMonth(context.Background(), st, now)
		return monthLoadedMsg{gen: gen, month: month, err: err}
	}
	return tea.Batch(loadToday, loadMonth)
}

func (m *Model) loadCategories() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		cats, err := svc.ListCategories(context.Background())
		return categoriesLoadedMsg{categories: cats, err: err}
	}
}

func (m *Model) createTodo(in model.TodoInput) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		todo, err := svc.CreateTodo(context.Background(), in)
		msg := todoSavedMsg{verb: "Added", todo: todo, err: err}
		if todo != nil {
			msg.id = todo.ID
		}
		return msg
	}
}

func (m *Model) updateTodo(id string, patch model.TodoPatch) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		todo, err := svc.UpdateTodo(context.Background(), id, patch)
		return todoSavedMsg{id: id, verb: "Updated", todo: todo, err: err}
	}
}

func (m *Model) toggleTodo(id string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		todo, err := svc.ToggleTodo(context.Background(), id)
		verb := "Reopened"
		if todo != nil && todo.Completed {
			verb = "Completed"
		}
		return todoSavedMsg{id: id, verb: verb, todo: todo, err: err}
	}
}

func (m *Model) removeDueDate(id string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		todo, err := svc.RemoveDueDate(context.Background(), id)
		return todoSavedMsg{id: id, verb: "Cleared due date of", todo: todo, err: err}
	}
}

func (m *Model) deleteTodo(id string) tea.Cmd {
	m.deleted[id] = true
	svc := m.svc
	return func() tea.Msg {
		return todoDeletedMsg{id: id, err: svc.DeleteTodo(context.Background(), id)}
	}
}

// startEdit fetches the latest copy of the todo before opening the form.
func (m *Model) startEdit(id string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		todo, err := svc.GetTodo(context.Background(), id)
		return todoEditReadyMsg{todo: todo, err: err}
	}
}

// handleSaved reports a write result. Results for todos deleted in the
// meantime are dropped silently.
func (m *Model) handleSaved(msg todoSavedMsg) tea.Cmd {
	if msg.err != nil {
		if m.deleted[msg.id] && errors.Is(msg.err, model.ErrNotFound) {
			return nil
		}
		m.setError(msg.err)
		return nil
	}
	if m.deleted[msg.id] {
		return nil
	}
	m.setStatus(msg.verb + " \"" + msg.todo.Title + "\"")
	return m.reload()
}

func (m *Model) handleDeleted(msg todoDeletedMsg) tea.Cmd {
	if msg.err != nil {
		delete(m.deleted, msg.id)
		m.setError(msg.err)
		return nil
	}
	m.setStatus("Deleted todo")
	return m.reload()
}

// cycleCategory advances the category filter: none, then each category
// in name order, then none again.
func (m *Model) cycleCategory() {
	if len(m.categories) == 0 {
		m.state.SetCategory("")
		return
	}
	if m.state.CategoryID == "" {
		m.state.SetCategory(m.categories[0].ID)
		return
	}
	for i, c := range m.categories {
		if c.ID == m.state.CategoryID {
			if i+1 < len(m.categories) {
				m.state.SetCategory(m.categories[i+1].ID)
			} else {
				m.state.SetCategory("")
			}
			return
		}
	}
	m.state.SetCategory("")
}

// categoryByName finds a category case-sensitively; "none" clears.
func (m *Model) categoryByName(name string) (string, bool) {
	if name == "none" {
		return "", true
	}
	for _, c := range m.categories {
		if c.Name == name {
			return c.ID, true
		}
	}
	return "", false
}

// filterSummary describes the active filters for the header.
func (m Model) filterSummary() string {
	s := string(m.state.Status)
	if c, ok := model.FindCategory(m.categories, &m.state.CategoryID); ok {
		s += " · " + c.Name
	}
	return s
}

// addDue is the due date pre-filled by the add form.
func (m Model) addDue() *time.Time {
	if m.state.Tab == view.TabCalendar {
		return m.state.Selected
	}
	today := m.now()
	return &today
}
