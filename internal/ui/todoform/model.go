package todoform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todocal/internal/calendar"
	"github.com/nhle/todocal/internal/model"
	"github.com/nhle/todocal/internal/theme"
)

// TodoCreateMsg is dispatched when the add form is submitted.
type TodoCreateMsg struct {
	Input model.TodoInput
}

// TodoUpdateMsg is dispatched when the edit form is submitted.
type TodoUpdateMsg struct {
	ID    string
	Patch model.TodoPatch
}

// TodoFormCancelMsg is dispatched when the user cancels the form.
type TodoFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	priority    model.Priority
	dueDate     string
	categoryID  string
	completed   bool
}

// Model is the Bubble Tea model for the todo create/edit form.
type Model struct {
	form       *huh.Form
	fb         *formBindings
	editMode   bool
	editID     string
	categories []model.Category
	width      int
	height     int
}

// New creates a new todo form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{priority: model.DefaultPriority},
		width:  width,
		height: height,
	}
}

// SetCategories sets the choices for the category selector.
func (m *Model) SetCategories(categories []model.Category) {
	m.categories = categories
}

// StartCreate initializes the form for a new todo. due, when non-nil,
// pre-fills the due date.
func (m *Model) StartCreate(due *time.Time) tea.Cmd {
	m.editMode = false
	m.editID = ""
	*m.fb = formBindings{priority: model.DefaultPriority}
	if due != nil {
		m.fb.dueDate = calendar.DayKey(*due)
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing todo.
func (m *Model) StartEdit(todo model.Todo) tea.Cmd {
	m.editMode = true
	m.editID = todo.ID
	*m.fb = bindingsFor(todo)
	m.form = m.buildForm()
	return m.form.Init()
}

// Active reports whether a form is open and waiting for input.
func (m Model) Active() bool {
	return m.form != nil
}

// Editing reports whether the form edits an existing todo, and which.
func (m Model) Editing() (string, bool) {
	return m.editID, m.editMode
}

// Update handles messages for the todo form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	// A finished form is dropped so it reports its result exactly once.
	switch m.form.State {
	case huh.StateCompleted:
		submit := m.handleSubmit()
		m.form = nil
		return m, submit
	case huh.StateAborted:
		m.form = nil
		return m, func() tea.Msg { return TodoFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the todo form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Todo"
	if m.editMode {
		titleText = "Edit Todo"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What needs to be done?").
			Value(&m.fb.title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Description").
			Placeholder("Optional details...").
			Value(&m.fb.description),
		huh.NewSelect[model.Priority]().
			Title("Priority").
			Options(
				huh.NewOption("High", model.PriorityHigh),
				huh.NewOption("Medium", model.PriorityMedium),
				huh.NewOption("Low", model.PriorityLow),
			).
			Value(&m.fb.priority),
		huh.NewInput().
			Title("Due Date").
			Placeholder("YYYY-MM-DD (empty for none)").
			Value(&m.fb.dueDate).
			Validate(validateOptionalDate),
		m.categoryField(),
	}

	if m.editMode {
		fields = append(fields,
			huh.NewConfirm().
				Title("Completed").
				Affirmative("Done").
				Negative("Open").
				Value(&m.fb.completed),
		)
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) categoryField() huh.Field {
	opts := []huh.Option[string]{
		huh.NewOption("None", ""),
	}
	for _, c := range m.categories {
		opts = append(opts, huh.NewOption(c.Name, c.ID))
	}
	return huh.NewSelect[string]().
		Title("Category").
		Options(opts...).
		Value(&m.fb.categoryID)
}

func (m Model) handleSubmit() tea.Cmd {
	fb := *m.fb

	if m.editMode {
		id := m.editID
		patch, err := fb.patch()
		if err != nil {
			return func() tea.Msg { return TodoFormCancelMsg{} }
		}
		return func() tea.Msg { return TodoUpdateMsg{ID: id, Patch: patch} }
	}

	in, err := fb.input()
	if err != nil {
		return func() tea.Msg { return TodoFormCancelMsg{} }
	}
	return func() tea.Msg { return TodoCreateMsg{Input: in} }
}

func bindingsFor(todo model.Todo) formBindings {
	fb := formBindings{
		title:       todo.Title,
		description: todo.Description,
		priority:    model.NormalizePriority(todo.Priority),
		completed:   todo.Completed,
	}
	if todo.DueDate != nil {
		fb.dueDate = calendar.DayKey(*todo.DueDate)
	}
	if todo.CategoryID != nil {
		fb.categoryID = *todo.CategoryID
	}
	return fb
}

// input converts the bindings into a create request.
func (fb formBindings) input() (model.TodoInput, error) {
	due, err := parseDue(fb.dueDate)
	if err != nil {
		return model.TodoInput{}, err
	}
	return model.TodoInput{
		Title:       fb.title,
		Description: fb.description,
		CategoryID:  fb.categoryID,
		Priority:    fb.priority,
		DueDate:     due,
	}, nil
}

// patch converts the bindings into an update. The form always carries
// every field, so emptied optional fields become explicit clears.
func (fb formBindings) patch() (model.TodoPatch, error) {
	due, err := parseDue(fb.dueDate)
	if err != nil {
		return model.TodoPatch{}, err
	}

	p := model.TodoPatch{
		Title:     model.Set(fb.title),
		Priority:  model.Set(fb.priority),
		Completed: model.Set(fb.completed),
		DueDate:   model.SetOrClear(due),
	}

	if strings.TrimSpace(fb.description) == "" {
		p.Description = model.Clear[string]()
	} else {
		p.Description = model.Set(fb.description)
	}

	if fb.categoryID == "" {
		p.CategoryID = model.Clear[string]()
	} else {
		p.CategoryID = model.Set(fb.categoryID)
	}

	return p, nil
}

func parseDue(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := calendar.ParseDayKey(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	if _, err := parseDue(s); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}
