package categorymgr

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todocal/internal/keys"
	"github.com/nhle/todocal/internal/model"
	"github.com/nhle/todocal/internal/theme"
)

// Service is the subset of the application service the manager needs.
type Service interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, in model.CategoryInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// CloseMsg signals the parent to close the category view.
type CloseMsg struct{}

// ChangedMsg signals that categories were modified.
type ChangedMsg struct{}

// draft holds prompt values on the heap so huh's Value pointers stay
// valid across model copies.
type draft struct {
	name    string
	color   string
	confirm bool
}

// prompt is an open form and the command it yields once completed.
type prompt struct {
	form   *huh.Form
	submit func() tea.Cmd
}

type loadedMsg struct {
	categories []model.Category
	err        error
}

// resultMsg reports a finished create or delete.
type resultMsg struct {
	done string
	err  error
}

// Model lists categories and hosts the create and delete prompts.
type Model struct {
	svc        Service
	keys       *keys.KeyMap
	categories []model.Category
	cursor     int
	prompt     *prompt
	draft      *draft
	status     string
	width      int
	height     int
}

// New creates a new category manager model.
func New(svc Service, k *keys.KeyMap, width, height int) Model {
	return Model{
		svc:    svc,
		keys:   k,
		draft:  &draft{},
		width:  width,
		height: height,
	}
}

// Init loads categories.
func (m Model) Init() tea.Cmd {
	return m.load()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, nil
		}
		m.categories = msg.categories
		m.move(0)
		return m, nil

	case resultMsg:
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, nil
		}
		m.status = msg.done
		return m, tea.Batch(m.load(), func() tea.Msg { return ChangedMsg{} })

	case tea.KeyMsg:
		if m.prompt == nil {
			return m.handleListKey(msg)
		}
	}

	if m.prompt != nil {
		return m.updatePrompt(msg)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return CloseMsg{} }
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Add):
		return m, m.openCreate()
	case key.Matches(msg, m.keys.Delete):
		if c, ok := m.selected(); ok {
			return m, m.openDelete(c)
		}
	}
	return m, nil
}

// updatePrompt forwards msg to the open form. A finished form is closed
// before its command runs, so it submits once.
func (m Model) updatePrompt(msg tea.Msg) (Model, tea.Cmd) {
	f, cmd := m.prompt.form.Update(msg)
	if form, ok := f.(*huh.Form); ok {
		m.prompt.form = form
	}

	switch m.prompt.form.State {
	case huh.StateCompleted:
		submit := m.prompt.submit
		m.prompt = nil
		return m, submit()
	case huh.StateAborted:
		m.prompt = nil
		return m, nil
	}
	return m, cmd
}

func (m *Model) openCreate() tea.Cmd {
	*m.draft = draft{color: model.DefaultCategoryColor}
	d, svc := m.draft, m.svc

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Category name").
				Value(&d.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("Category name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Color").
				Placeholder(model.DefaultCategoryColor).
				Value(&d.color).
				Validate(func(s string) error {
					if s != "" && !model.IsHexColor(s) {
						return fmt.Errorf("Invalid color format")
					}
					return nil
				}),
		),
	).WithWidth(m.formWidth())

	m.prompt = &prompt{form: form, submit: func() tea.Cmd {
		in := model.CategoryInput{Name: d.name, Color: d.color}
		return func() tea.Msg {
			_, err := svc.CreateCategory(context.Background(), in)
			return resultMsg{done: "Category saved", err: err}
		}
	}}
	return form.Init()
}

// openDelete asks before deleting c. The target is fixed when the prompt
// opens, so a reload underneath it cannot change what gets deleted.
func (m *Model) openDelete(c model.Category) tea.Cmd {
	*m.draft = draft{}
	d, svc := m.draft, m.svc

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete category %q?", c.Name)).
				Description("Todos in this category keep their other fields.").
				Affirmative("Yes, delete").
				Negative("Cancel").
				Value(&d.confirm),
		),
	).WithWidth(m.formWidth())

	m.prompt = &prompt{form: form, submit: func() tea.Cmd {
		if !d.confirm {
			return nil
		}
		return func() tea.Msg {
			return resultMsg{done: "Category deleted", err: svc.DeleteCategory(context.Background(), c.ID)}
		}
	}}
	return form.Init()
}

// move shifts the cursor by delta, clamped to the list.
func (m *Model) move(delta int) {
	m.cursor += delta
	if m.cursor >= len(m.categories) {
		m.cursor = len(m.categories) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selected() (model.Category, bool) {
	if m.cursor < len(m.categories) {
		return m.categories[m.cursor], true
	}
	return model.Category{}, false
}

// View renders the open prompt, or the list.
func (m Model) View() string {
	box := lipgloss.NewStyle().Padding(1, 2)
	if m.prompt != nil {
		return box.Render(m.prompt.form.View())
	}

	var b strings.Builder
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	b.WriteString(title.Render(fmt.Sprintf("Categories (%d)", len(m.categories))))
	b.WriteString("\n\n")

	if len(m.categories) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorGray).Italic(true).
			Render("No categories yet. Press 'n' to create one."))
	}
	hex := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	for i, c := range m.categories {
		row := theme.CategoryStyle(c.Color).Render("●") + " " + c.Name + "  " + hex.Render(c.Color)
		style := theme.ListItemStyle
		if i == m.cursor {
			style = theme.SelectedItemStyle
		}
		b.WriteString(style.Render(row))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorYellow).Italic(true).Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.HelpStyle.Render("n new | d delete | esc back"))

	return box.Width(m.width).Height(m.height).Render(b.String())
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	return max(40, min(m.width-4, 100))
}

func (m Model) load() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		cats, err := svc.ListCategories(context.Background())
		return loadedMsg{categories: cats, err: err}
	}
}
