package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todocal/internal/calendar"
	"github.com/nhle/todocal/internal/keys"
	"github.com/nhle/todocal/internal/model"
	"github.com/nhle/todocal/internal/service"
	appsync "github.com/nhle/todocal/internal/sync"
	"github.com/nhle/todocal/internal/theme"
	"github.com/nhle/todocal/internal/ui"
	calview "github.com/nhle/todocal/internal/ui/calendar"
	"github.com/nhle/todocal/internal/ui/categorymgr"
	"github.com/nhle/todocal/internal/ui/command"
	helpview "github.com/nhle/todocal/internal/ui/help"
	"github.com/nhle/todocal/internal/ui/todoform"
	"github.com/nhle/todocal/internal/ui/todolist"
	"github.com/nhle/todocal/internal/view"
)

// ViewState is the screen currently shown over the tabs.
type ViewState int

const (
	ViewMain ViewState = iota
	ViewForm
	ViewCategories
	ViewHelp
	ViewCommand
)

// Model is the root Bubble Tea model. It owns the view.State and routes
// keys and async results between the sub-views.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	svc          *service.Service
	refresher    *appsync.Refresher
	keys         *keys.KeyMap
	now          func() time.Time

	state      view.State
	categories []model.Category

	todayList    todolist.Model
	calendarGrid calview.Model
	dayList      todolist.Model
	weekList     todolist.Model
	// listFocus moves keys from the grid to the selected-day list.
	listFocus bool

	todoForm    todoform.Model
	categoryMgr categorymgr.Model
	helpView    helpview.Model
	commandView command.Model

	gen     int
	deleted map[string]bool

	statusMsg string
	errMsg    string
	ready     bool
}

// New creates the root model. refresher may be nil, in which case only
// explicit actions reload the views.
func New(svc *service.Service, refresher *appsync.Refresher) Model {
	k := keys.DefaultKeyMap()
	now := time.Now()

	return Model{
		currentView:  ViewMain,
		svc:          svc,
		refresher:    refresher,
		keys:         k,
		now:          time.Now,
		state:        view.NewState(now),
		todayList:    todolist.New("Today", k, 80, 20),
		calendarGrid: calview.New(k, 40),
		dayList:      todolist.New("", k, 40, 10),
		weekList:     todolist.New("This week", k, 40, 10),
		todoForm:     todoform.New(80, 24),
		categoryMgr:  categorymgr.New(svc, k, 80, 24),
		helpView:     helpview.New(k, 80, 24),
		commandView:  command.New(80, 24),
		deleted:      make(map[string]bool),
	}
}

// Init loads categories, which triggers the first reload, and starts
// listening for store changes.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadCategories()}
	if m.refresher != nil {
		cmds = append(cmds, m.refresher.Start())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m.updateActiveView(msg)

	case appsync.ChangedMsg:
		cmds := []tea.Cmd{m.reload()}
		if m.refresher != nil {
			cmds = append(cmds, m.refresher.WaitForNextChange())
		}
		return m, tea.Batch(cmds...)

	case categoriesLoadedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.categories = msg.categories
		m.todoForm.SetCategories(msg.categories)
		if _, ok := model.FindCategory(m.categories, &m.state.CategoryID); !ok {
			m.state.SetCategory("")
		}
		return m, m.reload()

	case todayLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.todayList.SetTitle("Today · " + calendar.FormatDate(m.now()))
		m.todayList.SetEmptyMessage(m.state.EmptyMessage())
		return m, m.todayList.SetTodos(msg.todos, m.categories)

	case monthLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		return m, m.applyMonth(msg.month)

	case todoSavedMsg:
		return m, m.handleSaved(msg)

	case todoDeletedMsg:
		return m, m.handleDeleted(msg)

	case todoEditReadyMsg:
		if msg.err != nil {
			m.state.CloseEditor()
			m.currentView = ViewMain
			m.setError(msg.err)
			return m, nil
		}
		if _, id := m.state.Editor(); id != msg.todo.ID {
			return m, nil
		}
		m.currentView = ViewForm
		return m, m.todoForm.StartEdit(*msg.todo)

	case todoform.TodoCreateMsg:
		m.state.CloseEditor()
		m.currentView = ViewMain
		return m, m.createTodo(msg.Input)

	case todoform.TodoUpdateMsg:
		m.state.CloseEditor()
		m.currentView = ViewMain
		return m, m.updateTodo(msg.ID, msg.Patch)

	case todoform.TodoFormCancelMsg:
		m.state.CloseEditor()
		m.currentView = ViewMain
		return m, nil

	case calview.DaySelectedMsg:
		m.state.SelectDate(msg.Day)
		m.calendarGrid.SetSelected(m.state.Selected)
		m.listFocus = true
		return m, m.reload()

	case calview.MonthStepMsg:
		if msg.Delta < 0 {
			m.state.PrevMonth()
		} else {
			m.state.NextMonth()
		}
		return m, m.reload()

	case categorymgr.CloseMsg:
		m.currentView = ViewMain
		return m, nil

	case categorymgr.ChangedMsg:
		return m, m.loadCategories()

	case command.CommandMsg:
		m.currentView = m.previousView
		return m, m.executeCommand(msg)

	case command.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}
		switch m.currentView {
		case ViewMain:
			return m.handleMainKey(msg)
		case ViewHelp:
			if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Back) {
				m.currentView = m.previousView
				return m, nil
			}
		}
	}

	return m.updateActiveView(msg)
}

func (m Model) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errMsg = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()

	case key.Matches(msg, m.keys.Help):
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil

	case key.Matches(msg, m.keys.Command):
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return m, m.commandView.Focus()

	case key.Matches(msg, m.keys.NextTab):
		if m.state.Tab == view.TabToday {
			m.state.SetTab(view.TabCalendar)
		} else {
			m.state.SetTab(view.TabToday)
		}
		m.listFocus = false
		return m, nil

	case key.Matches(msg, m.keys.FilterAll):
		m.state.SetStatus(view.StatusAll)
		return m, m.reload()

	case key.Matches(msg, m.keys.FilterActive):
		m.state.SetStatus(view.StatusActive)
		return m, m.reload()

	case key.Matches(msg, m.keys.FilterCompleted):
		m.state.SetStatus(view.StatusCompleted)
		return m, m.reload()

	case key.Matches(msg, m.keys.CycleCategory):
		m.cycleCategory()
		return m, m.reload()

	case key.Matches(msg, m.keys.ResetFilters):
		m.state.ResetFilters()
		return m, m.reload()

	case key.Matches(msg, m.keys.Refresh):
		if m.refresher != nil {
			m.refresher.Refresh()
			return m, nil
		}
		return m, m.reload()

	case key.Matches(msg, m.keys.Categories):
		m.previousView = m.currentView
		m.currentView = ViewCategories
		return m, m.categoryMgr.Init()

	case key.Matches(msg, m.keys.Add):
		m.state.OpenAdd()
		m.currentView = ViewForm
		return m, m.todoForm.StartCreate(m.addDue())
	}

	if todo, ok := m.selectedTodo(); ok {
		switch {
		case key.Matches(msg, m.keys.Edit):
			// The form opens once the fresh copy arrives.
			m.state.OpenEdit(todo.ID)
			return m, m.startEdit(todo.ID)
		case key.Matches(msg, m.keys.Toggle):
			return m, m.toggleTodo(todo.ID)
		case key.Matches(msg, m.keys.Delete):
			return m, m.deleteTodo(todo.ID)
		case key.Matches(msg, m.keys.RemoveDue):
			if todo.DueDate == nil {
				return m, nil
			}
			return m, m.removeDueDate(todo.ID)
		}
	}

	if m.state.Tab == view.TabCalendar {
		return m.handleCalendarKey(msg)
	}

	var cmd tea.Cmd
	m.todayList, cmd = m.todayList.Update(msg)
	return m, cmd
}

func (m Model) handleCalendarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.listFocus {
		if key.Matches(msg, m.keys.Back) {
			m.listFocus = false
			return m, nil
		}
		m.dayList, cmd = m.dayList.Update(msg)
		return m, cmd
	}

	if key.Matches(msg, m.keys.Back) && m.state.Selected != nil {
		m.state.ClearSelection()
		m.calendarGrid.SetSelected(nil)
		return m, m.reload()
	}

	m.calendarGrid, cmd = m.calendarGrid.Update(msg)
	return m, cmd
}

// selectedTodo returns the todo the action keys apply to: the Today list
// cursor, or the selected-day list when it has focus.
func (m Model) selectedTodo() (model.Todo, bool) {
	if m.state.Tab == view.TabToday {
		return m.todayList.Selected()
	}
	if m.listFocus {
		return m.dayList.Selected()
	}
	return model.Todo{}, false
}

func (m *Model) applyMonth(month service.Month) tea.Cmd {
	m.calendarGrid.SetGrid(m.state.Month, month.Grid)
	m.calendarGrid.SetSelected(m.state.Selected)

	cmds := []tea.Cmd{m.weekList.SetTodos(month.Week, m.categories)}
	m.weekList.SetEmptyMessage(m.state.EmptyMessage())

	if m.state.Selected != nil {
		m.dayList.SetTitle(calendar.FormatDate(*m.state.Selected))
		m.dayList.SetEmptyMessage("No todos on this day")
		cmds = append(cmds, m.dayList.SetTodos(month.Day, m.categories))
	} else {
		m.listFocus = false
		cmds = append(cmds, m.dayList.SetTodos(nil, nil))
	}
	return tea.Batch(cmds...)
}

// executeCommand handles a parsed command from the palette.
func (m *Model) executeCommand(c command.CommandMsg) tea.Cmd {
	switch c.Name {
	case command.CmdToday:
		m.state.SetTab(view.TabToday)
		return nil
	case command.CmdCalendar:
		m.state.SetTab(view.TabCalendar)
		return nil
	case command.CmdGoto:
		m.state.SetTab(view.TabCalendar)
		m.state.Month = calendar.AddMonths(c.Day, 0)
		if c.DayGiven {
			m.state.SelectDate(c.Day)
		} else {
			m.state.ClearSelection()
		}
		m.calendarGrid.SetSelected(m.state.Selected)
		return m.reload()
	case command.CmdStatus:
		m.state.SetStatus(c.Status)
		return m.reload()
	case command.CmdCategory:
		id, ok := m.categoryByName(c.Arg)
		if !ok {
			m.setError(fmt.Errorf("no category named %q", c.Arg))
			return nil
		}
		m.state.SetCategory(id)
		return m.reload()
	case command.CmdClear:
		m.state.ResetFilters()
		return m.reload()
	case command.CmdNew:
		m.state.OpenAdd()
		m.currentView = ViewForm
		return m.todoForm.StartCreate(m.addDue())
	case command.CmdCategories:
		m.currentView = ViewCategories
		return m.categoryMgr.Init()
	case command.CmdRefresh:
		return m.reload()
	case command.CmdQuit:
		return m.quit()
	}
	return nil
}

func (m *Model) quit() tea.Cmd {
	if m.refresher != nil {
		m.refresher.Stop()
	}
	return tea.Quit
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewForm:
		m.todoForm, cmd = m.todoForm.Update(msg)
	case ViewCategories:
		m.categoryMgr, cmd = m.categoryMgr.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

func (m *Model) resize(width, height int) {
	m.layout = ui.NewLayout(width, height)
	m.ready = true

	w := m.layout.ContentWidth()
	h := m.layout.ContentHeight()

	m.todayList.SetSize(w, h)
	m.todoForm.SetSize(w, h)
	m.categoryMgr.SetSize(w, h)
	m.helpView.SetSize(w, h)
	m.commandView.SetSize(w, h)

	gridWidth := 7*theme.DayStyle.GetWidth() + 2
	side := w - gridWidth - 2
	if side < 20 {
		side = 20
	}
	m.dayList.SetSize(side, h/2)
	m.weekList.SetSize(side, h-h/2)
}

func (m *Model) setStatus(s string) {
	m.statusMsg = s
	m.errMsg = ""
}

func (m *Model) setError(err error) {
	m.errMsg = err.Error()
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("todocal", m.headerStatus())
	tabs := m.layout.RenderTabs(
		[]string{view.TabToday.String(), view.TabCalendar.String()},
		int(m.state.Tab),
	)
	statusBar := m.layout.RenderStatusBar(m.statusLine())

	return m.layout.RenderWithFrame(header, tabs, m.renderContent(), statusBar)
}

func (m Model) renderContent() string {
	switch m.currentView {
	case ViewForm:
		return m.todoForm.View()
	case ViewCategories:
		return m.categoryMgr.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	}

	if m.state.Tab == view.TabToday {
		return m.todayList.View()
	}

	grid := theme.BorderStyle.Render(m.calendarGrid.View())
	var side string
	if m.state.Selected != nil {
		side = lipgloss.JoinVertical(lipgloss.Left, m.dayList.View(), m.weekList.View())
	} else {
		side = m.weekList.View()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, grid, "  ", side)
}

func (m Model) headerStatus() string {
	s := m.filterSummary()
	if m.refresher != nil {
		if last := m.refresher.LastChange(); !last.IsZero() {
			s += " · synced " + last.Format("15:04:05")
		}
	}
	return s
}

// statusLine returns the error, the last action or key hints.
func (m Model) statusLine() string {
	if m.errMsg != "" {
		return theme.ErrorStyle.Render(m.errMsg)
	}

	var hints string
	switch m.currentView {
	case ViewHelp:
		hints = "? close help | esc back"
	case ViewCommand:
		hints = "enter run | esc cancel"
	case ViewForm:
		hints = "enter submit | esc cancel"
	case ViewCategories:
		hints = "n new | d delete | esc back"
	default:
		if m.state.Tab == view.TabCalendar {
			hints = "←→↑↓ move | h/l month | enter select | esc back | n new | 1/2/3 status | c category | ? help"
		} else {
			hints = "n new | e edit | x toggle | d delete | D clear due | 1/2/3 status | c category | tab calendar | ? help"
		}
	}
	if m.statusMsg != "" {
		return m.statusMsg + " | " + hints
	}
	return hints
}
