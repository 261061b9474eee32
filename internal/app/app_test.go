package app

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todocal/internal/model"
	"github.com/nhle/todocal/internal/service"
	"github.com/nhle/todocal/internal/store"
	calview "github.com/nhle/todocal/internal/ui/calendar"
	"github.com/nhle/todocal/internal/view"
	"github.com/nhle/todocal/tests/testutil"
)

var fixedNow = time.Date(2026, time.February, 18, 9, 30, 0, 0, time.Local)

type harness struct {
	t   *testing.T
	svc *service.Service
	m   Model
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	s := testutil.NewTestStore(t)
	svc := service.New(s.Todos(), s.Categories(), nil)

	m := New(svc, nil)
	m.now = func() time.Time { return fixedNow }
	m.state = view.NewState(fixedNow)

	h := &harness{t: t, svc: svc, m: m}
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return h
}

// run executes cmd and feeds every resulting message back into the model
// until no commands remain.
func (h *harness) run(cmd tea.Cmd) {
	h.t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			next, nextCmd := h.m.Update(msg)
			h.m = next.(Model)
			queue = append(queue, nextCmd)
		}
	}
}

func (h *harness) send(msg tea.Msg) {
	h.t.Helper()
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	h.run(cmd)
}

func (h *harness) press(s string) {
	h.t.Helper()
	switch s {
	case "tab":
		h.send(tea.KeyMsg{Type: tea.KeyTab})
	case "esc":
		h.send(tea.KeyMsg{Type: tea.KeyEsc})
	default:
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	}
}

func (h *harness) addTodo(title string, due *time.Time, completed bool) *model.Todo {
	h.t.Helper()
	ctx := context.Background()
	todo, err := h.svc.CreateTodo(ctx, model.TodoInput{Title: title, DueDate: due})
	require.NoError(h.t, err)
	if completed {
		todo, err = h.svc.ToggleTodo(ctx, todo.ID)
		require.NoError(h.t, err)
	}
	return todo
}

func TestTodayListShowsTodosDueToday(t *testing.T) {
	h := newHarness(t)
	h.addTodo("due today", testutil.Ptr(testutil.Day(2026, 2, 18)), false)
	h.addTodo("due tomorrow", testutil.Ptr(testutil.Day(2026, 2, 19)), false)
	h.addTodo("no date", nil, false)

	h.run(h.m.Init())

	assert.Equal(t, 1, h.m.todayList.Len())
	got, ok := h.m.todayList.Selected()
	require.True(t, ok)
	assert.Equal(t, "due today", got.Title)
}

func TestStatusFilterKeys(t *testing.T) {
	h := newHarness(t)
	today := testutil.Ptr(testutil.Day(2026, 2, 18))
	h.addTodo("open", today, false)
	h.addTodo("done", today, true)
	h.run(h.m.Init())
	assert.Equal(t, 2, h.m.todayList.Len())

	h.press("3")
	assert.Equal(t, view.StatusCompleted, h.m.state.Status)
	assert.Equal(t, 1, h.m.todayList.Len())

	h.press("2")
	got, _ := h.m.todayList.Selected()
	assert.Equal(t, "open", got.Title)

	h.press("0")
	assert.Equal(t, view.StatusAll, h.m.state.Status)
	assert.Equal(t, 2, h.m.todayList.Len())
}

func TestToggleAndDeleteKeys(t *testing.T) {
	h := newHarness(t)
	todo := h.addTodo("water plants", testutil.Ptr(testutil.Day(2026, 2, 18)), false)
	h.run(h.m.Init())

	h.press("x")
	stored, err := h.svc.GetTodo(context.Background(), todo.ID)
	require.NoError(t, err)
	assert.True(t, stored.Completed)
	assert.Contains(t, h.m.statusMsg, "Completed")

	h.press("d")
	_, err = h.svc.GetTodo(context.Background(), todo.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Equal(t, 0, h.m.todayList.Len())
	assert.Contains(t, h.m.View(), "No todos yet")
}

func TestRemoveDueKey(t *testing.T) {
	h := newHarness(t)
	todo := h.addTodo("call mom", testutil.Ptr(testutil.Day(2026, 2, 18)), false)
	h.run(h.m.Init())

	h.press("D")
	stored, err := h.svc.GetTodo(context.Background(), todo.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.DueDate)
	assert.Equal(t, 0, h.m.todayList.Len())
}

func TestStaleLoadIsDropped(t *testing.T) {
	h := newHarness(t)
	h.run(h.m.Init())
	current := h.m.gen

	h.send(todayLoadedMsg{gen: current - 1, todos: []model.Todo{{ID: "stale", Title: "stale"}}})
	assert.Equal(t, 0, h.m.todayList.Len())

	h.send(todayLoadedMsg{gen: current, todos: []model.Todo{{ID: "fresh", Title: "fresh"}}})
	assert.Equal(t, 1, h.m.todayList.Len())
}

func TestSaveResultForDeletedTodoIsDropped(t *testing.T) {
	h := newHarness(t)
	h.m.deleted["gone"] = true

	h.send(todoSavedMsg{id: "gone", verb: "Updated", err: &model.NotFoundError{Entity: "todo", ID: "gone"}})
	assert.Empty(t, h.m.errMsg)

	h.send(todoSavedMsg{id: "other", verb: "Updated", err: &model.NotFoundError{Entity: "todo", ID: "other"}})
	assert.Equal(t, "todo other not found", h.m.errMsg)
}

func TestCalendarDaySelection(t *testing.T) {
	h := newHarness(t)
	h.addTodo("dentist", testutil.Ptr(testutil.Day(2026, 2, 10)), false)
	h.addTodo("march thing", testutil.Ptr(testutil.Day(2026, 3, 2)), false)
	h.run(h.m.Init())

	h.press("tab")
	assert.Equal(t, view.TabCalendar, h.m.state.Tab)

	h.send(calview.DaySelectedMsg{Day: testutil.Day(2026, 2, 10)})
	require.NotNil(t, h.m.state.Selected)
	assert.True(t, h.m.listFocus)
	assert.Equal(t, 1, h.m.dayList.Len())
	// 2026-02-10 is outside the week of the 18th.
	assert.Equal(t, 0, h.m.weekList.Len())

	h.press("esc")
	assert.False(t, h.m.listFocus)
	h.press("esc")
	assert.Nil(t, h.m.state.Selected)
	assert.Equal(t, 0, h.m.dayList.Len())
}

func TestMonthStep(t *testing.T) {
	h := newHarness(t)
	h.run(h.m.Init())

	h.send(calview.MonthStepMsg{Delta: 1})
	assert.Equal(t, time.March, h.m.state.Month.Month())

	h.send(calview.MonthStepMsg{Delta: -1})
	h.send(calview.MonthStepMsg{Delta: -1})
	assert.Equal(t, time.January, h.m.state.Month.Month())
	assert.Equal(t, 2026, h.m.state.Month.Year())
}

func TestCycleCategory(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	home, err := h.svc.CreateCategory(ctx, model.CategoryInput{Name: "Home"})
	require.NoError(t, err)
	work, err := h.svc.CreateCategory(ctx, model.CategoryInput{Name: "Work"})
	require.NoError(t, err)
	h.run(h.m.Init())

	h.press("c")
	assert.Equal(t, home.ID, h.m.state.CategoryID)
	assert.Contains(t, h.m.filterSummary(), "Home")
	h.press("c")
	assert.Equal(t, work.ID, h.m.state.CategoryID)
	h.press("c")
	assert.Empty(t, h.m.state.CategoryID)
}

func TestAddPrefillsDueDate(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, "2026-02-18", dayKeyOf(h.m.addDue()))

	h.m.state.SetTab(view.TabCalendar)
	assert.Nil(t, h.m.addDue())

	sel := testutil.Day(2026, 2, 10)
	h.m.state.SelectDate(sel)
	assert.Equal(t, "2026-02-10", dayKeyOf(h.m.addDue()))
}

func TestEditOpensFormOnlyAfterFreshCopy(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	todo := h.addTodo("First", testutil.Ptr(testutil.Day(2026, 2, 18)), false)
	h.run(h.m.Init())

	// Hold the fetch so keys arrive while it is in flight.
	next, fetch := h.m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	h.m = next.(Model)
	require.NotNil(t, fetch)
	assert.Equal(t, ViewMain, h.m.currentView)
	mode, id := h.m.state.Editor()
	assert.Equal(t, view.EditorEdit, mode)
	assert.Equal(t, todo.ID, id)

	h.press("z")
	todos, err := h.svc.ListTodos(ctx, store.TodoFilter{})
	require.NoError(t, err)
	assert.Len(t, todos, 1)

	ready := fetch()
	require.IsType(t, todoEditReadyMsg{}, ready)
	next, _ = h.m.Update(ready)
	h.m = next.(Model)
	assert.Equal(t, ViewForm, h.m.currentView)
	assert.True(t, h.m.todoForm.Active())
	editID, editing := h.m.todoForm.Editing()
	assert.True(t, editing)
	assert.Equal(t, todo.ID, editID)
}

func TestEditResultAfterAddIsIgnored(t *testing.T) {
	h := newHarness(t)
	todo := h.addTodo("First", nil, false)

	h.m.state.OpenEdit(todo.ID)
	h.m.state.OpenAdd()
	next, _ := h.m.Update(todoEditReadyMsg{todo: todo})
	h.m = next.(Model)

	_, editing := h.m.todoForm.Editing()
	assert.False(t, editing)
	assert.Equal(t, ViewMain, h.m.currentView)
}

func dayKeyOf(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
