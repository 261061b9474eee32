package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todocal/internal/calendar"
	"github.com/nhle/todocal/internal/model"
	"github.com/nhle/todocal/internal/view"
)

func newServiceWithFakes() (*fakeTodoRepo, *fakeCategoryRepo, *Service) {
	todos := newFakeTodoRepo()
	cats := newFakeCategoryRepo()
	return todos, cats, New(todos, cats, nil)
}

func localDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestCreateTodo_ValidationNeverReachesStore(t *testing.T) {
	todos, _, svc := newServiceWithFakes()
	todos.err = errors.New("must not be called")

	_, err := svc.CreateTodo(context.Background(), model.TodoInput{Title: "   "})
	require.ErrorIs(t, err, model.ErrValidation)
	assert.Equal(t, "Title is required", err.Error())
}

func TestCreateTodo_DefaultsPriority(t *testing.T) {
	_, _, svc := newServiceWithFakes()

	todo, err := svc.CreateTodo(context.Background(), model.TodoInput{Title: "x"})
	require.NoError(t, err)
	assert.Equal(t, model.PriorityMedium, todo.Priority)
	assert.False(t, todo.Completed)
}

func TestGetUpdateToggleDelete_NotFound(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newServiceWithFakes()

	_, err := svc.GetTodo(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = svc.UpdateTodo(ctx, "missing", model.TodoPatch{Title: model.Set("x")})
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = svc.ToggleTodo(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)

	err = svc.DeleteTodo(ctx, "missing")
	var nf *model.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "todo missing not found", nf.Error())
}

func TestStorageErrorsPassThrough(t *testing.T) {
	todos, _, svc := newServiceWithFakes()
	cause := &model.StorageError{Op: "querying todos", Err: errors.New("connection refused")}
	todos.err = cause

	_, err := svc.ListTodos(context.Background(), view.BuildFilter(view.Query{}))
	assert.Same(t, cause, err)

	_, err = svc.GetTodo(context.Background(), "x")
	assert.Same(t, cause, err)
}

func TestUpdateTodo_InvalidPatchLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newServiceWithFakes()

	todo, err := svc.CreateTodo(ctx, model.TodoInput{Title: "original"})
	require.NoError(t, err)

	_, err = svc.UpdateTodo(ctx, todo.ID, model.TodoPatch{Title: model.Set("")})
	require.ErrorIs(t, err, model.ErrValidation)

	got, err := svc.GetTodo(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Title)
}

func TestRemoveDueDate(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newServiceWithFakes()

	due := localDay(2026, 2, 10)
	todo, err := svc.CreateTodo(ctx, model.TodoInput{Title: "x", DueDate: &due})
	require.NoError(t, err)

	updated, err := svc.RemoveDueDate(ctx, todo.ID)
	require.NoError(t, err)
	assert.Nil(t, updated.DueDate)
}

func TestToggleTodo_RoundTrip(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newServiceWithFakes()

	todo, err := svc.CreateTodo(ctx, model.TodoInput{Title: "x"})
	require.NoError(t, err)

	once, err := svc.ToggleTodo(ctx, todo.ID)
	require.NoError(t, err)
	assert.True(t, once.Completed)

	twice, err := svc.ToggleTodo(ctx, todo.ID)
	require.NoError(t, err)
	assert.False(t, twice.Completed)
	assert.False(t, twice.UpdatedAt.Before(once.UpdatedAt))
}

func TestCreateCategory_Duplicate(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newServiceWithFakes()

	_, err := svc.CreateCategory(ctx, model.CategoryInput{Name: "Work"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, model.CategoryInput{Name: " Work "})
	require.ErrorIs(t, err, model.ErrValidation)
	assert.Equal(t, "Category already exists", err.Error())
}

func TestDeleteCategory(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newServiceWithFakes()

	err := svc.DeleteCategory(ctx, "nope")
	assert.ErrorIs(t, err, model.ErrNotFound)

	cat, err := svc.CreateCategory(ctx, model.CategoryInput{Name: "Home", Color: "#0f0"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteCategory(ctx, cat.ID))

	cats, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestLoadMonth_MarksDueDay(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newServiceWithFakes()

	feb10 := localDay(2026, 2, 10)
	created, err := svc.CreateTodo(ctx, model.TodoInput{Title: "A", DueDate: &feb10})
	require.NoError(t, err)

	now := time.Date(2026, 2, 18, 12, 0, 0, 0, time.Local)
	st := view.NewState(now)
	st.SetTab(view.TabCalendar)

	m, err := svc.LoadMonth(ctx, st, now)
	require.NoError(t, err)
	require.Len(t, m.Todos, 1)
	assert.Empty(t, m.Week)
	assert.Nil(t, m.Day)

	var marked []string
	for _, d := range calendar.Flatten(m.Grid) {
		if d.HasTodos {
			marked = append(marked, d.Key())
		}
	}
	assert.Equal(t, []string{"2026-02-10"}, marked)

	st.SelectDate(feb10)
	m, err = svc.LoadMonth(ctx, st, now)
	require.NoError(t, err)
	require.Len(t, m.Day, 1)
	assert.Equal(t, created.ID, m.Day[0].ID)

	st.SelectDate(localDay(2026, 2, 11))
	m, err = svc.LoadMonth(ctx, st, now)
	require.NoError(t, err)
	assert.Empty(t, m.Day)
}

func TestLoadMonth_WeekBucket(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newServiceWithFakes()

	sat := localDay(2026, 2, 21)
	nextSun := localDay(2026, 2, 22)
	_, err := svc.CreateTodo(ctx, model.TodoInput{Title: "in week", DueDate: &sat})
	require.NoError(t, err)
	_, err = svc.CreateTodo(ctx, model.TodoInput{Title: "next week", DueDate: &nextSun})
	require.NoError(t, err)

	now := time.Date(2026, 2, 18, 8, 0, 0, 0, time.Local)
	m, err := svc.LoadMonth(ctx, view.NewState(now), now)
	require.NoError(t, err)
	require.Len(t, m.Week, 1)
	assert.Equal(t, "in week", m.Week[0].Title)
	assert.Len(t, m.Todos, 2)
}

func TestQuery_CompletedInCategory(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newServiceWithFakes()

	a, err := svc.CreateTodo(ctx, model.TodoInput{Title: "a", CategoryID: "cat-1"})
	require.NoError(t, err)
	_, err = svc.CreateTodo(ctx, model.TodoInput{Title: "b", CategoryID: "cat-1"})
	require.NoError(t, err)
	_, err = svc.CreateTodo(ctx, model.TodoInput{Title: "c", CategoryID: "cat-2"})
	require.NoError(t, err)
	_, err = svc.ToggleTodo(ctx, a.ID)
	require.NoError(t, err)

	got, err := svc.Query(ctx, view.Query{Status: view.StatusCompleted, CategoryID: "cat-1"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)
}
