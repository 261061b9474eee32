package service

import (
	"context"
	"time"

	"github.com/nhle/todocal/internal/calendar"
	"github.com/nhle/todocal/internal/model"
	"github.com/nhle/todocal/internal/store"
	"github.com/nhle/todocal/internal/view"
)

// CreateTodo validates in and stores the resulting todo.
func (s *Service) CreateTodo(ctx context.Context, in model.TodoInput) (*model.Todo, error) {
	todo, err := model.CreateTodo(in)
	if err != nil {
		return nil, err
	}

	created, err := s.todos.Create(ctx, todo.Fields())
	if err != nil {
		return nil, err
	}

	s.logger.Info("todo created", "id", created.ID, "due", created.DueKey())
	return created, nil
}

// GetTodo returns the todo with id or a *model.NotFoundError.
func (s *Service) GetTodo(ctx context.Context, id string) (*model.Todo, error) {
	todo, err := s.todos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, &model.NotFoundError{Entity: "todo", ID: id}
	}
	return todo, nil
}

// UpdateTodo applies patch to the stored todo.
func (s *Service) UpdateTodo(ctx context.Context, id string, patch model.TodoPatch) (*model.Todo, error) {
	existing, err := s.GetTodo(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := model.UpdateTodo(*existing, patch)
	if err != nil {
		return nil, err
	}

	saved, err := s.todos.Update(ctx, next)
	if err != nil {
		return nil, err
	}

	s.logger.Info("todo updated", "id", id)
	return saved, nil
}

// RemoveDueDate clears the due date of the todo with id.
func (s *Service) RemoveDueDate(ctx context.Context, id string) (*model.Todo, error) {
	return s.UpdateTodo(ctx, id, model.TodoPatch{DueDate: model.Clear[time.Time]()})
}

// ToggleTodo flips completion of the todo with id.
func (s *Service) ToggleTodo(ctx context.Context, id string) (*model.Todo, error) {
	existing, err := s.GetTodo(ctx, id)
	if err != nil {
		return nil, err
	}

	saved, err := s.todos.Update(ctx, model.ToggleComplete(*existing))
	if err != nil {
		return nil, err
	}

	s.logger.Info("todo toggled", "id", id, "completed", saved.Completed)
	return saved, nil
}

// DeleteTodo removes the todo with id; it must exist.
func (s *Service) DeleteTodo(ctx context.Context, id string) error {
	if _, err := s.GetTodo(ctx, id); err != nil {
		return err
	}
	if err := s.todos.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("todo deleted", "id", id)
	return nil
}

// ListTodos returns the todos matching filter.
func (s *Service) ListTodos(ctx context.Context, filter store.TodoFilter) ([]model.Todo, error) {
	return s.todos.FindAll(ctx, filter)
}

// Query runs a view query.
func (s *Service) Query(ctx context.Context, q view.Query) ([]model.Todo, error) {
	return s.todos.FindAll(ctx, view.BuildFilter(q))
}

// Month is the data behind one calendar screen.
type Month struct {
	Grid [][]calendar.Day
	// Todos are every todo due in the displayed month under the active
	// filters.
	Todos []model.Todo
	// Week holds the todos due in the week containing today.
	Week []model.Todo
	// Day holds the todos due on the selected date; nil without a selection.
	Day []model.Todo
}

// LoadMonth fetches the displayed month, this week and the selected day for
// st, and builds the grid with today taken from now.
func (s *Service) LoadMonth(ctx context.Context, st view.State, now time.Time) (Month, error) {
	todos, err := s.Query(ctx, st.MonthQuery())
	if err != nil {
		return Month{}, err
	}

	week, err := s.Query(ctx, st.WeekQuery(now))
	if err != nil {
		return Month{}, err
	}

	m := Month{
		Grid:  calendar.MonthGridAt(st.Month.Year(), st.Month.Month(), model.DueDayKeys(todos), now),
		Todos: todos,
		Week:  week,
	}

	if q, ok := st.DayQuery(); ok {
		m.Day, err = s.Query(ctx, q)
		if err != nil {
			return Month{}, err
		}
	}

	return m, nil
}
