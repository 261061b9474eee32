package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/nhle/todocal/internal/calendar"
	"github.com/nhle/todocal/internal/model"
)

// TodoStore is the TodoRepository view of a SQLiteStore.
type TodoStore struct {
	*SQLiteStore
}

var todoColumns = []string{
	"id", "title", "description", "category_id", "completed",
	"priority", "due_date", "created_at", "updated_at",
}

// todoRow mirrors the todos table. due_date holds a day key.
type todoRow struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	CategoryID  sql.NullString `db:"category_id"`
	Completed   int            `db:"completed"`
	Priority    int            `db:"priority"`
	DueDate     sql.NullString `db:"due_date"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r todoRow) toModel() (model.Todo, error) {
	t := model.Todo{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed != 0,
		Priority:    model.NormalizePriority(model.Priority(r.Priority)),
		CreatedAt:   r.CreatedAt.Local(),
		UpdatedAt:   r.UpdatedAt.Local(),
	}
	if r.CategoryID.Valid && r.CategoryID.String != "" {
		id := r.CategoryID.String
		t.CategoryID = &id
	}
	if r.DueDate.Valid && r.DueDate.String != "" {
		d, err := calendar.ParseDayKey(r.DueDate.String)
		if err != nil {
			return model.Todo{}, fmt.Errorf("todo %s: %w", r.ID, err)
		}
		t.DueDate = &d
	}
	return t, nil
}

// nullDayKey converts an optional due date to its stored form.
func nullDayKey(d *time.Time) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: calendar.DayKey(*d), Valid: true}
}

func nullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// Create inserts a new todo with a fresh id and timestamps.
func (s *TodoStore) Create(ctx context.Context, f model.TodoFields) (*model.Todo, error) {
	now := time.Now()
	todo := model.Todo{
		ID:          uuid.New().String(),
		Title:       f.Title,
		Description: f.Description,
		CategoryID:  f.CategoryID,
		Completed:   f.Completed,
		Priority:    model.NormalizePriority(f.Priority),
		DueDate:     f.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	query, args, err := sq.Insert("todos").
		Columns(todoColumns...).
		Values(
			todo.ID, todo.Title, todo.Description, nullString(todo.CategoryID),
			boolToInt(todo.Completed), int(todo.Priority), nullDayKey(todo.DueDate),
			now.UTC(), now.UTC(),
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building todo insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, s.fail("creating todo", err)
	}

	s.logger.Debug("todo created", "id", todo.ID, "due", todo.DueKey())
	s.notify()
	return &todo, nil
}

// FindByID returns the todo with id, or nil when none exists.
func (s *TodoStore) FindByID(ctx context.Context, id string) (*model.Todo, error) {
	query, args, err := sq.Select(todoColumns...).From("todos").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building todo lookup: %w", err)
	}

	var row todoRow
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, s.fail(fmt.Sprintf("getting todo %s", id), err)
	}

	todo, err := row.toModel()
	if err != nil {
		return nil, s.fail(fmt.Sprintf("getting todo %s", id), err)
	}
	return &todo, nil
}

// FindAll returns the todos matching every constraint in filter, newest
// first.
func (s *TodoStore) FindAll(ctx context.Context, filter TodoFilter) ([]model.Todo, error) {
	query, args, err := buildTodoQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building todo query: %w", err)
	}
	s.logger.Debug("querying todos", "sql", query, "args", args)

	var rows []todoRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, s.fail("querying todos", err)
	}

	todos := make([]model.Todo, 0, len(rows))
	for _, r := range rows {
		t, err := r.toModel()
		if err != nil {
			return nil, s.fail("querying todos", err)
		}
		todos = append(todos, t)
	}
	return todos, nil
}

// buildTodoQuery turns a filter into a SELECT whose conditions are ANDed.
func buildTodoQuery(filter TodoFilter) sq.SelectBuilder {
	q := sq.Select(todoColumns...).From("todos")

	if filter.Completed != nil {
		q = q.Where(sq.Eq{"completed": boolToInt(*filter.Completed)})
	}
	if filter.CategoryID != nil {
		q = q.Where(sq.Eq{"category_id": *filter.CategoryID})
	}
	if filter.DueDate != nil {
		q = q.Where(sq.Eq{"due_date": calendar.DayKey(*filter.DueDate)})
	}
	if r := filter.DueDateRange; r != nil {
		// Day keys sort lexicographically in date order.
		q = q.Where(sq.GtOrEq{"due_date": calendar.DayKey(r.From)}).
			Where(sq.LtOrEq{"due_date": calendar.DayKey(r.To)})
	}

	return q.OrderBy("created_at DESC", "id")
}

// Update replaces the stored todo with the same id.
func (s *TodoStore) Update(ctx context.Context, todo model.Todo) (*model.Todo, error) {
	if todo.UpdatedAt.IsZero() {
		todo.UpdatedAt = time.Now()
	}

	query, args, err := sq.Update("todos").
		SetMap(map[string]interface{}{
			"title":       todo.Title,
			"description": todo.Description,
			"category_id": nullString(todo.CategoryID),
			"completed":   boolToInt(todo.Completed),
			"priority":    int(model.NormalizePriority(todo.Priority)),
			"due_date":    nullDayKey(todo.DueDate),
			"updated_at":  todo.UpdatedAt.UTC(),
		}).
		Where(sq.Eq{"id": todo.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building todo update: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, s.fail(fmt.Sprintf("updating todo %s", todo.ID), err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, s.fail(fmt.Sprintf("updating todo %s", todo.ID), err)
	}
	if rows == 0 {
		return nil, &model.NotFoundError{Entity: "todo", ID: todo.ID}
	}

	todo.Priority = model.NormalizePriority(todo.Priority)
	s.notify()
	return &todo, nil
}

// Delete removes a todo by id.
func (s *TodoStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		return s.fail(fmt.Sprintf("deleting todo %s", id), err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return s.fail(fmt.Sprintf("deleting todo %s", id), err)
	}
	if rows == 0 {
		return &model.NotFoundError{Entity: "todo", ID: id}
	}
	s.notify()
	return nil
}
