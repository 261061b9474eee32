package store

import (
	"context"
	"time"

	"github.com/nhle/todocal/internal/calendar"
	"github.com/nhle/todocal/internal/model"
)

// TodoFilter narrows FindAll. Every non-nil field is ANDed with the others;
// a zero filter returns every todo.
type TodoFilter struct {
	Completed    *bool
	CategoryID   *string
	DueDate      *time.Time      // exact calendar day
	DueDateRange *calendar.Range // inclusive on both ends
}

// IsZero reports whether the filter has no constraints.
func (f TodoFilter) IsZero() bool {
	return f.Completed == nil && f.CategoryID == nil && f.DueDate == nil && f.DueDateRange == nil
}

// TodoRepository persists todos.
type TodoRepository interface {
	// Create stores a new todo; the repository assigns id and timestamps.
	Create(ctx context.Context, fields model.TodoFields) (*model.Todo, error)

	// FindByID returns (nil, nil) when no todo has the id.
	FindByID(ctx context.Context, id string) (*model.Todo, error)

	FindAll(ctx context.Context, filter TodoFilter) ([]model.Todo, error)

	// Update replaces the stored todo with the same id. A missing row is a
	// *model.NotFoundError.
	Update(ctx context.Context, todo model.Todo) (*model.Todo, error)

	Delete(ctx context.Context, id string) error
}

// CategoryRepository persists categories.
type CategoryRepository interface {
	Create(ctx context.Context, cat model.Category) (*model.Category, error)
	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindAll(ctx context.Context) ([]model.Category, error)
	FindByName(ctx context.Context, name string) (*model.Category, error)
	Delete(ctx context.Context, id string) error
}

// Notifier is told after every successful write.
type Notifier interface {
	Notify()
}
