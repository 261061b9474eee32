package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/todocal/internal/calendar"
)

// Priority is the importance of a todo: 1 (low) to 3 (high).
type Priority int

// Priority levels.
const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3

	DefaultPriority = PriorityMedium
)

// Valid reports whether p is one of the known levels.
func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

// String returns the level name.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// NormalizePriority maps stored values outside 1..3 to the default.
func NormalizePriority(p Priority) Priority {
	if !p.Valid() {
		return DefaultPriority
	}
	return p
}

// Todo is a single task tracked by the user.
type Todo struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	CategoryID  *string    `json:"category_id,omitempty"`
	Completed   bool       `json:"completed"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TodoFields is the part of a todo a repository persists on create; the
// repository assigns the id and timestamps.
type TodoFields struct {
	Title       string
	Description string
	CategoryID  *string
	Completed   bool
	Priority    Priority
	DueDate     *time.Time
}

// Fields returns the persistable fields of t.
func (t Todo) Fields() TodoFields {
	return TodoFields{
		Title:       t.Title,
		Description: t.Description,
		CategoryID:  t.CategoryID,
		Completed:   t.Completed,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
	}
}

// DueKey returns the day key of the due date, or "" when there is none.
func (t Todo) DueKey() string {
	if t.DueDate == nil {
		return ""
	}
	return calendar.DayKey(*t.DueDate)
}

// IsOverdue reports whether an open todo's due day is before now's day.
func (t Todo) IsOverdue(now time.Time) bool {
	if t.Completed || t.DueDate == nil {
		return false
	}
	return t.DueKey() < calendar.DayKey(now)
}

// TodoInput carries the values for CreateTodo. A zero Priority means "use
// the default"; empty strings and nil pointers mean "not provided".
type TodoInput struct {
	Title       string
	Description string
	CategoryID  string
	Priority    Priority
	DueDate     *time.Time
}

// TodoPatch is a partial update. Fields left at their zero value are kept.
type TodoPatch struct {
	Title       Field[string]
	Description Field[string]
	CategoryID  Field[string]
	Completed   Field[bool]
	Priority    Field[Priority]
	DueDate     Field[time.Time]
}

// CreateTodo validates input and builds a new open todo.
func CreateTodo(in TodoInput) (Todo, error) {
	title, err := validateTitle(in.Title)
	if err != nil {
		return Todo{}, err
	}

	priority := DefaultPriority
	if in.Priority != 0 {
		if !in.Priority.Valid() {
			return Todo{}, invalid("priority", "Priority must be between 1 and 3")
		}
		priority = in.Priority
	}

	var categoryID *string
	if id := strings.TrimSpace(in.CategoryID); id != "" {
		categoryID = &id
	}

	now := time.Now()
	return Todo{
		ID:          uuid.New().String(),
		Title:       title,
		Description: in.Description,
		CategoryID:  categoryID,
		Completed:   false,
		Priority:    priority,
		DueDate:     normalizeDue(in.DueDate),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// UpdateTodo applies patch to a copy of existing. On a validation failure
// existing is returned untouched alongside the error.
func UpdateTodo(existing Todo, patch TodoPatch) (Todo, error) {
	next := existing

	switch {
	case patch.Title.IsClear():
		return existing, invalid("title", "Title is required")
	case patch.Title.IsSet():
		v, _ := patch.Title.Value()
		title, err := validateTitle(v)
		if err != nil {
			return existing, err
		}
		next.Title = title
	}

	switch {
	case patch.Priority.IsClear():
		next.Priority = DefaultPriority
	case patch.Priority.IsSet():
		p, _ := patch.Priority.Value()
		if !p.Valid() {
			return existing, invalid("priority", "Priority must be between 1 and 3")
		}
		next.Priority = p
	}

	if patch.Description.IsClear() {
		next.Description = ""
	} else if v, ok := patch.Description.Value(); ok {
		next.Description = v
	}

	next.CategoryID = applyPtr(patch.CategoryID, existing.CategoryID)
	if next.CategoryID != nil && strings.TrimSpace(*next.CategoryID) == "" {
		next.CategoryID = nil
	}

	if patch.Completed.IsClear() {
		next.Completed = false
	} else if v, ok := patch.Completed.Value(); ok {
		next.Completed = v
	}

	next.DueDate = normalizeDue(applyPtr(patch.DueDate, existing.DueDate))
	next.UpdatedAt = touch(existing.UpdatedAt)
	return next, nil
}

// ToggleComplete flips the completion state of existing.
func ToggleComplete(existing Todo) Todo {
	next := existing
	next.Completed = !existing.Completed
	next.UpdatedAt = touch(existing.UpdatedAt)
	return next
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", invalid("title", "Title is required")
	}
	return title, nil
}

// normalizeDue strips the time of day so due dates stay day-granular.
func normalizeDue(d *time.Time) *time.Time {
	if d == nil {
		return nil
	}
	day := calendar.StartOfDay(*d)
	return &day
}

// touch returns the current time, never earlier than prev.
func touch(prev time.Time) time.Time {
	now := time.Now()
	if now.Before(prev) {
		return prev
	}
	return now
}
