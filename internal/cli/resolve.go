package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nhle/todocal/internal/calendar"
	"github.com/nhle/todocal/internal/model"
	"github.com/nhle/todocal/internal/store"
)

// resolveTodoID accepts a full id or a unique prefix of one.
func (e *env) resolveTodoID(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("todo id is required")
	}

	todos, err := e.svc.ListTodos(ctx, store.TodoFilter{})
	if err != nil {
		return "", err
	}

	var matches []string
	for _, t := range todos {
		if t.ID == ref {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", &model.NotFoundError{Entity: "todo", ID: ref}
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("todo id %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// resolveCategory accepts a category id or name.
func (e *env) resolveCategory(ctx context.Context, ref string) (model.Category, error) {
	cats, err := e.svc.ListCategories(ctx)
	if err != nil {
		return model.Category{}, err
	}
	for _, c := range cats {
		if c.ID == ref || c.Name == ref {
			return c, nil
		}
	}
	return model.Category{}, &model.NotFoundError{Entity: "category", ID: ref}
}

// parseDue accepts YYYY-MM-DD, "today" or "tomorrow".
func parseDue(s string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return calendar.StartOfDay(now), nil
	case "tomorrow":
		return calendar.Date(now.Year(), now.Month(), now.Day()+1), nil
	}
	d, err := calendar.ParseDayKey(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", s)
	}
	return d, nil
}

// parseMonth accepts YYYY-MM and returns the first day of that month.
func parseMonth(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01", strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, use YYYY-MM", s)
	}
	return t, nil
}

// parsePriority accepts low, medium, high or 1 to 3.
func parsePriority(s string) (model.Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return model.PriorityLow, nil
	case "medium", "med":
		return model.PriorityMedium, nil
	case "high":
		return model.PriorityHigh, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || !model.Priority(n).Valid() {
		return 0, fmt.Errorf("invalid priority %q, use low, medium or high", s)
	}
	return model.Priority(n), nil
}
