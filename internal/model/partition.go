package model

import (
	"time"

	"github.com/nhle/todocal/internal/calendar"
)

// DueDayKeys collects the day keys of every todo that has a due date.
func DueDayKeys(todos []Todo) calendar.DayKeySet {
	set := make(calendar.DayKeySet)
	for _, t := range todos {
		if t.DueDate != nil {
			set.Add(*t.DueDate)
		}
	}
	return set
}

// DueOn returns the todos due on the calendar day of day.
func DueOn(todos []Todo, day time.Time) []Todo {
	key := calendar.DayKey(day)
	var out []Todo
	for _, t := range todos {
		if t.DueKey() == key {
			out = append(out, t)
		}
	}
	return out
}

// DueWithin returns the todos whose due day lies inside r.
func DueWithin(todos []Todo, r calendar.Range) []Todo {
	var out []Todo
	for _, t := range todos {
		if t.DueDate != nil && r.Contains(*t.DueDate) {
			out = append(out, t)
		}
	}
	return out
}

// GroupByDay buckets todos by the day key of their due date. Todos without
// a due date are left out.
func GroupByDay(todos []Todo) map[string][]Todo {
	out := make(map[string][]Todo)
	for _, t := range todos {
		if k := t.DueKey(); k != "" {
			out[k] = append(out[k], t)
		}
	}
	return out
}
