// Package view holds the UI selection state and turns it into repository
// filters. Nothing here touches persistence or the clock except where a
// "now" is passed in.
package view

import (
	"fmt"
	"time"

	"github.com/nhle/todocal/internal/calendar"
	"github.com/nhle/todocal/internal/store"
)

// StatusFilter selects todos by completion.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusActive    StatusFilter = "active"
	StatusCompleted StatusFilter = "completed"
)

// ParseStatus accepts "all", "active" or "completed"; "" means all.
func ParseStatus(s string) (StatusFilter, error) {
	switch StatusFilter(s) {
	case "", StatusAll:
		return StatusAll, nil
	case StatusActive, StatusCompleted:
		return StatusFilter(s), nil
	default:
		return "", fmt.Errorf("unknown status filter %q", s)
	}
}

// Scope is the date constraint a view adds on top of status and category.
type Scope int

const (
	// ScopeAny adds no date constraint.
	ScopeAny Scope = iota
	// ScopeDay restricts to todos due on Query.Day.
	ScopeDay
	// ScopeMonth restricts to todos due in Query.Day's month.
	ScopeMonth
	// ScopeWeek restricts to todos due in Query.Day's Sunday-first week.
	ScopeWeek
)

// Query is everything a view contributes to one repository call.
type Query struct {
	Status     StatusFilter
	CategoryID string // "" means any category
	Scope      Scope
	Day        time.Time
}

// BuildFilter composes q into a repository filter. Every constraint is
// ANDed; the result depends only on q.
func BuildFilter(q Query) store.TodoFilter {
	var f store.TodoFilter

	switch q.Status {
	case StatusActive:
		f.Completed = boolPtr(false)
	case StatusCompleted:
		f.Completed = boolPtr(true)
	}

	if q.CategoryID != "" {
		id := q.CategoryID
		f.CategoryID = &id
	}

	switch q.Scope {
	case ScopeDay:
		d := calendar.StartOfDay(q.Day)
		f.DueDate = &d
	case ScopeMonth:
		r := calendar.MonthRange(q.Day)
		f.DueDateRange = &r
	case ScopeWeek:
		r := calendar.WeekRange(q.Day)
		f.DueDateRange = &r
	}

	return f
}

func boolPtr(b bool) *bool { return &b }
