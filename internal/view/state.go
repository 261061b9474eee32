package view

import (
	"time"

	"github.com/nhle/todocal/internal/calendar"
)

// Tab is the top-level screen.
type Tab int

const (
	TabToday Tab = iota
	TabCalendar
)

func (t Tab) String() string {
	if t == TabCalendar {
		return "Calendar"
	}
	return "Today"
}

// EditorMode says whether the todo form is closed, adding or editing.
type EditorMode int

const (
	EditorClosed EditorMode = iota
	EditorAdd
	EditorEdit
)

// State is the ephemeral selection state of the UI. The zero value is not
// ready; use NewState.
type State struct {
	Status     StatusFilter
	CategoryID string
	Tab        Tab

	// Month is the first day of the displayed calendar month.
	Month time.Time

	// Selected is the chosen calendar day, nil when none.
	Selected *time.Time

	editor   EditorMode
	editorID string
}

// NewState returns the initial state with the calendar showing now's month.
func NewState(now time.Time) State {
	return State{
		Status: StatusAll,
		Tab:    TabToday,
		Month:  calendar.AddMonths(now, 0),
	}
}

// SetStatus changes the status filter and nothing else.
func (s *State) SetStatus(f StatusFilter) {
	s.Status = f
}

// SetCategory changes the category filter; "" clears it.
func (s *State) SetCategory(id string) {
	s.CategoryID = id
}

// SetTab switches the active screen.
func (s *State) SetTab(t Tab) {
	s.Tab = t
}

// ResetFilters clears both status and category filters.
func (s *State) ResetFilters() {
	s.Status = StatusAll
	s.CategoryID = ""
}

// PrevMonth shows the previous calendar month.
func (s *State) PrevMonth() {
	s.Month = calendar.AddMonths(s.Month, -1)
}

// NextMonth shows the next calendar month.
func (s *State) NextMonth() {
	s.Month = calendar.AddMonths(s.Month, 1)
}

// SelectDate selects day without moving the displayed month, so padding
// days of adjacent months can be selected in place.
func (s *State) SelectDate(day time.Time) {
	d := calendar.StartOfDay(day)
	s.Selected = &d
}

// ClearSelection forgets the selected day.
func (s *State) ClearSelection() {
	s.Selected = nil
}

// OpenAdd opens the editor for a new todo, dropping any edit in progress.
func (s *State) OpenAdd() {
	s.editor = EditorAdd
	s.editorID = ""
}

// OpenEdit targets the todo id, replacing any other in-progress edit.
func (s *State) OpenEdit(id string) {
	s.editor = EditorEdit
	s.editorID = id
}

// CloseEditor closes the editor.
func (s *State) CloseEditor() {
	s.editor = EditorClosed
	s.editorID = ""
}

// Editor returns the editor mode and, when editing, the target id.
func (s State) Editor() (EditorMode, string) {
	return s.editor, s.editorID
}

// ListQuery is the Today tab's query: todos due on now's day.
func (s State) ListQuery(now time.Time) Query {
	return Query{
		Status:     s.Status,
		CategoryID: s.CategoryID,
		Scope:      ScopeDay,
		Day:        calendar.StartOfDay(now),
	}
}

// MonthQuery covers the displayed month, used to mark days with todos.
func (s State) MonthQuery() Query {
	return Query{
		Status:     s.Status,
		CategoryID: s.CategoryID,
		Scope:      ScopeMonth,
		Day:        s.Month,
	}
}

// WeekQuery covers the week containing now.
func (s State) WeekQuery(now time.Time) Query {
	return Query{
		Status:     s.Status,
		CategoryID: s.CategoryID,
		Scope:      ScopeWeek,
		Day:        calendar.StartOfDay(now),
	}
}

// DayQuery covers the selected day. ok is false when nothing is selected.
func (s State) DayQuery() (q Query, ok bool) {
	if s.Selected == nil {
		return Query{}, false
	}
	return Query{
		Status:     s.Status,
		CategoryID: s.CategoryID,
		Scope:      ScopeDay,
		Day:        *s.Selected,
	}, true
}

// EmptyMessage is shown when the list for the current status is empty.
func (s State) EmptyMessage() string {
	return EmptyMessage(s.Status)
}

// EmptyMessage returns the empty-list text for status f.
func EmptyMessage(f StatusFilter) string {
	switch f {
	case StatusActive:
		return "No active todos"
	case StatusCompleted:
		return "No completed todos yet"
	default:
		return "No todos yet. Add one above!"
	}
}
