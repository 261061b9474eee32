package todolist

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/todocal/internal/calendar"
	"github.com/nhle/todocal/internal/model"
	"github.com/nhle/todocal/internal/theme"
)

// TodoItem wraps a model.Todo so it can be used in a bubbles/list.
type TodoItem struct {
	Todo     model.Todo
	Category *model.Category
}

// FilterValue returns the string used for fuzzy filtering.
func (i TodoItem) FilterValue() string { return i.Todo.Title }

// Title returns the todo title for the list.
func (i TodoItem) Title() string { return i.Todo.Title }

// Description returns a short summary line for the list.
func (i TodoItem) Description() string {
	var parts []string
	if i.Category != nil {
		parts = append(parts, i.Category.Name)
	}
	if i.Todo.DueDate != nil {
		parts = append(parts, calendar.FormatDate(*i.Todo.DueDate))
	}
	parts = append(parts, i.Todo.Priority.String())
	return strings.Join(parts, " | ")
}

// ItemDelegate implements list.ItemDelegate for rendering todo rows.
type ItemDelegate struct {
	// now overrides the clock used for overdue marks.
	now func() time.Time
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single todo line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(TodoItem)
	if !ok {
		return
	}
	now := time.Now()
	if d.now != nil {
		now = d.now()
	}

	fmt.Fprint(w, renderRow(it, index == m.Index(), now, m.Width()))
}

func renderRow(it TodoItem, selected bool, now time.Time, width int) string {
	t := it.Todo

	check := "○"
	if t.Completed {
		check = "✓"
	}

	title := t.Title
	if width > 0 {
		title = truncate(title, max(10, width/2))
	}
	if t.Completed {
		title = theme.CompletedStyle.Render(title)
	}

	parts := []string{
		check,
		theme.PriorityStyle(t.Priority).Render(priorityStars(t.Priority)),
		title,
	}

	if it.Category != nil {
		parts = append(parts, theme.CategoryStyle(it.Category.Color).Render("● "+it.Category.Name))
	}

	if t.DueDate != nil {
		due := calendar.FormatDate(*t.DueDate)
		if t.IsOverdue(now) {
			due = theme.ErrorStyle.Render(due)
		} else {
			due = theme.HelpStyle.Render(due)
		}
		parts = append(parts, due)
	}

	line := strings.Join(parts, " ")

	if selected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

// priorityStars draws p as filled stars out of three.
func priorityStars(p model.Priority) string {
	n := int(model.NormalizePriority(p))
	return strings.Repeat("★", n) + strings.Repeat("☆", 3-n)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 1 || len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
