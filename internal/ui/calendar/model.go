package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	cal "github.com/nhle/todocal/internal/calendar"
	"github.com/nhle/todocal/internal/keys"
	"github.com/nhle/todocal/internal/theme"
)

// DaySelectedMsg is sent when the user picks the day under the cursor.
type DaySelectedMsg struct {
	Day time.Time
}

// MonthStepMsg asks the parent to move the displayed month by Delta.
type MonthStepMsg struct {
	Delta int
}

// Model renders a month grid with a movable day cursor.
type Model struct {
	keys     *keys.KeyMap
	month    time.Time
	grid     [][]cal.Day
	cursor   time.Time
	selected *time.Time
	width    int
}

// New creates an empty calendar grid.
func New(k *keys.KeyMap, width int) Model {
	return Model{keys: k, width: width}
}

// SetGrid shows grid for month. The cursor stays put when it is still on
// the grid, otherwise it lands on today or the first of the month.
func (m *Model) SetGrid(month time.Time, grid [][]cal.Day) {
	m.month = month
	m.grid = grid

	if _, _, ok := cal.Locate(grid, m.cursor); ok && !m.cursor.IsZero() {
		return
	}
	for _, d := range cal.Flatten(grid) {
		if d.IsToday {
			m.cursor = d.Date
			return
		}
	}
	m.cursor = cal.Date(month.Year(), month.Month(), 1)
}

// SetSelected marks the selected day; nil clears it.
func (m *Model) SetSelected(day *time.Time) {
	m.selected = day
}

// Cursor returns the day under the cursor.
func (m Model) Cursor() time.Time {
	return m.cursor
}

// Update moves the cursor and emits selection or month-step messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(km, m.keys.Left):
		return m.move(-1)
	case key.Matches(km, m.keys.Right):
		return m.move(1)
	case key.Matches(km, m.keys.Up):
		return m.move(-7)
	case key.Matches(km, m.keys.Down):
		return m.move(7)
	case key.Matches(km, m.keys.PrevMonth):
		return m, step(-1)
	case key.Matches(km, m.keys.NextMonth):
		return m, step(1)
	case key.Matches(km, m.keys.Select):
		day := m.cursor
		return m, func() tea.Msg { return DaySelectedMsg{Day: day} }
	}
	return m, nil
}

// move shifts the cursor by days. Leaving the grid steps the month.
func (m Model) move(days int) (Model, tea.Cmd) {
	next := cal.Date(m.cursor.Year(), m.cursor.Month(), m.cursor.Day()+days)
	if _, _, ok := cal.Locate(m.grid, next); ok {
		m.cursor = next
		return m, nil
	}

	m.cursor = next
	if days < 0 {
		return m, step(-1)
	}
	return m, step(1)
}

func step(delta int) tea.Cmd {
	return func() tea.Msg { return MonthStepMsg{Delta: delta} }
}

// View renders the grid.
func (m Model) View() string {
	return Render(m.month, m.grid, m.cursor, m.selected)
}

// Render draws the month title, weekday header and day cells. Days with
// todos carry a dot; padding days are dimmed.
func Render(month time.Time, grid [][]cal.Day, cursor time.Time, selected *time.Time) string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Bold(true).
		Width(7 * theme.DayStyle.GetWidth()).
		Align(lipgloss.Center).
		Render(cal.FormatMonth(month))
	b.WriteString(title)
	b.WriteString("\n")

	header := make([]string, 7)
	for i, label := range cal.WeekdayLabels {
		header[i] = weekdayStyle(i).Render(label)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	b.WriteString("\n")

	for _, week := range grid {
		cells := make([]string, len(week))
		for i, d := range week {
			cells[i] = renderCell(d, i, cursor, selected)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func renderCell(d cal.Day, weekday int, cursor time.Time, selected *time.Time) string {
	label := fmt.Sprintf("%2d", d.Date.Day())
	if d.HasTodos {
		label += theme.TodoMarkStyle.Render("•")
	} else {
		label += " "
	}
	if selected != nil && cal.SameDay(*selected, d.Date) {
		label = "[" + label + "]"
	}

	style := weekdayStyle(weekday)
	switch {
	case !cursor.IsZero() && cal.SameDay(cursor, d.Date):
		style = theme.CursorDayStyle
	case !d.IsCurrentMonth:
		style = theme.OutsideDayStyle
	case d.IsToday:
		style = theme.TodayStyle
	}
	return style.Render(label)
}

func weekdayStyle(i int) lipgloss.Style {
	switch time.Weekday(i) {
	case time.Sunday:
		return theme.SundayStyle
	case time.Saturday:
		return theme.SaturdayStyle
	default:
		return theme.DayStyle
	}
}
