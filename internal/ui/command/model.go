package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todocal/internal/calendar"
	"github.com/nhle/todocal/internal/theme"
	"github.com/nhle/todocal/internal/view"
)

// Name identifies a palette command.
type Name string

const (
	CmdToday      Name = "today"
	CmdCalendar   Name = "calendar"
	CmdGoto       Name = "goto"
	CmdStatus     Name = "status"
	CmdCategory   Name = "category"
	CmdClear      Name = "clear"
	CmdNew        Name = "new"
	CmdCategories Name = "categories"
	CmdRefresh    Name = "refresh"
	CmdQuit       Name = "quit"
)

// CommandMsg is emitted when the user executes a valid command.
type CommandMsg struct {
	Name Name
	// Day is set for goto. Month-only targets leave DayGiven false.
	Day      time.Time
	DayGiven bool
	Status   view.StatusFilter
	// Arg is the raw argument, e.g. a category name.
	Arg string
}

// CancelMsg is emitted when the palette is dismissed.
type CancelMsg struct{}

var aliases = map[string]Name{
	"today":      CmdToday,
	"calendar":   CmdCalendar,
	"cal":        CmdCalendar,
	"goto":       CmdGoto,
	"g":          CmdGoto,
	"status":     CmdStatus,
	"category":   CmdCategory,
	"cat":        CmdCategory,
	"clear":      CmdClear,
	"new":        CmdNew,
	"add":        CmdNew,
	"categories": CmdCategories,
	"refresh":    CmdRefresh,
	"sync":       CmdRefresh,
	"quit":       CmdQuit,
	"q":          CmdQuit,
}

// Parse turns a command line into a CommandMsg.
func Parse(line string) (CommandMsg, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return CommandMsg{}, fmt.Errorf("empty command")
	}

	name, ok := aliases[strings.ToLower(fields[0])]
	if !ok {
		return CommandMsg{}, fmt.Errorf("unknown command %q", fields[0])
	}
	arg := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))
	msg := CommandMsg{Name: name, Arg: arg}

	switch name {
	case CmdGoto:
		if arg == "" {
			return CommandMsg{}, fmt.Errorf("goto needs YYYY-MM or YYYY-MM-DD")
		}
		if d, err := calendar.ParseDayKey(arg); err == nil {
			msg.Day, msg.DayGiven = d, true
			return msg, nil
		}
		t, err := time.ParseInLocation("2006-01", arg, time.Local)
		if err != nil {
			return CommandMsg{}, fmt.Errorf("invalid date %q", arg)
		}
		msg.Day = t
	case CmdStatus:
		s, err := view.ParseStatus(arg)
		if err != nil {
			return CommandMsg{}, err
		}
		msg.Status = s
	case CmdCategory:
		if arg == "" {
			return CommandMsg{}, fmt.Errorf("category needs a name or none")
		}
	}
	return msg, nil
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	err    string
	width  int
	height int
}

// New creates a new command palette model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "today | goto 2026-03 | status active | category Work"
	ti.Prompt = ": "
	ti.Focus()
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			m.input.Reset()
			m.err = ""
			return m, func() tea.Msg { return CancelMsg{} }
		case "enter":
			line := strings.TrimSpace(m.input.Value())
			if line == "" {
				return m, nil
			}
			parsed, err := Parse(line)
			if err != nil {
				m.err = err.Error()
				return m, nil
			}
			m.input.Reset()
			m.err = ""
			return m, func() tea.Msg { return parsed }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1).
		Render("Command")

	parts := []string{title, m.input.View()}
	if m.err != "" {
		parts = append(parts, theme.ErrorStyle.Render(m.err))
	}

	return theme.BorderStyle.
		Width(m.width - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}
