package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todocal/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorIndigo = lipgloss.AdaptiveColor{Dark: "#818CF8", Light: "#4F46E5"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorIndigo).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

var (
	TabStyle       = lipgloss.NewStyle().Padding(0, 2).Foreground(ColorGray)
	ActiveTabStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true).Underline(true).Foreground(ColorIndigo)
)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorIndigo).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorIndigo)

// CompletedStyle renders the title of a done todo.
var CompletedStyle = lipgloss.NewStyle().
	Strikethrough(true).
	Foreground(ColorGray)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// ErrorStyle renders error banners.
var ErrorStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed)

// BorderStyle provides a standard rounded border for panels.
var BorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// Calendar cell styles.
var (
	DayStyle        = lipgloss.NewStyle().Width(5).Align(lipgloss.Center)
	OutsideDayStyle = DayStyle.Foreground(ColorSubtle)
	TodayStyle      = DayStyle.Bold(true).Foreground(ColorIndigo)
	CursorDayStyle  = DayStyle.Reverse(true)
	SundayStyle     = DayStyle.Foreground(ColorRed)
	SaturdayStyle   = DayStyle.Foreground(ColorBlue)
	TodoMarkStyle   = lipgloss.NewStyle().Foreground(ColorYellow)
)

// PriorityStyle returns a color-coded style for the given priority.
func PriorityStyle(p model.Priority) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch p {
	case model.PriorityHigh:
		return base.Foreground(ColorRed)
	case model.PriorityMedium:
		return base.Foreground(ColorYellow)
	case model.PriorityLow:
		return base.Foreground(ColorBlue)
	default:
		return base.Foreground(ColorGray)
	}
}

// CategoryStyle colors a category label with its own hex color.
func CategoryStyle(color string) lipgloss.Style {
	if !model.IsHexColor(color) {
		color = model.DefaultCategoryColor
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}
