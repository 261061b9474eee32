package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todocal/internal/theme"
)

// Layout manages the terminal frame: header, tab strip, content and status
// bar.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	TabsHeight      int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		TabsHeight:      1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height left for the main content area.
func (l Layout) ContentHeight() int {
	h := l.Height - l.HeaderHeight - l.TabsHeight - l.StatusBarHeight
	if h < 0 {
		return 0
	}
	return h
}

// RenderHeader renders the top bar with a title on the left and status on
// the right.
func (l Layout) RenderHeader(title, status string) string {
	titleRendered := theme.HeaderStyle.Render(title)
	statusRendered := theme.HeaderStyle.Align(lipgloss.Right).Render(status)

	gap := l.Width - lipgloss.Width(titleRendered) - lipgloss.Width(statusRendered)
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		l.filler(theme.HeaderStyle, gap),
		statusRendered,
	)
}

// RenderTabs renders the tab strip with tabs[active] highlighted.
func (l Layout) RenderTabs(tabs []string, active int) string {
	rendered := make([]string, len(tabs))
	for i, t := range tabs {
		if i == active {
			rendered[i] = theme.ActiveTabStyle.Render(t)
		} else {
			rendered[i] = theme.TabStyle.Render(t)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// RenderStatusBar renders the bottom bar.
func (l Layout) RenderStatusBar(hints string) string {
	rendered := theme.StatusBarStyle.Render(hints)
	gap := l.Width - lipgloss.Width(rendered)
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, l.filler(theme.StatusBarStyle, gap))
}

func (l Layout) filler(style lipgloss.Style, width int) string {
	if width < 0 {
		width = 0
	}
	return style.Render(
		lipgloss.NewStyle().
			Width(width).
			Background(style.GetBackground()).
			Render(""),
	)
}

// RenderWithFrame stacks header, tabs, content and status bar.
func (l Layout) RenderWithFrame(header, tabs, content, statusBar string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		tabs,
		content,
		statusBar,
	)
}
