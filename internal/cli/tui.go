package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/nhle/todocal/internal/app"
	appsync "github.com/nhle/todocal/internal/sync"
)

func newTUICmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal UI (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.runTUI()
		},
	}
}

func (e *env) runTUI() error {
	switch e.cfg.Display.Theme {
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	}

	interval := time.Duration(e.cfg.Sync.RefreshIntervalSec) * time.Second
	refresher := appsync.NewRefresher(e.feed, interval, e.logger)

	e.logger.Info("starting terminal UI", "refresh_interval", interval)

	p := tea.NewProgram(app.New(e.svc, refresher), tea.WithAltScreen())
	_, err := p.Run()
	refresher.Stop()
	return err
}
