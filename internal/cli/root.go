// Package cli wires configuration, logging, storage and the service into
// the todocal command tree.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nhle/todocal/internal/model"
	"github.com/nhle/todocal/internal/service"
	"github.com/nhle/todocal/internal/store"
	appsync "github.com/nhle/todocal/internal/sync"
)

// env is what every subcommand runs against. It is filled in by the root
// command's PersistentPreRunE.
type env struct {
	configPath string
	dbPath     string

	cfg    *model.AppConfig
	logger *slog.Logger
	store  *store.SQLiteStore
	feed   *appsync.Feed
	svc    *service.Service

	logFile io.Closer
	now     func() time.Time
}

// NewRootCommand builds the todocal command tree. Running it without a
// subcommand starts the terminal UI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&env{now: time.Now})
}

func newRootCommand(e *env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "todocal",
		Short: "todocal - a todo list with a calendar",
		Long: `todocal tracks todos with optional due dates, priorities and
categories. Without a subcommand it opens the terminal UI; the subcommands
work on the same database from scripts.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.open(cmd, isTUI(cmd))
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return e.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.runTUI()
		},
	}

	rootCmd.PersistentFlags().StringVar(&e.configPath, "config", "", "config file (default: ~/.config/todocal/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&e.dbPath, "db", "", "database file (overrides storage.path)")

	rootCmd.AddCommand(newTUICmd(e))
	rootCmd.AddCommand(newAddCmd(e))
	rootCmd.AddCommand(newListCmd(e))
	rootCmd.AddCommand(newDoneCmd(e))
	rootCmd.AddCommand(newEditCmd(e))
	rootCmd.AddCommand(newRmCmd(e))
	rootCmd.AddCommand(newCalendarCmd(e))
	rootCmd.AddCommand(newCategoryCmd(e))
	rootCmd.AddCommand(newConfigCmd(e))

	return rootCmd
}

func isTUI(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == "tui"
}

// open loads config, builds the logger and opens the store. In TUI mode
// logs go to the configured file so they never draw over the screen.
func (e *env) open(cmd *cobra.Command, tui bool) error {
	if e.configPath == "" {
		e.configPath = model.DefaultConfigPath()
	}

	cfg, err := model.LoadConfig(e.configPath)
	if err != nil {
		return err
	}
	e.cfg = cfg

	// config commands only touch the file.
	if cmd.HasParent() && cmd.Parent().Name() == "config" {
		return nil
	}

	var logOut io.Writer = cmd.ErrOrStderr()
	if tui {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
		f, err := tea.LogToFile(cfg.Log.File, "todocal")
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		e.logFile = f
		logOut = f
	}
	e.logger = newLogger(logOut, cfg.Log.Level)

	dbPath := cfg.Storage.Path
	if e.dbPath != "" {
		dbPath = e.dbPath
	}
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	e.feed = appsync.NewFeed()
	st, err := store.NewSQLiteStore(dbPath, store.WithLogger(e.logger), store.WithNotifier(e.feed))
	if err != nil {
		return err
	}
	e.store = st
	e.svc = service.New(st.Todos(), st.Categories(), e.logger)

	e.logger.Debug("store opened", "path", dbPath)
	return nil
}

func (e *env) close() error {
	var firstErr error
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			firstErr = err
		}
		e.store = nil
	}
	if e.logFile != nil {
		if err := e.logFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		e.logFile = nil
	}
	return firstErr
}

// newLogger builds a text slog logger. level is DEBUG, INFO, WARN or
// ERROR; anything else means INFO.
func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
