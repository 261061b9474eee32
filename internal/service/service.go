// Package service applies the todo and category use cases on top of the
// repositories: existence checks, duplicate detection and calendar
// assembly.
package service

import (
	"io"
	"log/slog"

	"github.com/nhle/todocal/internal/store"
)

// Service is the application entry point shared by the TUI and the CLI.
type Service struct {
	todos      store.TodoRepository
	categories store.CategoryRepository
	logger     *slog.Logger
}

// New builds a Service. A nil logger discards output.
func New(todos store.TodoRepository, categories store.CategoryRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		todos:      todos,
		categories: categories,
		logger:     logger,
	}
}
