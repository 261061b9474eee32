package store

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/todocal/internal/model"
)

// SQLiteStore implements TodoRepository and CategoryRepository on a local
// SQLite database.
type SQLiteStore struct {
	db       *sqlx.DB
	logger   *slog.Logger
	notifier Notifier
}

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithLogger sets the logger used for query and failure logging.
func WithLogger(l *slog.Logger) Option {
	return func(s *SQLiteStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithNotifier registers n to be told after every successful write.
func WithNotifier(n Notifier) Option {
	return func(s *SQLiteStore) {
		s.notifier = n
	}
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string, opts ...Option) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Every pooled connection to ":memory:" would get its own empty database.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := newStore(db, opts...)
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	s.logger.Debug("sqlite store opened", "path", dbPath)
	return s, nil
}

// newStore wraps an already-open database without touching its schema.
func newStore(db *sqlx.DB, opts ...Option) *SQLiteStore {
	s := &SQLiteStore{
		db:     db,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
		s.logger.Info("applied migration", "version", m.version)
	}

	return nil
}

// SchemaVersion returns the highest applied migration.
func (s *SQLiteStore) SchemaVersion() (int, error) {
	var v int
	if err := s.db.Get(&v, "SELECT COALESCE(MAX(version), 0) FROM schema_version"); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return v, nil
}

// Todos returns the todo repository backed by s.
func (s *SQLiteStore) Todos() *TodoStore {
	return &TodoStore{s}
}

// Categories returns the category repository backed by s.
func (s *SQLiteStore) Categories() *CategoryStore {
	return &CategoryStore{s}
}

func (s *SQLiteStore) notify() {
	if s.notifier != nil {
		s.notifier.Notify()
	}
}

// fail logs a backend failure and wraps it as a storage error.
func (s *SQLiteStore) fail(op string, err error) error {
	s.logger.Error("storage failure", "op", op, "err", err)
	return &model.StorageError{Op: op, Err: err}
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
