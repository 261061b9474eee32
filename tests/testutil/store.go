package testutil

import (
	"testing"
	"time"

	"github.com/nhle/todocal/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T, opts ...store.Option) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:", opts...)
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// Day returns local midnight of the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// CountingNotifier records how many writes it was told about.
type CountingNotifier struct {
	Count int
}

// Notify implements store.Notifier.
func (n *CountingNotifier) Notify() { n.Count++ }
