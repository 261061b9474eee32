package calendar

import (
	"fmt"
	"time"
)

// dayKeyLayout is the wire format for calendar days: no time, no offset.
const dayKeyLayout = "2006-01-02"

// DayKey returns the canonical "YYYY-MM-DD" key for the calendar day of t.
// The year, month and day are read in t's own location, so two instants on
// the same local day always produce the same key.
func DayKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// ParseDayKey parses a "YYYY-MM-DD" key into local midnight of that day.
func ParseDayKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(dayKeyLayout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing day key %q: %w", key, err)
	}
	return t, nil
}

// StartOfDay returns local midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// Date builds local midnight for the given calendar fields. Out-of-range
// days and months are normalized by time.Date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}

// DayKeySet is a set of day keys, used to mark calendar cells with todos.
type DayKeySet map[string]struct{}

// NewDayKeySet builds a set from the given keys.
func NewDayKeySet(keys ...string) DayKeySet {
	s := make(DayKeySet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Add inserts the key for day t.
func (s DayKeySet) Add(t time.Time) {
	s[DayKey(t)] = struct{}{}
}

// Has reports whether key is in the set. A nil set has no keys.
func (s DayKeySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Len returns the number of distinct days in the set.
func (s DayKeySet) Len() int {
	return len(s)
}
