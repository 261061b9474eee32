package calendar

import "time"

// Day is a single cell of a month grid. It is derived on every render and
// never persisted.
type Day struct {
	Date           time.Time
	IsCurrentMonth bool
	IsToday        bool
	HasTodos       bool
}

// Key returns the cell's day key.
func (d Day) Key() string {
	return DayKey(d.Date)
}

// MonthGrid builds the padded Sunday-first grid for the given month,
// marking today against the real clock.
func MonthGrid(year int, month time.Month, todoDays DayKeySet) [][]Day {
	return MonthGridAt(year, month, todoDays, time.Now())
}

// MonthGridAt builds the padded grid for the given month using now as the
// current day. Every row has exactly 7 cells; the grid starts on a Sunday,
// ends on a Saturday and has 4 to 6 rows.
func MonthGridAt(year int, month time.Month, todoDays DayKeySet, now time.Time) [][]Day {
	first := Date(year, month, 1)
	leading := int(first.Weekday())
	total := DaysIn(year, month)

	cells := ((leading + total + 6) / 7) * 7
	todayKey := DayKey(now)

	weeks := make([][]Day, 0, cells/7)
	week := make([]Day, 0, 7)
	for i := 0; i < cells; i++ {
		date := Date(year, month, 1-leading+i)
		key := DayKey(date)
		week = append(week, Day{
			Date:           date,
			IsCurrentMonth: date.Month() == first.Month() && date.Year() == first.Year(),
			IsToday:        key == todayKey,
			HasTodos:       todoDays.Has(key),
		})
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = make([]Day, 0, 7)
		}
	}
	return weeks
}

// Flatten returns the grid cells in row-major order.
func Flatten(grid [][]Day) []Day {
	out := make([]Day, 0, len(grid)*7)
	for _, week := range grid {
		out = append(out, week...)
	}
	return out
}

// Locate returns the row and column of the cell for day t, or ok=false when
// the grid does not contain it.
func Locate(grid [][]Day, t time.Time) (row, col int, ok bool) {
	key := DayKey(t)
	for r, week := range grid {
		for c, d := range week {
			if d.Key() == key {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}
