package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countCurrentMonth(grid [][]Day) int {
	n := 0
	for _, d := range Flatten(grid) {
		if d.IsCurrentMonth {
			n++
		}
	}
	return n
}

func TestMonthGridShape(t *testing.T) {
	for year := 2020; year <= 2030; year++ {
		for m := time.January; m <= time.December; m++ {
			grid := MonthGrid(year, m, nil)

			require.GreaterOrEqual(t, len(grid), 4, "%d-%02d", year, m)
			require.LessOrEqual(t, len(grid), 6, "%d-%02d", year, m)
			for _, week := range grid {
				require.Len(t, week, 7)
			}

			first := grid[0][0]
			last := grid[len(grid)-1][6]
			assert.Equal(t, time.Sunday, first.Date.Weekday())
			assert.Equal(t, time.Saturday, last.Date.Weekday())
			assert.Equal(t, DaysIn(year, m), countCurrentMonth(grid))
		}
	}
}

func TestMonthGridCurrentMonthCounts(t *testing.T) {
	assert.Equal(t, 31, countCurrentMonth(MonthGrid(2026, time.January, nil)))
	assert.Equal(t, 30, countCurrentMonth(MonthGrid(2026, time.April, nil)))
}

func TestMonthGridCellsAreConsecutive(t *testing.T) {
	cells := Flatten(MonthGrid(2026, time.March, nil))
	for i := 1; i < len(cells); i++ {
		assert.Equal(t, DayKey(cells[i-1].Date.AddDate(0, 0, 1)), DayKey(cells[i].Date))
	}
}

func TestMonthGridStartingOnSunday(t *testing.T) {
	// February 2026 starts on a Sunday and ends on a Saturday: exactly 4 rows.
	grid := MonthGrid(2026, time.February, nil)

	require.Len(t, grid, 4)
	assert.Equal(t, "2026-02-01", grid[0][0].Key())
	assert.True(t, grid[0][0].IsCurrentMonth)
	assert.Equal(t, "2026-02-28", grid[3][6].Key())
	assert.True(t, grid[3][6].IsCurrentMonth)
}

func TestMonthGridSixRows(t *testing.T) {
	// August 2026 starts on a Saturday with 31 days.
	grid := MonthGrid(2026, time.August, nil)

	require.Len(t, grid, 6)
	assert.Equal(t, "2026-07-26", grid[0][0].Key())
	assert.False(t, grid[0][0].IsCurrentMonth)
	assert.Equal(t, "2026-08-01", grid[0][6].Key())
	assert.Equal(t, "2026-09-05", grid[5][6].Key())
}

func TestMonthGridPaddingAcrossYear(t *testing.T) {
	grid := MonthGrid(2026, time.January, nil)

	assert.Equal(t, "2025-12-28", grid[0][0].Key())
	assert.False(t, grid[0][0].IsCurrentMonth)
	assert.Equal(t, "2026-01-31", grid[4][6].Key())
}

func TestMonthGridIsToday(t *testing.T) {
	now := time.Date(2026, time.February, 18, 21, 45, 0, 0, time.Local)
	grid := MonthGridAt(2026, time.February, nil, now)

	var today []string
	for _, d := range Flatten(grid) {
		if d.IsToday {
			today = append(today, d.Key())
		}
	}
	assert.Equal(t, []string{"2026-02-18"}, today)

	for _, d := range Flatten(MonthGridAt(2026, time.May, nil, now)) {
		assert.False(t, d.IsToday)
	}
}

func TestMonthGridHasTodos(t *testing.T) {
	keys := NewDayKeySet("2026-02-10", "2026-03-01", "2025-01-01")
	grid := MonthGrid(2026, time.February, keys)

	var marked []string
	for _, d := range Flatten(grid) {
		if d.HasTodos {
			marked = append(marked, d.Key())
		}
	}
	assert.Equal(t, []string{"2026-02-10"}, marked)
}

func TestMonthGridHasTodosOnPaddingDay(t *testing.T) {
	keys := NewDayKeySet("2026-03-01")
	grid := MonthGrid(2026, time.March, keys)
	assert.True(t, grid[0][0].HasTodos)

	// The same day rendered as trailing padding of February is also marked.
	prev := MonthGrid(2025, time.February, NewDayKeySet("2025-03-01"))
	assert.True(t, prev[len(prev)-1][6].HasTodos)
	assert.False(t, prev[len(prev)-1][6].IsCurrentMonth)
}

func TestLocate(t *testing.T) {
	grid := MonthGrid(2026, time.February, nil)

	row, col, ok := Locate(grid, Date(2026, time.February, 18))
	require.True(t, ok)
	assert.Equal(t, 2, row)
	assert.Equal(t, 3, col)

	_, _, ok = Locate(grid, Date(2026, time.April, 1))
	assert.False(t, ok)
}

func TestKoreanFormatting(t *testing.T) {
	d := Date(2026, time.February, 19)

	assert.Equal(t, "2월 19일 (목)", FormatDate(d))
	assert.Equal(t, "2월 19일", FormatDateShort(d))
	assert.Equal(t, "2026년 2월", FormatMonth(d))
	assert.Equal(t, "일", WeekdayLabels[time.Sunday])
}
