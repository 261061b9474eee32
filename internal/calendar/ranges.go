package calendar

import "time"

// Range is an inclusive span of calendar days.
type Range struct {
	From time.Time `json:"from" yaml:"from"`
	To   time.Time `json:"to" yaml:"to"`
}

// Contains reports whether t's day lies within the range, inclusive on both
// ends. Time of day is ignored.
func (r Range) Contains(t time.Time) bool {
	k := DayKey(t)
	return k >= DayKey(r.From) && k <= DayKey(r.To)
}

// Days returns the number of calendar days covered by the range.
func (r Range) Days() int {
	n := 0
	for d := StartOfDay(r.From); !d.After(StartOfDay(r.To)); d = d.AddDate(0, 0, 1) {
		n++
	}
	return n
}

// MonthRange returns the first and last day of the month containing t.
func MonthRange(t time.Time) Range {
	from := Date(t.Year(), t.Month(), 1)
	// Day 0 of the following month is the last day of this one.
	to := Date(t.Year(), t.Month()+1, 0)
	return Range{From: from, To: to}
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return Date(year, month+1, 0).Day()
}

// WeekRange returns the Sunday starting and the Saturday ending the week
// that contains t.
func WeekRange(t time.Time) Range {
	offset := int(t.Weekday())
	from := Date(t.Year(), t.Month(), t.Day()-offset)
	to := Date(t.Year(), t.Month(), t.Day()+(6-offset))
	return Range{From: from, To: to}
}

// AddMonths moves the first day of t's month by n months, wrapping across
// year boundaries.
func AddMonths(t time.Time, n int) time.Time {
	return Date(t.Year(), t.Month()+time.Month(n), 1)
}
