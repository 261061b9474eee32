package calendar

import (
	"fmt"
	"time"
)

// WeekdayLabels are the single-character Korean weekday names, Sunday first.
var WeekdayLabels = [7]string{"일", "월", "화", "수", "목", "금", "토"}

// FormatDate renders t as "M월 D일 (요일)", e.g. "2월 19일 (목)".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d월 %d일 (%s)", int(t.Month()), t.Day(), WeekdayLabels[t.Weekday()])
}

// FormatDateShort renders t as "M월 D일".
func FormatDateShort(t time.Time) string {
	return fmt.Sprintf("%d월 %d일", int(t.Month()), t.Day())
}

// FormatMonth renders t as "YYYY년 M월".
func FormatMonth(t time.Time) string {
	return fmt.Sprintf("%d년 %d월", t.Year(), int(t.Month()))
}
