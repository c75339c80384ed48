// Package dates centralizes calendar-date handling. All dates are local
// calendar dates formatted YYYY-MM-DD; "today" comes from the local clock at
// call time, never from the server.
package dates

import (
	"fmt"
	"time"

	"github.com/julianstephens/dayring/internal/constants"
)

// Format renders a time as a local calendar date string.
func Format(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// Parse parses a YYYY-MM-DD date string at local midnight.
func Parse(date string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// MustParse is Parse for compile-time-known test fixtures.
func MustParse(date string) time.Time {
	t, err := Parse(date)
	if err != nil {
		panic(err)
	}
	return t
}

// Today returns the local clock's current date string.
func Today() string {
	return Format(time.Now())
}

// AddDays shifts a date string by n calendar days.
func AddDays(date string, n int) (string, error) {
	t, err := Parse(date)
	if err != nil {
		return "", err
	}
	return Format(t.AddDate(0, 0, n)), nil
}

// DaysInMonth returns the number of days in the given month (1..12).
func DaysInMonth(year, month int) int {
	// Day zero of the following month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// ISO returns the date string for a day of the given month.
func ISO(year, month, day int) string {
	return Format(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local))
}

// InYearMonth reports whether the date string falls inside year/month.
func InYearMonth(date string, year, month int) bool {
	t, err := Parse(date)
	if err != nil {
		return false
	}
	return t.Year() == year && int(t.Month()) == month
}

// StartOfWeekSunday returns the Sunday on or before t, at local midnight.
func StartOfWeekSunday(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// StepMonth shifts a year/month pair by delta months.
func StepMonth(year, month, delta int) (int, int) {
	t := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local).AddDate(0, delta, 0)
	return t.Year(), int(t.Month())
}

// WeekdayLabel returns the short label for a 0=Sunday..6=Saturday index.
func WeekdayLabel(index int) string {
	labels := [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if index < 0 || index >= len(labels) {
		return ""
	}
	return labels[index]
}
