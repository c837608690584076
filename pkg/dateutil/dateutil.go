package dateutil

import (
	"time"
)

// MonthStart returns the first instant of the month containing date.
func MonthStart(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// MonthEnd returns the last day of the month containing date, at end of day.
func MonthEnd(date time.Time) time.Time {
	firstOfNext := MonthStart(date).AddDate(0, 1, 0)
	last := firstOfNext.AddDate(0, 0, -1)
	return time.Date(last.Year(), last.Month(), last.Day(), 23, 59, 59, 999999999, date.Location())
}

// AddMonths adds a specified number of months to a date.
func AddMonths(date time.Time, months int) time.Time {
	return date.AddDate(0, months, 0)
}

// DaysInMonth returns the number of days in the month containing date.
func DaysInMonth(date time.Time) int {
	return MonthEnd(date).Day()
}

// ClampDay places day-of-month into the month containing ref, clamping to the
// month's last day when the month is shorter (Jan 31 -> Feb 28).
func ClampDay(ref time.Time, day int) time.Time {
	max := DaysInMonth(ref)
	if day > max {
		day = max
	}
	if day < 1 {
		day = 1
	}
	return time.Date(ref.Year(), ref.Month(), day, 0, 0, 0, 0, ref.Location())
}

// YearMonth returns a single comparable ordinal for the year+month of a date.
func YearMonth(date time.Time) int {
	return date.Year()*12 + int(date.Month()) - 1
}

// MonthsBetween returns the number of whole calendar months from the month of
// from to the month of to. Negative when to precedes from.
func MonthsBetween(from, to time.Time) int {
	return YearMonth(to) - YearMonth(from)
}

// SameYearMonth reports whether two dates fall in the same calendar month.
func SameYearMonth(a, b time.Time) bool {
	return YearMonth(a) == YearMonth(b)
}

// InRange reports whether date falls within [start, end] inclusive.
func InRange(date, start, end time.Time) bool {
	return !date.Before(start) && !date.After(end)
}

// IsLeapYear checks if a year is a leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns the number of days in a given year.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}
