package dateutil

import (
	"time"
)

// AddYears adds a specified number of years to a date
func AddYears(date time.Time, years int) time.Time {
	return date.AddDate(years, 0, 0)
}

// AddMonths adds a specified number of months to a date
func AddMonths(date time.Time, months int) time.Time {
	return date.AddDate(0, months, 0)
}

// BeginningOfMonth returns the first instant of the month containing date
func BeginningOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// PaybackDate returns the month in which an investment commissioned at start is recovered
// after the given number of months.
func PaybackDate(start time.Time, months int) time.Time {
	return BeginningOfMonth(AddMonths(BeginningOfMonth(start), months))
}

// OperatingYear returns the calendar year in which operating year n (1-based) of a plant
// commissioned at start begins.
func OperatingYear(start time.Time, n int) int {
	if n < 1 {
		n = 1
	}
	return AddYears(start, n-1).Year()
}

// SplitMonths splits a month count into whole years and remaining months.
func SplitMonths(months int) (years, rest int) {
	if months < 0 {
		return 0, 0
	}
	return months / 12, months % 12
}
