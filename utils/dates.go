// utils/dates.go
package utils

import (
	"fmt"
	"time"
)

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// FiscalYear formats the Indian fiscal year (April to March) containing t,
// e.g. "2025-26" for any date from Apr 2025 through Mar 2026.
func FiscalYear(t time.Time) string {
	start := t.Year()
	if t.Month() < time.April {
		start--
	}
	return fmt.Sprintf("%d-%02d", start, (start+1)%100)
}

// DueDateFor resolves a payment-terms keyword to a due date.
func DueDateFor(terms string, from time.Time) time.Time {
	switch terms {
	case "immediate":
		return from
	case "15days":
		return from.AddDate(0, 0, 15)
	case "45days":
		return from.AddDate(0, 0, 45)
	default: // 30days
		return from.AddDate(0, 0, 30)
	}
}
