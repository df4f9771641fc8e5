// Package insights implements the financial forecasting and insight engine:
// recurring-date resolution, cash-flow projection, leak detection, and
// subscription detection. Every function is a pure computation over the
// collections it receives; reference timestamps are always explicit
// parameters so results are deterministic and testable.
package insights

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"fintrack/internal/models"
)

// ErrInvalidExpectedDate is returned when a recurring plan's expected date
// is neither an integer day nor a recognized sentinel.
var ErrInvalidExpectedDate = errors.New("invalid expected date")

// ResolveDay resolves a plan's textual day-of-month specifier for the given
// year and month. Integer strings are returned as-is; "last" resolves to the
// final calendar day and "last-working" to the final weekday (Mon-Fri).
func ResolveDay(expected string, year int, month time.Month) (int, error) {
	switch expected {
	case models.ExpectedDateLast:
		return lastDay(year, month), nil
	case models.ExpectedDateLastWorking:
		d := time.Date(year, month, lastDay(year, month), 0, 0, 0, 0, time.UTC)
		for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			d = d.AddDate(0, 0, -1)
		}
		return d.Day(), nil
	}

	day, err := strconv.Atoi(expected)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidExpectedDate, expected)
	}
	return day, nil
}

// lastDay returns the number of days in the given month.
func lastDay(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// dayOf truncates a timestamp to midnight in its own location.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
