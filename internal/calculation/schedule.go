package calculation

import (
	"strings"
	"time"

	"github.com/finplan/cashflow-projector/internal/domain"
	"github.com/finplan/cashflow-projector/pkg/dateutil"
)

// dateLayout is the anchor date format used by the interchange records.
const dateLayout = "2006-01-02"

// defaultCycleDays is assumed when a fixed-cycle expense omits its cycle length.
const defaultCycleDays = 30

// parseAnchor parses an expense's payment anchor date. A missing anchor is not
// an error; a malformed one fails open (the expense is treated as due every
// month) and is logged as a data-quality warning.
func parseAnchor(raw string, logger Logger) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		logger.Warnf("unparseable payment date %q, treating expense as due every month", raw)
		return time.Time{}, false
	}
	return t, true
}

// DueThisMonth decides whether an expense with the given payment anchor and
// cycle policy has a payment falling inside [monthStart, monthEnd].
//
// Without an anchor the expense degrades to "due every month". A statement
// cycle applies the anchor's day-of-month to the target month, clamped to the
// month's length. A fixed cycle steps forward from the anchor in cycleDays
// increments, never re-checking past occurrences.
func DueThisMonth(anchor time.Time, hasAnchor bool, cycle domain.CycleType, cycleDays int, monthStart, monthEnd time.Time) bool {
	if !hasAnchor {
		return true
	}
	if cycle == domain.CycleFixed {
		return fixedCycleDue(anchor, cycleDays, monthStart, monthEnd)
	}
	due := dateutil.ClampDay(monthStart, anchor.Day())
	return dateutil.InRange(due, monthStart, monthEnd)
}

func fixedCycleDue(anchor time.Time, cycleDays int, monthStart, monthEnd time.Time) bool {
	if cycleDays <= 0 {
		cycleDays = defaultCycleDays
	}
	next := anchor
	for next.Before(monthStart) {
		next = next.AddDate(0, 0, cycleDays)
	}
	return dateutil.InRange(next, monthStart, monthEnd)
}

// dueInAnchorMonth reports whether the target month is the anchor's calendar
// month of the year, with the anchor's day-of-month (clamped) in range. Used
// by yearly and annual-recurring lump expenses.
func dueInAnchorMonth(anchor time.Time, monthStart, monthEnd time.Time) bool {
	if anchor.Month() != monthStart.Month() {
		return false
	}
	due := dateutil.ClampDay(monthStart, anchor.Day())
	return dateutil.InRange(due, monthStart, monthEnd)
}
