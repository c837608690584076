package calculation

import (
	"testing"
	"time"

	"github.com/finplan/cashflow-projector/internal/domain"
	"github.com/finplan/cashflow-projector/pkg/dateutil"
	"github.com/stretchr/testify/assert"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	assert.NoError(t, err)
	return d
}

func monthBounds(t *testing.T, s string) (time.Time, time.Time) {
	t.Helper()
	start := dateutil.MonthStart(mustDate(t, s))
	return start, dateutil.MonthEnd(start)
}

func TestParseAnchor(t *testing.T) {
	logger := &recordingLogger{}

	t.Run("Empty anchor is not a warning", func(t *testing.T) {
		_, ok := parseAnchor("", logger)
		assert.False(t, ok)
		assert.Empty(t, logger.warnings)
	})

	t.Run("Malformed anchor fails open with a warning", func(t *testing.T) {
		_, ok := parseAnchor("not-a-date", logger)
		assert.False(t, ok)
		assert.Len(t, logger.warnings, 1)
	})

	t.Run("Valid anchor parses", func(t *testing.T) {
		d, ok := parseAnchor("2025-05-15", logger)
		assert.True(t, ok)
		assert.Equal(t, 2025, d.Year())
		assert.Equal(t, time.May, d.Month())
		assert.Equal(t, 15, d.Day())
	})
}

func TestDueThisMonthStatementCycle(t *testing.T) {
	anchor := mustDate(t, "2025-05-15")

	tests := []struct {
		name  string
		month string
		due   bool
	}{
		{"Anchor month", "2025-05-01", true},
		{"Any later month", "2025-09-01", true},
		{"Any earlier month", "2025-01-01", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := monthBounds(t, tt.month)
			assert.Equal(t, tt.due, DueThisMonth(anchor, true, domain.CycleStatement, 0, start, end))
		})
	}

	t.Run("Day 31 clamps into February", func(t *testing.T) {
		anchor31 := mustDate(t, "2025-01-31")
		start, end := monthBounds(t, "2025-02-01")
		assert.True(t, DueThisMonth(anchor31, true, domain.CycleStatement, 0, start, end))
	})

	t.Run("No anchor means due every month", func(t *testing.T) {
		start, end := monthBounds(t, "2025-02-01")
		assert.True(t, DueThisMonth(time.Time{}, false, domain.CycleStatement, 0, start, end))
	})
}

func TestDueThisMonthFixedCycle(t *testing.T) {
	// A 30-day cycle from Jan 1 lands on Jan 1, Jan 31, Mar 2, Apr 1... so
	// February 2025 has no payment.
	anchor := mustDate(t, "2025-01-01")

	tests := []struct {
		name  string
		month string
		due   bool
	}{
		{"Anchor month", "2025-01-01", true},
		{"Skipped month", "2025-02-01", false},
		{"Following month", "2025-03-01", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := monthBounds(t, tt.month)
			assert.Equal(t, tt.due, DueThisMonth(anchor, true, domain.CycleFixed, 30, start, end))
		})
	}

	t.Run("Zero cycle days assumes the default", func(t *testing.T) {
		start, end := monthBounds(t, "2025-02-01")
		assert.False(t, DueThisMonth(anchor, true, domain.CycleFixed, 0, start, end))
	})
}

func TestDueInAnchorMonth(t *testing.T) {
	anchor := mustDate(t, "2025-05-15")

	start, end := monthBounds(t, "2026-05-01")
	assert.True(t, dueInAnchorMonth(anchor, start, end), "same calendar month of a later year")

	start, end = monthBounds(t, "2026-06-01")
	assert.False(t, dueInAnchorMonth(anchor, start, end))
}
