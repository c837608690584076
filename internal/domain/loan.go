package domain

import (
	"github.com/shopspring/decimal"
)

// Loan is an amortizing loan. The remaining balance as of the horizon start is
// derived analytically from PaidPeriods, never stored.
type Loan struct {
	ID             string          `yaml:"id,omitempty" json:"id,omitempty"`
	Name           string          `yaml:"name" json:"name"`
	OriginalAmount decimal.Decimal `yaml:"original_amount" json:"original_amount"`
	AnnualRatePct  decimal.Decimal `yaml:"annual_rate_pct" json:"annual_rate_pct"`
	PaidPeriods    int             `yaml:"paid_periods,omitempty" json:"paid_periods,omitempty"`
	TotalPeriods   int             `yaml:"total_periods" json:"total_periods"`

	// Optional one-time lump-sum prepayment, recorded as a separate outflow in
	// PrepaymentMonth (1-based, relative to the horizon start).
	EnablePrepayment bool            `yaml:"enable_prepayment,omitempty" json:"enable_prepayment,omitempty"`
	PrepaymentAmount decimal.Decimal `yaml:"prepayment_amount,omitempty" json:"prepayment_amount,omitempty"`
	PrepaymentMonth  int             `yaml:"prepayment_month,omitempty" json:"prepayment_month,omitempty"`
}

// RemainingPeriods returns how many payment periods are left as of the
// horizon start.
func (l *Loan) RemainingPeriods() int {
	remaining := l.TotalPeriods - l.PaidPeriods
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Valid reports whether the record carries enough data to amortize. Invalid
// loans contribute zero and are flagged as data-quality issues, not errors.
func (l *Loan) Valid() bool {
	return l.OriginalAmount.IsPositive() && l.TotalPeriods > 0
}
