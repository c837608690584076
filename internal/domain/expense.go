package domain

import (
	"github.com/shopspring/decimal"
)

// ExpenseType is the declared recurrence mode of an expense record.
type ExpenseType string

const (
	ExpenseMonthly         ExpenseType = "monthly"
	ExpenseYearly          ExpenseType = "yearly"
	ExpenseAnnualRecurring ExpenseType = "annual-recurring"
)

// CycleType selects how an annual-recurring expense's due months are found.
type CycleType string

const (
	// CycleStatement charges on the anchor's day-of-month each month.
	CycleStatement CycleType = "statement"
	// CycleFixed charges every CycleDays days counted from the anchor date.
	CycleFixed CycleType = "fixed"
)

// YearlyConfig reconfigures one calendar year of a repeating installment plan.
type YearlyConfig struct {
	Installments int             `yaml:"installments" json:"installments"`
	Amount       decimal.Decimal `yaml:"amount" json:"amount"`
	Bank         string          `yaml:"bank,omitempty" json:"bank,omitempty"`
}

// Expense is one recurring or installment expense record, in the interchange
// shape supplied by the caller. PaymentDate stays a string here: the cycle
// resolver parses it and fails open on malformed values.
type Expense struct {
	ID          string          `yaml:"id,omitempty" json:"id,omitempty"`
	Name        string          `yaml:"name" json:"name"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
	Type        ExpenseType     `yaml:"type" json:"type"`
	PaymentDate string          `yaml:"payment_date,omitempty" json:"payment_date,omitempty"` // YYYY-MM-DD
	CycleType   CycleType       `yaml:"cycle_type,omitempty" json:"cycle_type,omitempty"`
	CycleDays   int             `yaml:"cycle_days,omitempty" json:"cycle_days,omitempty"`
	Bank        string          `yaml:"bank,omitempty" json:"bank,omitempty"` // display only

	// Installment plan fields. PaidInstallments is the count already paid
	// before the horizon begins, an as-of-today fact supplied by the caller.
	PaidInstallments  int `yaml:"paid_installments,omitempty" json:"paid_installments,omitempty"`
	TotalInstallments int `yaml:"total_installments,omitempty" json:"total_installments,omitempty"`

	// IsAnnualRecurring restarts the plan every year at the anchor date, each
	// calendar year optionally reconfigured via YearlyConfigs.
	IsAnnualRecurring bool                 `yaml:"is_annual_recurring,omitempty" json:"is_annual_recurring,omitempty"`
	YearlyConfigs     map[int]YearlyConfig `yaml:"yearly_configs,omitempty" json:"yearly_configs,omitempty"`

	// EarlyPayoff clears the plan with one lump payment in PayoffMonth
	// (1-based, relative to the horizon start).
	EarlyPayoff bool `yaml:"early_payoff,omitempty" json:"early_payoff,omitempty"`
	PayoffMonth int  `yaml:"payoff_month,omitempty" json:"payoff_month,omitempty"`
}

// IsInstallmentPlan reports whether the record describes a multi-period
// installment plan rather than a single yearly charge.
func (e *Expense) IsInstallmentPlan() bool {
	return e.Type == ExpenseAnnualRecurring && e.TotalInstallments > 1
}

// RemainingInstallments returns how many installments are still unpaid as of
// the horizon start.
func (e *Expense) RemainingInstallments() int {
	total := e.TotalInstallments
	if total < 1 {
		total = 1
	}
	remaining := total - e.PaidInstallments
	if remaining < 0 {
		return 0
	}
	return remaining
}

// RemainingAmount returns the total still owed across unpaid installments.
func (e *Expense) RemainingAmount() decimal.Decimal {
	return e.Amount.Mul(decimal.NewFromInt(int64(e.RemainingInstallments())))
}
