package domain

import (
	"github.com/shopspring/decimal"
)

// RecurrenceUnit describes how an income amount recurs.
type RecurrenceUnit string

const (
	RecurMonthly RecurrenceUnit = "monthly"
	RecurYearly  RecurrenceUnit = "yearly"
)

// Income is the household's base recurring income plus dated one-time bonuses.
type Income struct {
	Unit     RecurrenceUnit `yaml:"unit" json:"unit"`
	Amount   decimal.Decimal `yaml:"amount" json:"amount"`
	Bonuses  []Bonus         `yaml:"bonuses,omitempty" json:"bonuses,omitempty"`
	Location string          `yaml:"location,omitempty" json:"location,omitempty"`
}

// MonthlyAmount normalizes the base income to a monthly figure.
func (inc *Income) MonthlyAmount() decimal.Decimal {
	if inc.Unit == RecurYearly {
		return inc.Amount.Div(decimal.NewFromInt(12))
	}
	return inc.Amount
}

// Bonus is a one-time-per-year income event paid in a fixed calendar month.
type Bonus struct {
	ID         string          `yaml:"id,omitempty" json:"id,omitempty"`
	Name       string          `yaml:"name" json:"name"`
	Amount     decimal.Decimal `yaml:"amount" json:"amount"`
	Month      int             `yaml:"month" json:"month"` // calendar month 1-12
	Allocation BonusAllocation `yaml:"allocation" json:"allocation"`
}

// BonusAllocation splits a bonus into buckets by independent percentages.
// The percentages are 0-100 sliders and are not required to sum to 100; any
// unallocated remainder stays as unspent cash.
type BonusAllocation struct {
	SavingsPct     decimal.Decimal `yaml:"savings_pct" json:"savings_pct"`
	InvestmentPct  decimal.Decimal `yaml:"investment_pct" json:"investment_pct"`
	ConsumptionPct decimal.Decimal `yaml:"consumption_pct" json:"consumption_pct"`
	SpecialPct     decimal.Decimal `yaml:"special_pct" json:"special_pct"`
	SpecialPurpose string          `yaml:"special_purpose,omitempty" json:"special_purpose,omitempty"`
}
