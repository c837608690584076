package domain

import (
	"github.com/shopspring/decimal"
)

// InvestmentPolicy is the monthly savings/investment allocation policy.
// Rates are annual percentages; zero means zero (no hidden defaults).
type InvestmentPolicy struct {
	MonthlySavings    decimal.Decimal `yaml:"monthly_savings" json:"monthly_savings"`
	MonthlyInvestment decimal.Decimal `yaml:"monthly_investment" json:"monthly_investment"`
	AnnualReturnPct   decimal.Decimal `yaml:"annual_return_pct" json:"annual_return_pct"`
	SavingsRatePct    decimal.Decimal `yaml:"savings_rate_pct" json:"savings_rate_pct"`
	CompoundInterest  bool            `yaml:"compound_interest" json:"compound_interest"`
	AutoAllocate      bool            `yaml:"auto_allocate" json:"auto_allocate"`
}

// MonthlyInvestmentRate converts the annual return percentage to a monthly
// fractional rate.
func (p *InvestmentPolicy) MonthlyInvestmentRate() decimal.Decimal {
	return p.AnnualReturnPct.Div(decimal.NewFromInt(1200))
}

// MonthlySavingsRate converts the annual savings rate percentage to a monthly
// fractional rate.
func (p *InvestmentPolicy) MonthlySavingsRate() decimal.Decimal {
	return p.SavingsRatePct.Div(decimal.NewFromInt(1200))
}
