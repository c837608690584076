package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCharge is one expense's resolved contribution to a single month.
type ExpenseCharge struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Type   ExpenseType     `json:"type"`
	Active bool            `json:"active"`
	Note   string          `json:"note,omitempty"` // lifecycle annotation, informative only
}

// LoanCharge is one loan's regular payment for a single month.
type LoanCharge struct {
	LoanName     string          `json:"loan_name"`
	Payment      decimal.Decimal `json:"payment"`
	FinalPayment bool            `json:"final_payment"`
}

// EarlyPayoffCharge is a lump-sum discharge of an installment plan or loan.
// It is reported separately from ordinary expenses because it draws on
// accumulated assets rather than the month's cash flow.
type EarlyPayoffCharge struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note,omitempty"`
}

// BonusDetail records one bonus paid in a month and its bucket split.
type BonusDetail struct {
	Name           string          `json:"name"`
	Amount         decimal.Decimal `json:"amount"`
	Savings        decimal.Decimal `json:"savings"`
	Investment     decimal.Decimal `json:"investment"`
	Consumption    decimal.Decimal `json:"consumption"`
	Special        decimal.Decimal `json:"special"`
	SpecialPurpose string          `json:"special_purpose,omitempty"`
}

// MonthRecord is one month of the projection. Records are emitted in strictly
// increasing month order and never mutated afterwards.
type MonthRecord struct {
	Month int       `json:"month"` // 1-based
	Date  time.Time `json:"date"`  // first day of the month

	Income       decimal.Decimal `json:"income"`
	BaseIncome   decimal.Decimal `json:"base_income"`
	BonusIncome  decimal.Decimal `json:"bonus_income"`
	BonusDetails []BonusDetail   `json:"bonus_details,omitempty"`

	Expenses        decimal.Decimal `json:"expenses"`
	RegularExpenses decimal.Decimal `json:"regular_expenses"`
	LoanExpenses    decimal.Decimal `json:"loan_expenses"`
	ExpenseDetails  []ExpenseCharge `json:"expense_details,omitempty"`
	LoanDetails     []LoanCharge    `json:"loan_details,omitempty"`

	EarlyPayoffs       decimal.Decimal     `json:"early_payoffs"`
	EarlyPayoffDetails []EarlyPayoffCharge `json:"early_payoff_details,omitempty"`

	Net        decimal.Decimal `json:"net"`
	Savings    decimal.Decimal `json:"savings"`
	Investment decimal.Decimal `json:"investment"`

	CumulativeCash       decimal.Decimal `json:"cumulative_cash"`
	CumulativeSavings    decimal.Decimal `json:"cumulative_savings"`
	CumulativeInvestment decimal.Decimal `json:"cumulative_investment"`
	TotalAssets          decimal.Decimal `json:"total_assets"`
}

// Summary holds the steady-state monthly figures for the plan.
type Summary struct {
	MonthlyIncome       decimal.Decimal `json:"monthly_income"` // base income, excludes bonuses
	TotalAnnualBonus    decimal.Decimal `json:"total_annual_bonus"`
	MonthlyExpenses     decimal.Decimal `json:"monthly_expenses"` // stabilized figure
	MonthlyNet          decimal.Decimal `json:"monthly_net"`
	MonthlySavings      decimal.Decimal `json:"monthly_savings"`
	MonthlyInvestment   decimal.Decimal `json:"monthly_investment"`
	TotalMonthlyOutflow decimal.Decimal `json:"total_monthly_outflow"`
}

// FinalAmounts are the balances at the end of the horizon.
type FinalAmounts struct {
	Cash       decimal.Decimal `json:"cash"`
	Savings    decimal.Decimal `json:"savings"`
	Investment decimal.Decimal `json:"investment"`
	Total      decimal.Decimal `json:"total"`
}

// InvestmentStats compares contributed principal with accumulated balances.
type InvestmentStats struct {
	TotalInvested   decimal.Decimal `json:"total_invested"`
	TotalReturns    decimal.Decimal `json:"total_returns"`
	TotalSaved      decimal.Decimal `json:"total_saved"`
	SavingsInterest decimal.Decimal `json:"savings_interest"`
}

// ProjectionResult is the engine's complete output for one plan.
type ProjectionResult struct {
	Summary              Summary               `json:"summary"`
	MonthlyData          []MonthRecord         `json:"monthly_data"`
	FinalAmounts         FinalAmounts          `json:"final_amounts"`
	InvestmentStats      InvestmentStats       `json:"investment_stats"`
	DebtAnalysis         *DebtAnalysis         `json:"debt_analysis,omitempty"`
	DebtStrategyAnalysis *DebtStrategyAnalysis `json:"debt_strategy_analysis,omitempty"`
	HousingAffordability *HousingAffordability `json:"housing_affordability,omitempty"`
}
