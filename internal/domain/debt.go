package domain

import (
	"github.com/shopspring/decimal"
)

// RiskLevel is a tier on one of the debt risk scales.
type RiskLevel struct {
	Level string `json:"level"`
	Label string `json:"label"`
}

// DebtBreakdown classifies monthly debt service by category.
type DebtBreakdown struct {
	HousingLoan      decimal.Decimal `json:"housing_loan"`
	CreditLoan       decimal.Decimal `json:"credit_loan"`
	CardInstallments decimal.Decimal `json:"card_installments"`
	OtherDebts       decimal.Decimal `json:"other_debts"`
	Total            decimal.Decimal `json:"total"`
}

// RatioAssessment is the general debt-to-income judgment.
type RatioAssessment struct {
	Ratio          decimal.Decimal `json:"ratio"` // percent
	Risk           RiskLevel       `json:"risk"`
	Recommendation string          `json:"recommendation"`
}

// CoverageAssessment is the bank income-coverage test: income must be at
// least twice the sum of debt service and the minimum living cost.
type CoverageAssessment struct {
	RequiredExpenses decimal.Decimal `json:"required_expenses"`
	Ratio            decimal.Decimal `json:"ratio"` // percent, income / required
	Qualified        bool            `json:"qualified"`
	Risk             RiskLevel       `json:"risk"`
	Recommendation   string          `json:"recommendation"`
}

// DebtAnalysis is the full affordability picture for the current debt set.
type DebtAnalysis struct {
	MonthlyIncome     decimal.Decimal    `json:"monthly_income"`
	Location          string             `json:"location"`
	MinimumLivingCost decimal.Decimal    `json:"minimum_living_cost"`
	Debt              DebtBreakdown      `json:"debt"`
	General           RatioAssessment    `json:"general"`
	Coverage          CoverageAssessment `json:"coverage"`
}

// PayoffScheduleEntry is one planned early payoff or loan prepayment.
type PayoffScheduleEntry struct {
	Name                  string          `json:"name"`
	PayoffMonth           int             `json:"payoff_month"`
	RemainingInstallments int             `json:"remaining_installments,omitempty"`
	MonthlySavings        decimal.Decimal `json:"monthly_savings"`
	TotalSavings          decimal.Decimal `json:"total_savings"`
	NewMonthlyPayment     decimal.Decimal `json:"new_monthly_payment"`
}

// DebtPosition is a debt-burden snapshot either before or after the planned
// early payoffs take effect.
type DebtPosition struct {
	MonthlyDebt     decimal.Decimal `json:"monthly_debt"`
	MonthlyExpenses decimal.Decimal `json:"monthly_expenses"`
	DebtRatio       decimal.Decimal `json:"debt_ratio"`
	ExpenseRatio    decimal.Decimal `json:"expense_ratio"`
	CoverageRatio   decimal.Decimal `json:"coverage_ratio"`
	Risk            RiskLevel       `json:"risk"`
}

// DebtImprovement quantifies the before/after difference.
type DebtImprovement struct {
	DebtRatioReduction      decimal.Decimal `json:"debt_ratio_reduction"`
	ExpenseRatioReduction   decimal.Decimal `json:"expense_ratio_reduction"`
	CoverageImprovement     decimal.Decimal `json:"coverage_improvement"`
	MonthlyDebtReduction    decimal.Decimal `json:"monthly_debt_reduction"`
	MonthlyExpenseReduction decimal.Decimal `json:"monthly_expense_reduction"`
	TotalSavings            decimal.Decimal `json:"total_savings"`
}

// DebtStrategyAnalysis compares the debt burden with and without the plan's
// early-payoff and prepayment strategy.
type DebtStrategyAnalysis struct {
	HasStrategy    bool                  `json:"has_strategy"`
	PayoffSchedule []PayoffScheduleEntry `json:"payoff_schedule,omitempty"`
	Before         DebtPosition          `json:"before"`
	After          DebtPosition          `json:"after"`
	Improvement    DebtImprovement       `json:"improvement"`
}

// MonthlyAffordability is one month of the mortgage qualification outlook.
type MonthlyAffordability struct {
	Month               int             `json:"month"`
	AvailableForHousing decimal.Decimal `json:"available_for_housing"`
	DebtToIncomeRatio   decimal.Decimal `json:"debt_to_income_ratio"`
	CoverageRatio       decimal.Decimal `json:"coverage_ratio"`
	Qualified           bool            `json:"qualified"`
}

// AffordabilityOutlook summarizes a short qualification projection.
type AffordabilityOutlook struct {
	Months           []MonthlyAffordability `json:"months"`
	AverageAvailable decimal.Decimal        `json:"average_available"`
	QualifiedMonths  int                    `json:"qualified_months"`
}

// HousingAffordability derives a hypothetical mortgage from residual income
// after existing debt and the minimum living cost.
type HousingAffordability struct {
	Affordable        bool                 `json:"affordable"`
	AffordablePayment decimal.Decimal      `json:"affordable_payment"`
	LoanAmount        decimal.Decimal      `json:"loan_amount"`
	HousePrice        decimal.Decimal      `json:"house_price"`
	DownPayment       decimal.Decimal      `json:"down_payment"`
	Deficit           decimal.Decimal      `json:"deficit"`
	LoanToValuePct    decimal.Decimal      `json:"loan_to_value_pct"`
	AnnualRatePct     decimal.Decimal      `json:"annual_rate_pct"`
	TermYears         int                  `json:"term_years"`
	Outlook           AffordabilityOutlook `json:"outlook"`
	Suggestions       []string             `json:"suggestions,omitempty"`
}
