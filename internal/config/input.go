package config

import (
	"fmt"
	"os"
	"time"

	"github.com/finplan/cashflow-projector/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of plan input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a projection plan from a YAML file.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var plan domain.Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidatePlan(&plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}

	return &plan, nil
}

// ValidatePlan validates the loaded plan. Messages name the offending field
// and constraint so callers can surface them directly.
func (ip *InputParser) ValidatePlan(plan *domain.Plan) error {
	if plan.AsOf.IsZero() {
		return fmt.Errorf("as_of is required: the horizon start date must be explicit")
	}
	if plan.PredictionMonths < 1 || plan.PredictionMonths > domain.MaxPredictionMonths {
		return fmt.Errorf("prediction_months must be between 1 and %d, got %d",
			domain.MaxPredictionMonths, plan.PredictionMonths)
	}
	if err := ip.validateIncome(&plan.Income); err != nil {
		return fmt.Errorf("income validation failed: %w", err)
	}
	for i := range plan.Expenses {
		if err := ip.validateExpense(&plan.Expenses[i]); err != nil {
			return fmt.Errorf("expense %d (%s) validation failed: %w", i, plan.Expenses[i].Name, err)
		}
	}
	for i := range plan.Loans {
		if err := ip.validateLoan(&plan.Loans[i]); err != nil {
			return fmt.Errorf("loan %d (%s) validation failed: %w", i, plan.Loans[i].Name, err)
		}
	}
	if err := ip.validateInvestment(&plan.Investment); err != nil {
		return fmt.Errorf("investment validation failed: %w", err)
	}
	return nil
}

func (ip *InputParser) validateIncome(inc *domain.Income) error {
	if inc.Unit != "" && inc.Unit != domain.RecurMonthly && inc.Unit != domain.RecurYearly {
		return fmt.Errorf("unit must be 'monthly' or 'yearly', got %q", inc.Unit)
	}
	if !inc.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", inc.Amount)
	}
	for i, b := range inc.Bonuses {
		if b.Month < 1 || b.Month > 12 {
			return fmt.Errorf("bonus %d (%s): month must be between 1 and 12, got %d", i, b.Name, b.Month)
		}
		if b.Amount.IsNegative() {
			return fmt.Errorf("bonus %d (%s): amount cannot be negative", i, b.Name)
		}
		for _, pct := range []decimal.Decimal{
			b.Allocation.SavingsPct, b.Allocation.InvestmentPct,
			b.Allocation.ConsumptionPct, b.Allocation.SpecialPct,
		} {
			if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
				return fmt.Errorf("bonus %d (%s): allocation percentages must be between 0 and 100", i, b.Name)
			}
		}
	}
	return nil
}

func (ip *InputParser) validateExpense(e *domain.Expense) error {
	switch e.Type {
	case domain.ExpenseMonthly, domain.ExpenseYearly, domain.ExpenseAnnualRecurring:
	default:
		return fmt.Errorf("type must be 'monthly', 'yearly', or 'annual-recurring', got %q", e.Type)
	}
	if e.Amount.IsNegative() {
		return fmt.Errorf("amount cannot be negative")
	}
	if e.CycleType != "" && e.CycleType != domain.CycleFixed && e.CycleType != domain.CycleStatement {
		return fmt.Errorf("cycle_type must be 'fixed' or 'statement', got %q", e.CycleType)
	}
	if e.CycleType == domain.CycleFixed && e.CycleDays < 0 {
		return fmt.Errorf("cycle_days cannot be negative")
	}
	if e.PaidInstallments < 0 {
		return fmt.Errorf("paid_installments cannot be negative")
	}
	if e.EarlyPayoff && e.PayoffMonth < 1 {
		return fmt.Errorf("payoff_month must be at least 1 when early_payoff is set")
	}
	// Malformed payment dates are deliberately NOT rejected here: the engine
	// fails open on them and logs a data-quality warning.
	return nil
}

func (ip *InputParser) validateLoan(l *domain.Loan) error {
	if l.OriginalAmount.IsNegative() {
		return fmt.Errorf("original_amount cannot be negative")
	}
	if l.AnnualRatePct.IsNegative() {
		return fmt.Errorf("annual_rate_pct cannot be negative")
	}
	if l.PaidPeriods < 0 {
		return fmt.Errorf("paid_periods cannot be negative")
	}
	if l.EnablePrepayment {
		if l.PrepaymentMonth < 1 {
			return fmt.Errorf("prepayment_month must be at least 1 when enable_prepayment is set")
		}
		if l.PrepaymentAmount.IsNegative() {
			return fmt.Errorf("prepayment_amount cannot be negative")
		}
	}
	// Loans missing principal or term are usable input: they contribute zero
	// and are flagged by the engine, not rejected.
	return nil
}

func (ip *InputParser) validateInvestment(p *domain.InvestmentPolicy) error {
	if p.MonthlySavings.IsNegative() {
		return fmt.Errorf("monthly_savings cannot be negative")
	}
	if p.MonthlyInvestment.IsNegative() {
		return fmt.Errorf("monthly_investment cannot be negative")
	}
	if p.SavingsRatePct.IsNegative() {
		return fmt.Errorf("savings_rate_pct cannot be negative")
	}
	return nil
}

// CreateExamplePlan creates an example plan covering every expense lifecycle
// and a loan with a planned prepayment.
func (ip *InputParser) CreateExamplePlan() *domain.Plan {
	asOf, _ := time.Parse("2006-01-02", "2025-08-01")

	return &domain.Plan{
		AsOf:             asOf,
		PredictionMonths: 12,
		Income: domain.Income{
			Unit:     domain.RecurMonthly,
			Amount:   decimal.NewFromInt(45000),
			Location: "taipei",
			Bonuses: []domain.Bonus{
				{
					Name:   "Year-end bonus",
					Amount: decimal.NewFromInt(90000),
					Month:  1,
					Allocation: domain.BonusAllocation{
						SavingsPct:     decimal.NewFromInt(40),
						InvestmentPct:  decimal.NewFromInt(40),
						ConsumptionPct: decimal.NewFromInt(20),
					},
				},
			},
		},
		Expenses: []domain.Expense{
			{
				Name:   "Rent",
				Amount: decimal.NewFromInt(15000),
				Type:   domain.ExpenseMonthly,
			},
			{
				Name:        "Car insurance",
				Amount:      decimal.NewFromInt(2666),
				Type:        domain.ExpenseAnnualRecurring,
				PaymentDate: "2025-05-15",
				CycleType:   domain.CycleStatement,
				// Restarts every May; 12 installments per policy year.
				IsAnnualRecurring: true,
				PaidInstallments:  3,
				TotalInstallments: 12,
			},
			{
				Name:              "Laptop installment",
				Amount:            decimal.NewFromInt(3200),
				Type:              domain.ExpenseAnnualRecurring,
				PaymentDate:       "2025-06-05",
				CycleType:         domain.CycleStatement,
				PaidInstallments:  2,
				TotalInstallments: 10,
			},
		},
		Investment: domain.InvestmentPolicy{
			MonthlySavings:    decimal.NewFromInt(5000),
			MonthlyInvestment: decimal.NewFromInt(8000),
			AnnualReturnPct:   decimal.NewFromInt(7),
			SavingsRatePct:    decimal.NewFromFloat(1.5),
			CompoundInterest:  true,
			AutoAllocate:      false,
		},
		Loans: []domain.Loan{
			{
				Name:             "Personal credit loan",
				OriginalAmount:   decimal.NewFromInt(1000000),
				AnnualRatePct:    decimal.NewFromFloat(2.5),
				TotalPeriods:     84,
				PaidPeriods:      12,
				EnablePrepayment: true,
				PrepaymentAmount: decimal.NewFromInt(200000),
				PrepaymentMonth:  6,
			},
		},
	}
}
