package calculation

import (
	"testing"
	"time"

	"github.com/finplan/cashflow-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func basicPlan(t *testing.T) *domain.Plan {
	t.Helper()
	return &domain.Plan{
		AsOf:             mustDate(t, "2025-08-01"),
		PredictionMonths: 12,
		Income: domain.Income{
			Unit:   domain.RecurMonthly,
			Amount: decimal.NewFromInt(50000),
		},
		Expenses: []domain.Expense{
			{Name: "Rent", Amount: decimal.NewFromInt(15000), Type: domain.ExpenseMonthly},
		},
	}
}

func TestProjectValidation(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name   string
		mutate func(*domain.Plan)
		errMsg string
	}{
		{
			name:   "Missing as_of",
			mutate: func(p *domain.Plan) { p.AsOf = time.Time{} },
			errMsg: "as_of",
		},
		{
			name:   "Zero months",
			mutate: func(p *domain.Plan) { p.PredictionMonths = 0 },
			errMsg: "prediction_months",
		},
		{
			name:   "Too many months",
			mutate: func(p *domain.Plan) { p.PredictionMonths = 121 },
			errMsg: "prediction_months",
		},
		{
			name:   "Non-positive income",
			mutate: func(p *domain.Plan) { p.Income.Amount = decimal.Zero },
			errMsg: "income",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := basicPlan(t)
			tt.mutate(plan)
			_, err := engine.Project(plan)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	t.Run("Nil plan", func(t *testing.T) {
		_, err := engine.Project(nil)
		assert.Error(t, err)
	})
}

func TestProjectBasicCashFlow(t *testing.T) {
	engine := NewEngine()
	result, err := engine.Project(basicPlan(t))
	assert.NoError(t, err)
	assert.Len(t, result.MonthlyData, 12)

	for _, m := range result.MonthlyData {
		assert.True(t, m.Income.Equal(decimal.NewFromInt(50000)))
		assert.True(t, m.Expenses.Equal(decimal.NewFromInt(15000)))
		assert.True(t, m.Net.Equal(decimal.NewFromInt(35000)))
	}
	assert.Equal(t, 1, result.MonthlyData[0].Month)
	assert.Equal(t, 12, result.MonthlyData[11].Month)
	assert.True(t, result.FinalAmounts.Cash.Equal(decimal.NewFromInt(35000*12)))

	assert.True(t, result.Summary.MonthlyExpenses.Equal(decimal.NewFromInt(15000)))
	assert.True(t, result.Summary.MonthlyNet.Equal(decimal.NewFromInt(35000)))
}

func TestProjectYearlyIncomeNormalized(t *testing.T) {
	plan := basicPlan(t)
	plan.Income.Unit = domain.RecurYearly
	plan.Income.Amount = decimal.NewFromInt(600000)

	result, err := NewEngine().Project(plan)
	assert.NoError(t, err)
	assert.True(t, result.MonthlyData[0].BaseIncome.Equal(decimal.NewFromInt(50000)))
}

func TestProjectBonusMonth(t *testing.T) {
	plan := basicPlan(t)
	plan.Income.Bonuses = []domain.Bonus{
		{
			Name:   "Year-end bonus",
			Amount: decimal.NewFromInt(90000),
			Month:  1,
			Allocation: domain.BonusAllocation{
				SavingsPct:    decimal.NewFromInt(40),
				InvestmentPct: decimal.NewFromInt(40),
			},
		},
	}

	result, err := NewEngine().Project(plan)
	assert.NoError(t, err)

	// asOf is August, so January is the 6th record.
	jan := result.MonthlyData[5]
	assert.Equal(t, time.January, jan.Date.Month())
	assert.True(t, jan.BonusIncome.Equal(decimal.NewFromInt(90000)))
	assert.True(t, jan.Savings.Equal(decimal.NewFromInt(36000)))
	assert.True(t, jan.Investment.Equal(decimal.NewFromInt(36000)))

	for i, m := range result.MonthlyData {
		if i != 5 {
			assert.True(t, m.BonusIncome.IsZero(), "month %d", i)
		}
	}
	assert.True(t, result.Summary.TotalAnnualBonus.Equal(decimal.NewFromInt(90000)))
}

func TestProjectAutoAllocateSplitsSurplus(t *testing.T) {
	plan := basicPlan(t)
	plan.Income.Amount = decimal.NewFromInt(70000)
	plan.Expenses = []domain.Expense{
		{Name: "Rent", Amount: decimal.NewFromInt(20000), Type: domain.ExpenseMonthly},
	}
	plan.Investment = domain.InvestmentPolicy{
		MonthlySavings:    decimal.NewFromInt(10000),
		MonthlyInvestment: decimal.NewFromInt(10000),
		AutoAllocate:      true,
	}

	result, err := NewEngine().Project(plan)
	assert.NoError(t, err)

	// Net 50000, planned 20000: the 30000 surplus splits 1:1.
	first := result.MonthlyData[0]
	assert.True(t, first.Savings.Equal(decimal.NewFromInt(25000)), "savings %s", first.Savings)
	assert.True(t, first.Investment.Equal(decimal.NewFromInt(25000)), "investment %s", first.Investment)
	assert.True(t, first.CumulativeCash.IsZero(), "auto-allocation absorbs the whole surplus")
}

func TestProjectCompounding(t *testing.T) {
	plan := basicPlan(t)
	plan.Investment = domain.InvestmentPolicy{
		MonthlySavings:   decimal.NewFromInt(10000),
		SavingsRatePct:   decimal.NewFromInt(12), // 1% per month
		CompoundInterest: true,
	}

	result, err := NewEngine().Project(plan)
	assert.NoError(t, err)

	first := result.MonthlyData[0].CumulativeSavings
	second := result.MonthlyData[1].CumulativeSavings
	assert.True(t, first.Equal(decimal.NewFromInt(10000)))
	assertDecimalNear(t, decimal.NewFromInt(20100), second, 0.01)

	// With growth on, each month's balance beats the flat sum.
	last := result.MonthlyData[11].CumulativeSavings
	assert.True(t, last.GreaterThan(decimal.NewFromInt(120000)))
	assert.True(t, result.InvestmentStats.SavingsInterest.IsPositive())

	for i := 1; i < len(result.MonthlyData); i++ {
		assert.True(t, result.MonthlyData[i].CumulativeSavings.GreaterThanOrEqual(
			result.MonthlyData[i-1].CumulativeSavings), "month %d", i)
	}
}

func TestProjectWithoutCompounding(t *testing.T) {
	plan := basicPlan(t)
	plan.Investment = domain.InvestmentPolicy{
		MonthlySavings:   decimal.NewFromInt(10000),
		SavingsRatePct:   decimal.NewFromInt(12),
		CompoundInterest: false,
	}

	result, err := NewEngine().Project(plan)
	assert.NoError(t, err)
	assert.True(t, result.MonthlyData[11].CumulativeSavings.Equal(decimal.NewFromInt(120000)))
	assert.True(t, result.InvestmentStats.SavingsInterest.IsZero())
}

func TestProjectLoanPayments(t *testing.T) {
	plan := basicPlan(t)
	plan.Loans = []domain.Loan{
		{
			Name:           "Credit loan",
			OriginalAmount: decimal.NewFromInt(1000000),
			AnnualRatePct:  decimal.NewFromFloat(2.5),
			TotalPeriods:   84,
		},
	}

	result, err := NewEngine().Project(plan)
	assert.NoError(t, err)

	first := result.MonthlyData[0]
	assert.True(t, first.LoanExpenses.IsPositive())
	assert.Len(t, first.LoanDetails, 1)
	assert.Equal(t, "Credit loan", first.LoanDetails[0].LoanName)
	assert.True(t, first.Expenses.Equal(first.RegularExpenses.Add(first.LoanExpenses)))
}

func TestProjectLoanPrepaymentIsEarlyPayoff(t *testing.T) {
	plan := basicPlan(t)
	plan.Loans = []domain.Loan{
		{
			Name:             "Credit loan",
			OriginalAmount:   decimal.NewFromInt(1000000),
			AnnualRatePct:    decimal.NewFromFloat(2.5),
			TotalPeriods:     84,
			EnablePrepayment: true,
			PrepaymentAmount: decimal.NewFromInt(200000),
			PrepaymentMonth:  6,
		},
	}

	result, err := NewEngine().Project(plan)
	assert.NoError(t, err)

	sixth := result.MonthlyData[5]
	assert.True(t, sixth.EarlyPayoffs.Equal(decimal.NewFromInt(200000)))
	assert.Len(t, sixth.EarlyPayoffDetails, 1)

	// The lump draws down cash but is not an ordinary expense.
	assert.True(t, sixth.Expenses.Equal(sixth.RegularExpenses.Add(sixth.LoanExpenses)))
	before := result.MonthlyData[4]
	assert.True(t, result.MonthlyData[6].LoanExpenses.LessThan(before.LoanExpenses),
		"payment drops after the prepayment")
}

func TestProjectSkipsUnusableRecords(t *testing.T) {
	logger := &recordingLogger{}
	plan := basicPlan(t)
	plan.Expenses = append(plan.Expenses,
		domain.Expense{Name: "", Amount: decimal.NewFromInt(999), Type: domain.ExpenseMonthly},
		domain.Expense{Name: "Zero", Amount: decimal.Zero, Type: domain.ExpenseMonthly},
	)
	plan.Loans = []domain.Loan{{Name: "broken loan"}}

	engine := NewEngine()
	engine.SetLogger(logger)
	result, err := engine.Project(plan)
	assert.NoError(t, err)

	assert.True(t, result.MonthlyData[0].Expenses.Equal(decimal.NewFromInt(15000)))
	assert.True(t, result.MonthlyData[0].LoanExpenses.IsZero())
	assert.NotEmpty(t, logger.warnings)
}

func TestProjectStabilizedExpensesDropFinishingPlans(t *testing.T) {
	plan := basicPlan(t)
	plan.Expenses = append(plan.Expenses, domain.Expense{
		Name:              "Short installment",
		Amount:            decimal.NewFromInt(2000),
		Type:              domain.ExpenseAnnualRecurring,
		TotalInstallments: 6,
		PaidInstallments:  0,
	})

	result, err := NewEngine().Project(plan)
	assert.NoError(t, err)

	// The 6-installment plan finishes inside the 12-month horizon, so the
	// stabilized monthly figure only carries the rent.
	assert.True(t, result.Summary.MonthlyExpenses.Equal(decimal.NewFromInt(15000)))
}

func TestProjectAttachesAnalyses(t *testing.T) {
	result, err := NewEngine().Project(basicPlan(t))
	assert.NoError(t, err)
	assert.NotNil(t, result.DebtAnalysis)
	assert.NotNil(t, result.DebtStrategyAnalysis)
	assert.NotNil(t, result.HousingAffordability)
	assert.Equal(t, DefaultLocation, result.DebtAnalysis.Location)
}

func TestProjectDeterministicForFixedAsOf(t *testing.T) {
	plan := basicPlan(t)
	a, err := NewEngine().Project(plan)
	assert.NoError(t, err)
	b, err := NewEngine().Project(plan)
	assert.NoError(t, err)
	assert.Equal(t, len(a.MonthlyData), len(b.MonthlyData))
	for i := range a.MonthlyData {
		assert.True(t, a.MonthlyData[i].TotalAssets.Equal(b.MonthlyData[i].TotalAssets), "month %d", i)
	}
}
