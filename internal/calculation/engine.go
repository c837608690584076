package calculation

import (
	"fmt"

	"github.com/finplan/cashflow-projector/internal/domain"
	"github.com/finplan/cashflow-projector/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Engine runs the monthly cash-flow projection. It holds no state across
// runs: each Project call treats its inputs as read-only and allocates a
// fresh result, so concurrent invocations never alias mutable structures.
type Engine struct {
	Logger Logger
}

// NewEngine creates a projection engine with a no-op logger.
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op
// logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// validatePlan enforces the preconditions that abort a projection before any
// computation starts. Everything else is a per-record data-quality issue and
// is recovered locally inside the month loop.
func validatePlan(plan *domain.Plan) error {
	if plan == nil {
		return fmt.Errorf("plan is required")
	}
	if plan.AsOf.IsZero() {
		return fmt.Errorf("as_of date is required: the horizon start must be explicit")
	}
	if !plan.Income.Amount.IsPositive() {
		return fmt.Errorf("income.amount must be positive, got %s", plan.Income.Amount)
	}
	if plan.PredictionMonths < 1 || plan.PredictionMonths > domain.MaxPredictionMonths {
		return fmt.Errorf("prediction_months must be between 1 and %d, got %d",
			domain.MaxPredictionMonths, plan.PredictionMonths)
	}
	return nil
}

// Project runs the full monthly projection for a plan and derives the debt
// and affordability analyses over the same inputs.
func (e *Engine) Project(plan *domain.Plan) (*domain.ProjectionResult, error) {
	if err := validatePlan(plan); err != nil {
		return nil, err
	}

	asOf := plan.AsOf
	baseIncome := plan.Income.MonthlyAmount()
	policy := plan.Investment

	// Expenses with no name or a non-positive amount are excluded from
	// totals; everything else gets a lifecycle schedule up front.
	schedules := make([]expenseSchedule, len(plan.Expenses))
	for i := range plan.Expenses {
		exp := &plan.Expenses[i]
		if exp.Name == "" || !exp.Amount.IsPositive() {
			continue
		}
		schedules[i] = newExpenseSchedule(exp, asOf, e.Logger)
	}

	loanSchedules := make([]*loanSchedule, 0, len(plan.Loans))
	for i := range plan.Loans {
		if ls := newLoanSchedule(&plan.Loans[i], e.Logger); ls != nil {
			loanSchedules = append(loanSchedules, ls)
		}
	}

	savingsRate := policy.MonthlySavingsRate()
	investmentRate := policy.MonthlyInvestmentRate()

	cumulativeCash := decimal.Zero
	cumulativeSavings := decimal.Zero
	cumulativeInvestment := decimal.Zero

	monthly := make([]domain.MonthRecord, 0, plan.PredictionMonths)
	for m := 0; m < plan.PredictionMonths; m++ {
		monthStart := dateutil.MonthStart(dateutil.AddMonths(asOf, m))
		monthEnd := dateutil.MonthEnd(monthStart)

		bonus := BonusesForMonth(plan.Income.Bonuses, monthStart)
		income := baseIncome.Add(bonus.Total)

		regular := decimal.Zero
		earlyPayoffs := decimal.Zero
		var expenseDetails []domain.ExpenseCharge
		var earlyPayoffDetails []domain.EarlyPayoffCharge
		for i, sched := range schedules {
			if sched == nil {
				continue
			}
			res := sched.Resolve(monthStart, monthEnd, m)
			if res.EarlyPayoff {
				earlyPayoffs = earlyPayoffs.Add(res.Amount)
				earlyPayoffDetails = append(earlyPayoffDetails, domain.EarlyPayoffCharge{
					Name:   plan.Expenses[i].Name,
					Amount: res.Amount,
					Note:   res.Note,
				})
				continue
			}
			regular = regular.Add(res.Amount)
			if res.Amount.IsPositive() || res.Note != "" {
				expenseDetails = append(expenseDetails, domain.ExpenseCharge{
					Name:   plan.Expenses[i].Name,
					Amount: res.Amount,
					Type:   plan.Expenses[i].Type,
					Active: res.Active,
					Note:   res.Note,
				})
			}
		}

		loanTotal := decimal.Zero
		var loanDetails []domain.LoanCharge
		for _, ls := range loanSchedules {
			payment, prepayment, final := ls.resolveMonth(m + 1)
			loanTotal = loanTotal.Add(payment)
			if payment.IsPositive() {
				loanDetails = append(loanDetails, domain.LoanCharge{
					LoanName:     ls.name,
					Payment:      payment,
					FinalPayment: final,
				})
			}
			if prepayment.IsPositive() {
				earlyPayoffs = earlyPayoffs.Add(prepayment)
				earlyPayoffDetails = append(earlyPayoffDetails, domain.EarlyPayoffCharge{
					Name:   ls.name,
					Amount: prepayment,
					Note:   fmt.Sprintf("%s: loan prepayment", ls.name),
				})
			}
		}

		expenses := regular.Add(loanTotal)
		net := income.Sub(expenses)

		monthlySavings := policy.MonthlySavings.Add(bonus.ForSavings)
		monthlyInvestment := policy.MonthlyInvestment.Add(bonus.ForInvestment)

		// Auto-allocation splits the surplus above the planned contributions
		// proportionally to the existing savings:investment ratio. A 0:0
		// ratio leaves the surplus as cash.
		if policy.AutoAllocate {
			planned := monthlySavings.Add(monthlyInvestment)
			if net.GreaterThan(planned) && planned.IsPositive() {
				surplus := net.Sub(planned)
				monthlySavings = monthlySavings.Add(surplus.Mul(monthlySavings).Div(planned))
				monthlyInvestment = monthlyInvestment.Add(surplus.Mul(monthlyInvestment).Div(planned))
			}
		}

		if policy.CompoundInterest {
			cumulativeSavings = cumulativeSavings.Mul(one.Add(savingsRate)).Add(monthlySavings)
			cumulativeInvestment = cumulativeInvestment.Mul(one.Add(investmentRate)).Add(monthlyInvestment)
		} else {
			cumulativeSavings = cumulativeSavings.Add(monthlySavings)
			cumulativeInvestment = cumulativeInvestment.Add(monthlyInvestment)
		}

		cashFlow := net.Sub(monthlySavings).Sub(monthlyInvestment).Sub(earlyPayoffs)
		cumulativeCash = cumulativeCash.Add(cashFlow)
		totalAssets := cumulativeCash.Add(cumulativeSavings).Add(cumulativeInvestment)

		monthly = append(monthly, domain.MonthRecord{
			Month:                m + 1,
			Date:                 monthStart,
			Income:               income,
			BaseIncome:           baseIncome,
			BonusIncome:          bonus.Total,
			BonusDetails:         bonus.Details,
			Expenses:             expenses,
			RegularExpenses:      regular,
			LoanExpenses:         loanTotal,
			ExpenseDetails:       expenseDetails,
			LoanDetails:          loanDetails,
			EarlyPayoffs:         earlyPayoffs,
			EarlyPayoffDetails:   earlyPayoffDetails,
			Net:                  net,
			Savings:              monthlySavings,
			Investment:           monthlyInvestment,
			CumulativeCash:       cumulativeCash,
			CumulativeSavings:    cumulativeSavings,
			CumulativeInvestment: cumulativeInvestment,
			TotalAssets:          totalAssets,
		})
	}

	stabilized := stabilizedMonthlyExpenses(plan.Expenses, loanSchedules, plan.PredictionMonths)
	totalAnnualBonus := decimal.Zero
	for _, b := range plan.Income.Bonuses {
		totalAnnualBonus = totalAnnualBonus.Add(b.Amount)
	}

	months := decimal.NewFromInt(int64(plan.PredictionMonths))
	totalInvested := policy.MonthlyInvestment.Mul(months)
	totalSaved := policy.MonthlySavings.Mul(months)

	location := plan.Income.Location
	debt := AnalyzeDebt(baseIncome, plan.Expenses, location, plan.LoanPaymentReduction, plan.Loans)
	strategy := AnalyzeDebtWithStrategy(baseIncome, plan.Expenses, location, plan.PredictionMonths, plan.Loans)
	currentDebts := debt.Debt.CreditLoan.Add(debt.Debt.CardInstallments).Add(debt.Debt.OtherDebts)
	housing := EvaluateHousingAffordability(baseIncome, currentDebts, debt.MinimumLivingCost,
		DefaultLoanToValuePct, DefaultMortgageRatePct, DefaultMortgageTermYears)

	return &domain.ProjectionResult{
		Summary: domain.Summary{
			MonthlyIncome:       baseIncome,
			TotalAnnualBonus:    totalAnnualBonus,
			MonthlyExpenses:     stabilized,
			MonthlyNet:          baseIncome.Sub(stabilized),
			MonthlySavings:      policy.MonthlySavings,
			MonthlyInvestment:   policy.MonthlyInvestment,
			TotalMonthlyOutflow: stabilized.Add(policy.MonthlySavings).Add(policy.MonthlyInvestment),
		},
		MonthlyData: monthly,
		FinalAmounts: domain.FinalAmounts{
			Cash:       cumulativeCash,
			Savings:    cumulativeSavings,
			Investment: cumulativeInvestment,
			Total:      cumulativeCash.Add(cumulativeSavings).Add(cumulativeInvestment),
		},
		InvestmentStats: domain.InvestmentStats{
			TotalInvested:   totalInvested,
			TotalReturns:    cumulativeInvestment.Sub(totalInvested),
			TotalSaved:      totalSaved,
			SavingsInterest: cumulativeSavings.Sub(totalSaved),
		},
		DebtAnalysis:         debt,
		DebtStrategyAnalysis: strategy,
		HousingAffordability: housing,
	}, nil
}

// stabilizedMonthlyExpenses estimates the steady-state monthly outflow once
// the horizon has played out: installment plans that finish inside the
// horizon drop away, and loans settle at their post-prepayment payment.
func stabilizedMonthlyExpenses(expenses []domain.Expense, loans []*loanSchedule, predictionMonths int) decimal.Decimal {
	total := decimal.Zero
	for i := range expenses {
		exp := &expenses[i]
		if exp.Name == "" || !exp.Amount.IsPositive() {
			continue
		}
		switch exp.Type {
		case domain.ExpenseMonthly:
			total = total.Add(exp.Amount)
		case domain.ExpenseYearly:
			total = total.Add(exp.Amount.Div(twelve))
		case domain.ExpenseAnnualRecurring:
			if exp.IsInstallmentPlan() {
				if exp.RemainingInstallments() > predictionMonths {
					total = total.Add(exp.Amount)
				}
			} else {
				total = total.Add(exp.Amount.Div(twelve))
			}
		}
	}
	for _, ls := range loans {
		total = total.Add(ls.monthlyPaymentAfterStrategy())
	}
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}
