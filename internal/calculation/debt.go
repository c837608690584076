package calculation

import (
	"fmt"
	"strings"

	"github.com/finplan/cashflow-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// Mortgage defaults used by the housing affordability analysis.
var (
	DefaultLoanToValuePct  = decimal.NewFromInt(80)
	DefaultMortgageRatePct = decimal.NewFromFloat(2.1)
)

const (
	DefaultMortgageTermYears = 30
	// DefaultLocation is assumed when a plan carries no location tag.
	DefaultLocation = "taipei"
	// affordabilityOutlookMonths is the length of the short qualification
	// projection attached to the housing analysis.
	affordabilityOutlookMonths = 6
)

// minimumLivingCosts maps a location tag to the statutory monthly minimum
// living cost (Taiwan, 2025 figures, TWD).
var minimumLivingCosts = map[string]decimal.Decimal{
	"taipei":     decimal.NewFromInt(20379),
	"new-taipei": decimal.NewFromInt(16900),
	"taoyuan":    decimal.NewFromInt(16768),
	"taichung":   decimal.NewFromInt(16768),
	"tainan":     decimal.NewFromInt(14230),
	"kaohsiung":  decimal.NewFromInt(15472),
	"keelung":    decimal.NewFromInt(15515),
	"hsinchu":    decimal.NewFromInt(16768),
	"chiayi":     decimal.NewFromInt(14230),
}

// fallbackLivingCost is the provincial standard used for unknown locations.
var fallbackLivingCost = decimal.NewFromInt(14230)

// MinimumLivingCost looks up the monthly minimum living cost for a location
// tag, falling back to the provincial standard.
func MinimumLivingCost(location string) decimal.Decimal {
	if cost, ok := minimumLivingCosts[strings.ToLower(strings.TrimSpace(location))]; ok {
		return cost
	}
	return fallbackLivingCost
}

type debtCategory int

const (
	categoryNone debtCategory = iota
	categoryHousing
	categoryCreditLoan
	categoryCardInstallment
	categoryOther
)

var (
	housingKeywords    = []string{"房貸", "房屋貸款", "住宅貸款", "mortgage", "housing loan"}
	creditKeywords     = []string{"信貸", "信用貸款", "個人信貸", "credit loan", "personal loan"}
	cardKeywords       = []string{"分期", "信用卡", "installment", "credit card"}
	genericDebtKeyword = []string{"貸款", "借款", "loan"}
)

func containsAny(name string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// classifyExpense sorts an expense into a debt category by name heuristics
// and type. Ordinary monthly expenses that match no keyword are not debt.
func classifyExpense(e *domain.Expense) debtCategory {
	name := strings.ToLower(e.Name)
	switch {
	case containsAny(name, housingKeywords):
		return categoryHousing
	case containsAny(name, creditKeywords):
		return categoryCreditLoan
	case containsAny(name, cardKeywords) || e.IsInstallmentPlan():
		return categoryCardInstallment
	case e.Type != domain.ExpenseMonthly || containsAny(name, genericDebtKeyword):
		return categoryOther
	default:
		return categoryNone
	}
}

// monthlyDebtService normalizes an expense record to a monthly debt figure.
// An early-payoff plan is averaged over a 12-month window up to the payoff
// month; completed installment plans contribute nothing.
func monthlyDebtService(e *domain.Expense) decimal.Decimal {
	if e.EarlyPayoff && e.PayoffMonth > 0 && e.IsInstallmentPlan() {
		months := e.PayoffMonth
		if months > 12 {
			months = 12
		}
		return e.Amount.Mul(decimal.NewFromInt(int64(months))).Div(twelve)
	}
	if e.IsInstallmentPlan() {
		if e.RemainingInstallments() > 0 {
			return e.Amount
		}
		return decimal.Zero
	}
	switch e.Type {
	case domain.ExpenseMonthly:
		return e.Amount
	case domain.ExpenseYearly:
		return e.Amount.Div(twelve)
	}
	return decimal.Zero
}

// AnalyzeDebt classifies the expense and loan set into debt categories and
// judges the burden on two scales: the general debt-to-income ratio and the
// bank income-coverage test (income must reach twice the sum of debt service
// and the minimum living cost). It is independent of the month loop and can
// be used for what-if checks without running a projection.
func AnalyzeDebt(monthlyIncome decimal.Decimal, expenses []domain.Expense, location string,
	loanPaymentReduction decimal.Decimal, loans []domain.Loan) *domain.DebtAnalysis {

	if location == "" {
		location = DefaultLocation
	}
	minLiving := MinimumLivingCost(location)

	var breakdown domain.DebtBreakdown
	breakdown.HousingLoan = decimal.Zero
	breakdown.CreditLoan = decimal.Zero
	breakdown.CardInstallments = decimal.Zero
	breakdown.OtherDebts = decimal.Zero

	for i := range expenses {
		exp := &expenses[i]
		if exp.Name == "" || !exp.Amount.IsPositive() {
			continue
		}
		amount := monthlyDebtService(exp)
		switch classifyExpense(exp) {
		case categoryHousing:
			breakdown.HousingLoan = breakdown.HousingLoan.Add(amount)
		case categoryCreditLoan:
			breakdown.CreditLoan = breakdown.CreditLoan.Add(amount)
		case categoryCardInstallment:
			breakdown.CardInstallments = breakdown.CardInstallments.Add(amount)
		case categoryOther:
			breakdown.OtherDebts = breakdown.OtherDebts.Add(amount)
		}
	}

	// Loan records amortize through the same PMT/remaining-balance pair as
	// the month loop.
	for i := range loans {
		l := &loans[i]
		if !l.Valid() || l.RemainingPeriods() == 0 {
			continue
		}
		balance := RemainingBalance(l.OriginalAmount, l.AnnualRatePct, l.TotalPeriods, l.PaidPeriods)
		breakdown.CreditLoan = breakdown.CreditLoan.Add(MonthlyPayment(balance, l.AnnualRatePct, l.RemainingPeriods()))
	}

	total := breakdown.HousingLoan.Add(breakdown.CreditLoan).
		Add(breakdown.CardInstallments).Add(breakdown.OtherDebts).
		Sub(loanPaymentReduction)
	if total.IsNegative() {
		total = decimal.Zero
	}
	breakdown.Total = total

	generalRatio := decimal.Zero
	if monthlyIncome.IsPositive() {
		generalRatio = total.Div(monthlyIncome).Mul(hundred).Round(2)
	}

	required := breakdown.HousingLoan.Add(minLiving).Add(breakdown.CreditLoan).Add(breakdown.CardInstallments)
	coverageRatio := decimal.Zero
	if required.IsPositive() {
		coverageRatio = monthlyIncome.Div(required).Mul(hundred).Round(2)
	}

	return &domain.DebtAnalysis{
		MonthlyIncome:     monthlyIncome,
		Location:          location,
		MinimumLivingCost: minLiving,
		Debt:              breakdown,
		General: domain.RatioAssessment{
			Ratio:          generalRatio,
			Risk:           generalDebtRisk(generalRatio),
			Recommendation: generalDebtRecommendation(generalRatio),
		},
		Coverage: domain.CoverageAssessment{
			RequiredExpenses: required,
			Ratio:            coverageRatio,
			Qualified:        coverageRatio.GreaterThanOrEqual(decimal.NewFromInt(200)),
			Risk:             coverageRisk(coverageRatio),
			Recommendation:   coverageRecommendation(coverageRatio),
		},
	}
}

// generalDebtRisk places a debt-to-income percentage on the five-tier scale.
func generalDebtRisk(ratio decimal.Decimal) domain.RiskLevel {
	switch {
	case ratio.LessThanOrEqual(decimal.NewFromInt(20)):
		return domain.RiskLevel{Level: "excellent", Label: "Excellent"}
	case ratio.LessThanOrEqual(decimal.NewFromInt(30)):
		return domain.RiskLevel{Level: "good", Label: "Good"}
	case ratio.LessThanOrEqual(decimal.NewFromInt(40)):
		return domain.RiskLevel{Level: "acceptable", Label: "Acceptable"}
	case ratio.LessThanOrEqual(decimal.NewFromInt(50)):
		return domain.RiskLevel{Level: "caution", Label: "Caution"}
	default:
		return domain.RiskLevel{Level: "high-risk", Label: "High risk"}
	}
}

func generalDebtRecommendation(ratio decimal.Decimal) string {
	switch {
	case ratio.LessThanOrEqual(decimal.NewFromInt(20)):
		return "Debt is well managed; consider increasing savings or investment."
	case ratio.LessThanOrEqual(decimal.NewFromInt(30)):
		return "Debt is under control; keep the current plan and review regularly."
	case ratio.LessThanOrEqual(decimal.NewFromInt(40)):
		return "Debt ratio is acceptable; avoid taking on new obligations."
	case ratio.LessThanOrEqual(decimal.NewFromInt(50)):
		return "Debt pressure is high; repay high-rate debt first and avoid new loans."
	default:
		return "Debt ratio is excessive; set up a repayment plan immediately."
	}
}

func coverageRisk(ratio decimal.Decimal) domain.RiskLevel {
	switch {
	case ratio.GreaterThanOrEqual(decimal.NewFromInt(300)):
		return domain.RiskLevel{Level: "excellent", Label: "Excellent"}
	case ratio.GreaterThanOrEqual(decimal.NewFromInt(250)):
		return domain.RiskLevel{Level: "good", Label: "Good"}
	case ratio.GreaterThanOrEqual(decimal.NewFromInt(200)):
		return domain.RiskLevel{Level: "qualified", Label: "Meets standard"}
	case ratio.GreaterThanOrEqual(decimal.NewFromInt(150)):
		return domain.RiskLevel{Level: "caution", Label: "Caution"}
	default:
		return domain.RiskLevel{Level: "high-risk", Label: "High risk"}
	}
}

func coverageRecommendation(ratio decimal.Decimal) string {
	switch {
	case ratio.GreaterThanOrEqual(decimal.NewFromInt(300)):
		return "Coverage is excellent; a larger mortgage is within reach."
	case ratio.GreaterThanOrEqual(decimal.NewFromInt(250)):
		return "Coverage is good; mortgage qualification is comfortable."
	case ratio.GreaterThanOrEqual(decimal.NewFromInt(200)):
		return "Meets the bank standard; raising income or cutting debt improves approval odds."
	case ratio.GreaterThanOrEqual(decimal.NewFromInt(150)):
		return "Below the bank standard; reduce existing debt before applying."
	default:
		return "Coverage is too low; consolidate debt and postpone mortgage plans."
	}
}

// AnalyzeDebtWithStrategy compares the debt burden with and without the
// plan's early payoffs and loan prepayments inside the horizon.
func AnalyzeDebtWithStrategy(monthlyIncome decimal.Decimal, expenses []domain.Expense, location string,
	predictionMonths int, loans []domain.Loan) *domain.DebtStrategyAnalysis {

	if location == "" {
		location = DefaultLocation
	}
	minLiving := MinimumLivingCost(location)
	horizon := decimal.NewFromInt(int64(predictionMonths))

	debtBefore := decimal.Zero
	debtAfter := decimal.Zero
	expensesBefore := decimal.Zero
	expensesAfter := decimal.Zero
	totalSavings := decimal.Zero
	var schedule []domain.PayoffScheduleEntry

	for i := range expenses {
		exp := &expenses[i]
		if exp.Name == "" || !exp.Amount.IsPositive() {
			continue
		}

		monthly := decimal.Zero
		switch exp.Type {
		case domain.ExpenseMonthly:
			monthly = exp.Amount
		case domain.ExpenseYearly:
			monthly = exp.Amount.Div(twelve)
		case domain.ExpenseAnnualRecurring:
			if exp.IsInstallmentPlan() && exp.RemainingInstallments() > 0 {
				monthly = exp.Amount
			}
		}

		expensesBefore = expensesBefore.Add(monthly)
		name := strings.ToLower(exp.Name)
		isDebt := exp.IsInstallmentPlan() ||
			containsAny(name, housingKeywords) ||
			containsAny(name, creditKeywords) ||
			containsAny(name, cardKeywords) ||
			containsAny(name, genericDebtKeyword)
		if isDebt {
			debtBefore = debtBefore.Add(monthly)
		}

		if exp.EarlyPayoff && exp.PayoffMonth > 0 && exp.IsInstallmentPlan() && exp.PayoffMonth <= predictionMonths {
			remaining := exp.RemainingInstallments()
			average := monthly.Mul(decimal.NewFromInt(int64(exp.PayoffMonth))).Div(horizon)
			expensesAfter = expensesAfter.Add(average)
			if isDebt {
				debtAfter = debtAfter.Add(average)
			}
			savedMonths := remaining - exp.PayoffMonth
			if savedMonths < 0 {
				savedMonths = 0
			}
			saved := exp.Amount.Mul(decimal.NewFromInt(int64(savedMonths)))
			totalSavings = totalSavings.Add(saved)
			schedule = append(schedule, domain.PayoffScheduleEntry{
				Name:                  exp.Name,
				PayoffMonth:           exp.PayoffMonth,
				RemainingInstallments: remaining,
				MonthlySavings:        monthly,
				TotalSavings:          saved,
			})
			continue
		}
		expensesAfter = expensesAfter.Add(monthly)
		if isDebt {
			debtAfter = debtAfter.Add(monthly)
		}
	}

	for i := range loans {
		l := &loans[i]
		ls := newLoanSchedule(l, NopLogger{})
		if ls == nil || ls.remainingPeriods == 0 {
			continue
		}
		debtBefore = debtBefore.Add(ls.payment)
		expensesBefore = expensesBefore.Add(ls.payment)

		if ls.prepayMonth > 0 && ls.prepayMonth <= predictionMonths {
			after := ls.monthlyPaymentAfterStrategy()
			debtAfter = debtAfter.Add(after)
			expensesAfter = expensesAfter.Add(after)
			monthlySaved := ls.payment.Sub(after)
			schedule = append(schedule, domain.PayoffScheduleEntry{
				Name:              l.Name,
				PayoffMonth:       ls.prepayMonth,
				MonthlySavings:    monthlySaved,
				TotalSavings:      monthlySaved.Mul(decimal.NewFromInt(int64(ls.postPeriods))),
				NewMonthlyPayment: after,
			})
			continue
		}
		debtAfter = debtAfter.Add(ls.payment)
		expensesAfter = expensesAfter.Add(ls.payment)
	}

	before := debtPosition(monthlyIncome, debtBefore, expensesBefore, minLiving)
	after := debtPosition(monthlyIncome, debtAfter, expensesAfter, minLiving)

	return &domain.DebtStrategyAnalysis{
		HasStrategy:    len(schedule) > 0,
		PayoffSchedule: schedule,
		Before:         before,
		After:          after,
		Improvement: domain.DebtImprovement{
			DebtRatioReduction:      before.DebtRatio.Sub(after.DebtRatio),
			ExpenseRatioReduction:   before.ExpenseRatio.Sub(after.ExpenseRatio),
			CoverageImprovement:     after.CoverageRatio.Sub(before.CoverageRatio),
			MonthlyDebtReduction:    debtBefore.Sub(debtAfter),
			MonthlyExpenseReduction: expensesBefore.Sub(expensesAfter),
			TotalSavings:            totalSavings,
		},
	}
}

func debtPosition(income, debt, expenses, minLiving decimal.Decimal) domain.DebtPosition {
	pos := domain.DebtPosition{
		MonthlyDebt:     debt,
		MonthlyExpenses: expenses,
		DebtRatio:       decimal.Zero,
		ExpenseRatio:    decimal.Zero,
		CoverageRatio:   decimal.Zero,
	}
	if income.IsPositive() {
		pos.DebtRatio = debt.Div(income).Mul(hundred).Round(2)
		pos.ExpenseRatio = expenses.Div(income).Mul(hundred).Round(2)
	}
	if debt.IsPositive() {
		pos.CoverageRatio = income.Div(debt.Add(minLiving)).Mul(hundred).Round(2)
	}
	pos.Risk = generalDebtRisk(pos.DebtRatio)
	return pos
}

// EvaluateHousingAffordability derives a hypothetical mortgage from the
// income left after existing debt service and the minimum living cost, using
// the bank coverage standard (half of income must cover living cost, debt,
// and the mortgage payment). The affordable payment converts to a principal
// by PMT inversion, then to a house price through the loan-to-value ratio.
func EvaluateHousingAffordability(monthlyIncome, currentDebts, minimumLivingCost decimal.Decimal,
	loanToValuePct, annualRatePct decimal.Decimal, termYears int) *domain.HousingAffordability {

	available := monthlyIncome.Div(decimal.NewFromInt(2)).Sub(minimumLivingCost).Sub(currentDebts)
	affordable := available.IsPositive()

	result := &domain.HousingAffordability{
		Affordable:        affordable,
		AffordablePayment: decimal.Zero,
		LoanAmount:        decimal.Zero,
		HousePrice:        decimal.Zero,
		DownPayment:       decimal.Zero,
		Deficit:           decimal.Zero,
		LoanToValuePct:    loanToValuePct,
		AnnualRatePct:     annualRatePct,
		TermYears:         termYears,
	}

	if affordable {
		result.AffordablePayment = available
		result.LoanAmount = PrincipalForPayment(available, annualRatePct, termYears*12)
		result.HousePrice = result.LoanAmount.Div(loanToValuePct.Div(hundred))
		result.DownPayment = result.HousePrice.Sub(result.LoanAmount)
	} else {
		result.Deficit = available.Abs()
		result.Suggestions = []string{
			fmt.Sprintf("Increase monthly income by %s", result.Deficit.Mul(decimal.NewFromInt(2)).Round(0)),
			fmt.Sprintf("Or reduce monthly debt service by %s", result.Deficit.Round(0)),
			"Or consider a location with a lower minimum living cost",
		}
	}

	result.Outlook = affordabilityOutlook(monthlyIncome, currentDebts, minimumLivingCost)
	return result
}

// affordabilityOutlook projects the qualification picture over a short
// window. The inputs are steady, so the value is the month-by-month view a
// lender would see during underwriting.
func affordabilityOutlook(monthlyIncome, currentDebts, minimumLivingCost decimal.Decimal) domain.AffordabilityOutlook {
	outlook := domain.AffordabilityOutlook{
		AverageAvailable: decimal.Zero,
	}
	sum := decimal.Zero
	for month := 1; month <= affordabilityOutlookMonths; month++ {
		available := monthlyIncome.Div(decimal.NewFromInt(2)).Sub(minimumLivingCost).Sub(currentDebts)
		if available.IsNegative() {
			available = decimal.Zero
		}
		dti := decimal.Zero
		coverage := decimal.Zero
		if monthlyIncome.IsPositive() {
			dti = currentDebts.Div(monthlyIncome).Mul(hundred).Round(2)
			coverage = monthlyIncome.Div(currentDebts.Add(minimumLivingCost)).Mul(hundred).Round(2)
		}
		qualified := available.IsPositive() && coverage.GreaterThanOrEqual(decimal.NewFromInt(200))
		if qualified {
			outlook.QualifiedMonths++
		}
		sum = sum.Add(available)
		outlook.Months = append(outlook.Months, domain.MonthlyAffordability{
			Month:               month,
			AvailableForHousing: available,
			DebtToIncomeRatio:   dti,
			CoverageRatio:       coverage,
			Qualified:           qualified,
		})
	}
	outlook.AverageAvailable = sum.Div(decimal.NewFromInt(affordabilityOutlookMonths)).Round(2)
	return outlook
}

// RequiredIncomeForPrice reverses the affordability question: the monthly
// income needed to qualify for a house at the given price under the 2x
// coverage standard.
func RequiredIncomeForPrice(housePrice, loanToValuePct, annualRatePct decimal.Decimal, termYears int,
	minimumLivingCost, currentDebts decimal.Decimal) decimal.Decimal {

	loanAmount := housePrice.Mul(loanToValuePct.Div(hundred))
	payment := MonthlyPayment(loanAmount, annualRatePct, termYears*12)
	return payment.Add(minimumLivingCost).Add(currentDebts).Mul(decimal.NewFromInt(2))
}
