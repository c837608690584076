package calculation

import (
	"github.com/finplan/cashflow-projector/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// monthlyRate converts an annual percentage rate to a monthly fractional rate
// (r / 1200).
func monthlyRate(annualRatePct decimal.Decimal) decimal.Decimal {
	return annualRatePct.Div(hundred).Div(twelve)
}

// MonthlyPayment returns the standard level payment (PMT) for a principal
// amortized over the given number of monthly periods at an annual percentage
// rate. A zero rate degrades to a linear split; non-positive principal or
// periods yield zero.
func MonthlyPayment(principal, annualRatePct decimal.Decimal, periods int) decimal.Decimal {
	if periods <= 0 || !principal.IsPositive() {
		return decimal.Zero
	}
	if annualRatePct.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(periods)))
	}
	i := monthlyRate(annualRatePct)
	pow := one.Add(i).Pow(decimal.NewFromInt(int64(periods)))
	return principal.Mul(i).Mul(pow).Div(pow.Sub(one))
}

// RemainingBalance returns the closed-form balance of a level-payment loan
// after paid of total periods: P * ((1+i)^n - (1+i)^paid) / ((1+i)^n - 1).
func RemainingBalance(principal, annualRatePct decimal.Decimal, total, paid int) decimal.Decimal {
	if total <= 0 || !principal.IsPositive() {
		return decimal.Zero
	}
	if paid >= total {
		return decimal.Zero
	}
	if paid < 0 {
		paid = 0
	}
	if annualRatePct.IsZero() {
		return principal.Mul(decimal.NewFromInt(int64(total - paid))).Div(decimal.NewFromInt(int64(total)))
	}
	i := monthlyRate(annualRatePct)
	powTotal := one.Add(i).Pow(decimal.NewFromInt(int64(total)))
	powPaid := one.Add(i).Pow(decimal.NewFromInt(int64(paid)))
	return principal.Mul(powTotal.Sub(powPaid)).Div(powTotal.Sub(one))
}

// PrincipalForPayment inverts PMT: the largest principal a level monthly
// payment can amortize over the given term.
func PrincipalForPayment(payment, annualRatePct decimal.Decimal, periods int) decimal.Decimal {
	if periods <= 0 || !payment.IsPositive() {
		return decimal.Zero
	}
	if annualRatePct.IsZero() {
		return payment.Mul(decimal.NewFromInt(int64(periods)))
	}
	i := monthlyRate(annualRatePct)
	pow := one.Add(i).Pow(decimal.NewFromInt(int64(periods)))
	return payment.Mul(pow.Sub(one)).Div(i.Mul(pow))
}

// loanSchedule precomputes a loan's payment path over the horizon, including
// the re-amortization that follows a planned one-time prepayment. Both the
// month loop and the debt analyzer derive their figures from the same
// MonthlyPayment/RemainingBalance pair, so the two paths cannot drift apart.
type loanSchedule struct {
	name             string
	remainingPeriods int
	payment          decimal.Decimal // regular payment on the horizon-start balance

	prepayMonth  int // clamped to remainingPeriods; 0 when no prepayment
	prepayAmount decimal.Decimal
	postPayment  decimal.Decimal
	postPeriods  int
	discharged   bool // prepayment clears the whole balance
}

// newLoanSchedule builds the schedule for one loan. Unusable records (missing
// principal or term) return nil after a data-quality warning; they contribute
// zero to every month.
func newLoanSchedule(l *domain.Loan, logger Logger) *loanSchedule {
	if !l.Valid() {
		logger.Warnf("loan %q has no usable principal/term, contributing zero", l.Name)
		return nil
	}
	remaining := l.RemainingPeriods()
	balance := RemainingBalance(l.OriginalAmount, l.AnnualRatePct, l.TotalPeriods, l.PaidPeriods)
	ls := &loanSchedule{
		name:             l.Name,
		remainingPeriods: remaining,
		payment:          MonthlyPayment(balance, l.AnnualRatePct, remaining),
	}
	if !l.EnablePrepayment || l.PrepaymentMonth <= 0 || remaining == 0 {
		return ls
	}

	// Prepayment months beyond the remaining term are clamped, not errors.
	month := l.PrepaymentMonth
	if month > remaining {
		month = remaining
	}
	ls.prepayMonth = month
	ls.prepayAmount = l.PrepaymentAmount

	beforePrepay := RemainingBalance(balance, l.AnnualRatePct, remaining, month-1)
	afterPrepay := beforePrepay.Sub(l.PrepaymentAmount)
	if !afterPrepay.IsPositive() {
		ls.discharged = true
		return ls
	}
	ls.postPeriods = remaining - month
	if ls.postPeriods < 1 {
		ls.postPeriods = 1
	}
	ls.postPayment = MonthlyPayment(afterPrepay, l.AnnualRatePct, ls.postPeriods)
	return ls
}

// resolveMonth returns the regular payment, the separate prepayment lump, and
// whether this is the loan's final payment for a 1-based horizon month.
func (ls *loanSchedule) resolveMonth(month int) (payment, prepayment decimal.Decimal, final bool) {
	if month < 1 || month > ls.remainingPeriods {
		return decimal.Zero, decimal.Zero, false
	}
	if ls.prepayMonth == 0 {
		return ls.payment, decimal.Zero, month == ls.remainingPeriods
	}
	switch {
	case month < ls.prepayMonth:
		return ls.payment, decimal.Zero, false
	case month == ls.prepayMonth:
		// The regular payment is still due; the prepayment is a separate
		// lump outflow, not folded into it.
		return ls.payment, ls.prepayAmount, ls.discharged
	default:
		since := month - ls.prepayMonth
		if ls.discharged || since > ls.postPeriods {
			return decimal.Zero, decimal.Zero, false
		}
		return ls.postPayment, decimal.Zero, since == ls.postPeriods
	}
}

// monthlyPaymentAfterStrategy is the loan's steady payment once any planned
// prepayment has taken effect (zero when the prepayment discharges it).
func (ls *loanSchedule) monthlyPaymentAfterStrategy() decimal.Decimal {
	if ls.prepayMonth == 0 {
		return ls.payment
	}
	if ls.discharged {
		return decimal.Zero
	}
	return ls.postPayment
}
