package calculation

import (
	"fmt"
	"time"

	"github.com/finplan/cashflow-projector/internal/domain"
	"github.com/finplan/cashflow-projector/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// resolution is the outcome of resolving one expense for one month. The note
// is a human-readable lifecycle annotation for reporting and never drives
// control flow.
type resolution struct {
	Amount      decimal.Decimal
	EarlyPayoff bool
	Active      bool
	Note        string
}

// expenseSchedule resolves one expense's lifecycle month by month. Resolve is
// called exactly once per horizon month, in increasing order; installment
// schedules advance their paid counters on each due month.
type expenseSchedule interface {
	Resolve(monthStart, monthEnd time.Time, monthIndex int) resolution
}

// newExpenseSchedule maps an expense record onto its lifecycle variant:
// monthly, yearly, annual lump, finite installment, or repeating installment,
// with an optional early-payoff decorator around either installment mode.
func newExpenseSchedule(e *domain.Expense, asOf time.Time, logger Logger) expenseSchedule {
	switch e.Type {
	case domain.ExpenseYearly:
		anchor, ok := parseAnchor(e.PaymentDate, logger)
		if !ok {
			// Without an anchor the yearly charge falls in the horizon-start
			// month of each year.
			anchor = dateutil.MonthStart(asOf)
		}
		return &yearlySchedule{name: e.Name, amount: e.Amount, anchor: anchor}

	case domain.ExpenseAnnualRecurring:
		if e.TotalInstallments > 1 {
			var inner expenseSchedule
			if e.IsAnnualRecurring {
				inner = newRepeatingInstallmentSchedule(e, asOf, logger)
			} else {
				inner = newFiniteInstallmentSchedule(e, logger)
			}
			if e.EarlyPayoff && e.PayoffMonth > 0 {
				return &earlyPayoffSchedule{
					inner:       inner,
					name:        e.Name,
					amount:      e.Amount,
					remaining:   e.RemainingInstallments(),
					payoffMonth: e.PayoffMonth,
				}
			}
			return inner
		}
		return newAnnualLumpSchedule(e, logger)

	default:
		// monthly, and any unrecognized type, charges the full amount every
		// month.
		return &monthlySchedule{name: e.Name, amount: e.Amount}
	}
}

// monthlySchedule charges the full amount every month; no terminal state.
type monthlySchedule struct {
	name   string
	amount decimal.Decimal
}

func (s *monthlySchedule) Resolve(_, _ time.Time, _ int) resolution {
	return resolution{
		Amount: s.amount,
		Active: true,
		Note:   fmt.Sprintf("%s: monthly fixed", s.name),
	}
}

// yearlySchedule charges the full annual amount once per year, in the
// anchor's calendar month.
type yearlySchedule struct {
	name   string
	amount decimal.Decimal
	anchor time.Time
}

func (s *yearlySchedule) Resolve(monthStart, monthEnd time.Time, _ int) resolution {
	if !dueInAnchorMonth(s.anchor, monthStart, monthEnd) {
		return resolution{Active: true}
	}
	return resolution{
		Amount: s.amount,
		Active: true,
		Note:   fmt.Sprintf("%s: annual payment", s.name),
	}
}

// annualLumpSchedule is an annual-recurring expense without installments
// (taxes, single-premium insurance): one lump every year at the anchor date.
type annualLumpSchedule struct {
	name      string
	amount    decimal.Decimal
	anchor    time.Time
	hasAnchor bool
}

func newAnnualLumpSchedule(e *domain.Expense, logger Logger) *annualLumpSchedule {
	anchor, ok := parseAnchor(e.PaymentDate, logger)
	if !ok {
		logger.Warnf("annual-recurring expense %q has no payment date, it will never charge", e.Name)
	}
	return &annualLumpSchedule{name: e.Name, amount: e.Amount, anchor: anchor, hasAnchor: ok}
}

func (s *annualLumpSchedule) Resolve(monthStart, monthEnd time.Time, _ int) resolution {
	if !s.hasAnchor {
		return resolution{Active: false}
	}
	if dateutil.YearMonth(monthStart) < dateutil.YearMonth(s.anchor) {
		return resolution{Active: false}
	}
	if !dueInAnchorMonth(s.anchor, monthStart, monthEnd) {
		return resolution{Active: true}
	}
	return resolution{
		Amount: s.amount,
		Active: true,
		Note:   fmt.Sprintf("%s: %d annual charge", s.name, monthStart.Year()),
	}
}

// finiteInstallmentSchedule is a single finite installment plan (typically a
// credit-card installment). Each due month advances the paid counter; once it
// reaches the total the plan is terminal and never re-triggers.
type finiteInstallmentSchedule struct {
	name      string
	amount    decimal.Decimal
	total     int
	paid      int
	anchor    time.Time
	hasAnchor bool
	cycle     domain.CycleType
	cycleDays int
}

func newFiniteInstallmentSchedule(e *domain.Expense, logger Logger) *finiteInstallmentSchedule {
	anchor, ok := parseAnchor(e.PaymentDate, logger)
	return &finiteInstallmentSchedule{
		name:      e.Name,
		amount:    e.Amount,
		total:     e.TotalInstallments,
		paid:      e.PaidInstallments,
		anchor:    anchor,
		hasAnchor: ok,
		cycle:     e.CycleType,
		cycleDays: e.CycleDays,
	}
}

func (s *finiteInstallmentSchedule) Resolve(monthStart, monthEnd time.Time, _ int) resolution {
	if s.hasAnchor && dateutil.YearMonth(monthStart) < dateutil.YearMonth(s.anchor) {
		return resolution{Active: false}
	}
	if s.paid >= s.total {
		return resolution{Active: false}
	}
	if !DueThisMonth(s.anchor, s.hasAnchor, s.cycle, s.cycleDays, monthStart, monthEnd) {
		return resolution{Active: true}
	}
	s.paid++
	note := fmt.Sprintf("%s: installment %d/%d", s.name, s.paid, s.total)
	if s.paid == s.total {
		note = fmt.Sprintf("%s: installment plan completed (%d/%d)", s.name, s.total, s.total)
	}
	return resolution{Amount: s.amount, Active: true, Note: note}
}

// repeatingInstallmentSchedule is an installment plan that restarts every
// year at the anchor date (insurance paid in N installments per year). The
// origin year uses the record's own installment settings; later cycle years
// use the matching YearlyConfigs entry when present. Between a cycle's
// completion and the next cycle's start no charge is produced.
type repeatingInstallmentSchedule struct {
	name          string
	defaultAmount decimal.Decimal
	defaultTotal  int
	yearly        map[int]domain.YearlyConfig
	anchor        time.Time
	cycle         domain.CycleType
	cycleDays     int

	cycleYear int
	paid      int
}

func newRepeatingInstallmentSchedule(e *domain.Expense, asOf time.Time, logger Logger) *repeatingInstallmentSchedule {
	anchor, ok := parseAnchor(e.PaymentDate, logger)
	if !ok {
		// Fail open: anchor the repeating plan to the horizon start.
		anchor = dateutil.MonthStart(asOf)
	}
	return &repeatingInstallmentSchedule{
		name:          e.Name,
		defaultAmount: e.Amount,
		defaultTotal:  e.TotalInstallments,
		yearly:        e.YearlyConfigs,
		anchor:        anchor,
		cycle:         e.CycleType,
		cycleDays:     e.CycleDays,
		cycleYear:     anchor.Year(),
		paid:          e.PaidInstallments,
	}
}

// configFor returns the installment count and per-installment amount for a
// cycle year. The origin year always uses the record's own settings.
func (s *repeatingInstallmentSchedule) configFor(year int) (total int, amount decimal.Decimal) {
	total, amount = s.defaultTotal, s.defaultAmount
	if year == s.anchor.Year() {
		return total, amount
	}
	if cfg, ok := s.yearly[year]; ok {
		if cfg.Installments > 0 {
			total = cfg.Installments
		}
		if cfg.Amount.IsPositive() {
			amount = cfg.Amount
		}
	}
	return total, amount
}

func (s *repeatingInstallmentSchedule) Resolve(monthStart, monthEnd time.Time, _ int) resolution {
	if dateutil.YearMonth(monthStart) < dateutil.YearMonth(s.anchor) {
		return resolution{Active: false}
	}

	total, amount := s.configFor(s.cycleYear)

	// A completed cycle stays silent until the calendar reaches the next
	// cycle's anchor month, then the next year's plan begins.
	for s.paid >= total {
		nextStart := time.Date(s.cycleYear+1, s.anchor.Month(), 1, 0, 0, 0, 0, monthStart.Location())
		if dateutil.YearMonth(monthStart) < dateutil.YearMonth(nextStart) {
			return resolution{Active: false}
		}
		s.cycleYear++
		s.paid = 0
		total, amount = s.configFor(s.cycleYear)
	}

	due := true
	if s.cycle == domain.CycleFixed {
		due = DueThisMonth(s.anchor, true, s.cycle, s.cycleDays, monthStart, monthEnd)
	}
	if !due {
		return resolution{Active: true}
	}

	s.paid++
	note := fmt.Sprintf("%s: %d cycle installment %d/%d", s.name, s.cycleYear, s.paid, total)
	if s.paid == total {
		note = fmt.Sprintf("%s: %d cycle completed (%d/%d)", s.name, s.cycleYear, total, total)
	}
	return resolution{Amount: amount, Active: true, Note: note}
}

// earlyPayoffSchedule interrupts an installment plan: in the payoff month it
// emits one lump charge covering every remaining installment, then the plan
// is terminal. The lump is flagged so the driver reports it as a draw on
// accumulated assets rather than an ordinary expense.
type earlyPayoffSchedule struct {
	inner       expenseSchedule
	name        string
	amount      decimal.Decimal
	remaining   int // unpaid installments at the horizon start
	payoffMonth int
}

func (s *earlyPayoffSchedule) Resolve(monthStart, monthEnd time.Time, monthIndex int) resolution {
	// Payoff months beyond the remaining installments are clamped.
	effective := s.payoffMonth
	if effective > s.remaining {
		effective = s.remaining
	}
	month := monthIndex + 1

	if month == effective && s.remaining > 0 {
		left := s.remaining - (effective - 1)
		if left < 0 {
			left = 0
		}
		lump := s.amount.Mul(decimal.NewFromInt(int64(left)))
		return resolution{
			Amount:      lump,
			EarlyPayoff: true,
			Active:      true,
			Note:        fmt.Sprintf("%s: paid off early (%d installments remaining)", s.name, left),
		}
	}
	if month > effective {
		return resolution{Active: false}
	}
	return s.inner.Resolve(monthStart, monthEnd, monthIndex)
}
