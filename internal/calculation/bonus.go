package calculation

import (
	"time"

	"github.com/finplan/cashflow-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// MonthlyBonus aggregates every bonus paid in one calendar month, split into
// allocation buckets.
type MonthlyBonus struct {
	Total          decimal.Decimal
	ForSavings     decimal.Decimal
	ForInvestment  decimal.Decimal
	ForConsumption decimal.Decimal
	ForSpecial     decimal.Decimal
	Details        []domain.BonusDetail
}

// BonusesForMonth sums every bonus whose paid month matches the calendar
// month of target and splits each by its allocation percentages. Percentages
// are independent sliders; an unallocated remainder is left to the caller as
// unspent cash.
func BonusesForMonth(bonuses []domain.Bonus, target time.Time) MonthlyBonus {
	out := MonthlyBonus{
		Total:          decimal.Zero,
		ForSavings:     decimal.Zero,
		ForInvestment:  decimal.Zero,
		ForConsumption: decimal.Zero,
		ForSpecial:     decimal.Zero,
	}
	month := int(target.Month())
	for _, b := range bonuses {
		if b.Month != month || !b.Amount.IsPositive() {
			continue
		}
		savings := allocationShare(b.Amount, b.Allocation.SavingsPct)
		investment := allocationShare(b.Amount, b.Allocation.InvestmentPct)
		consumption := allocationShare(b.Amount, b.Allocation.ConsumptionPct)
		special := allocationShare(b.Amount, b.Allocation.SpecialPct)

		out.Total = out.Total.Add(b.Amount)
		out.ForSavings = out.ForSavings.Add(savings)
		out.ForInvestment = out.ForInvestment.Add(investment)
		out.ForConsumption = out.ForConsumption.Add(consumption)
		out.ForSpecial = out.ForSpecial.Add(special)
		out.Details = append(out.Details, domain.BonusDetail{
			Name:           b.Name,
			Amount:         b.Amount,
			Savings:        savings,
			Investment:     investment,
			Consumption:    consumption,
			Special:        special,
			SpecialPurpose: b.Allocation.SpecialPurpose,
		})
	}
	return out
}

func allocationShare(amount, pct decimal.Decimal) decimal.Decimal {
	if !pct.IsPositive() {
		return decimal.Zero
	}
	return amount.Mul(pct).Div(hundred)
}
