package calculation

import (
	"testing"

	"github.com/finplan/cashflow-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBonusesForMonth(t *testing.T) {
	bonuses := []domain.Bonus{
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
		{
			Name:   "Mid-year bonus",
			Amount: decimal.NewFromInt(30000),
			Month:  7,
			Allocation: domain.BonusAllocation{
				SpecialPct:     decimal.NewFromInt(50),
				SpecialPurpose: "travel fund",
			},
		},
	}

	t.Run("Matching month splits by allocation", func(t *testing.T) {
		got := BonusesForMonth(bonuses, mustDate(t, "2026-01-01"))
		assert.True(t, got.Total.Equal(decimal.NewFromInt(90000)))
		assert.True(t, got.ForSavings.Equal(decimal.NewFromInt(36000)))
		assert.True(t, got.ForInvestment.Equal(decimal.NewFromInt(36000)))
		assert.True(t, got.ForConsumption.Equal(decimal.NewFromInt(18000)))
		assert.True(t, got.ForSpecial.IsZero())
		assert.Len(t, got.Details, 1)
	})

	t.Run("Partial allocation leaves a remainder", func(t *testing.T) {
		got := BonusesForMonth(bonuses, mustDate(t, "2025-07-01"))
		assert.True(t, got.Total.Equal(decimal.NewFromInt(30000)))
		assert.True(t, got.ForSpecial.Equal(decimal.NewFromInt(15000)))
		assert.Equal(t, "travel fund", got.Details[0].SpecialPurpose)
	})

	t.Run("Non-matching month is empty", func(t *testing.T) {
		got := BonusesForMonth(bonuses, mustDate(t, "2025-03-01"))
		assert.True(t, got.Total.IsZero())
		assert.Empty(t, got.Details)
	})

	t.Run("Non-positive bonus amounts are skipped", func(t *testing.T) {
		zero := []domain.Bonus{{Name: "Empty", Amount: decimal.Zero, Month: 1}}
		got := BonusesForMonth(zero, mustDate(t, "2026-01-01"))
		assert.True(t, got.Total.IsZero())
	})

	t.Run("Same month bonuses accumulate", func(t *testing.T) {
		double := []domain.Bonus{
			{Name: "A", Amount: decimal.NewFromInt(10000), Month: 2},
			{Name: "B", Amount: decimal.NewFromInt(5000), Month: 2},
		}
		got := BonusesForMonth(double, mustDate(t, "2026-02-01"))
		assert.True(t, got.Total.Equal(decimal.NewFromInt(15000)))
		assert.Len(t, got.Details, 2)
	})
}
