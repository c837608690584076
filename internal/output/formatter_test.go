package output

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/finplan/cashflow-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func sampleResult() *domain.ProjectionResult {
	month := func(m int) domain.MonthRecord {
		return domain.MonthRecord{
			Month:                m,
			Date:                 time.Date(2025, time.Month(7+m), 1, 0, 0, 0, 0, time.UTC),
			Income:               decimal.NewFromInt(50000),
			BaseIncome:           decimal.NewFromInt(50000),
			Expenses:             decimal.NewFromInt(15000),
			RegularExpenses:      decimal.NewFromInt(15000),
			Net:                  decimal.NewFromInt(35000),
			Savings:              decimal.NewFromInt(5000),
			Investment:           decimal.NewFromInt(8000),
			CumulativeCash:       decimal.NewFromInt(int64(22000 * m)),
			CumulativeSavings:    decimal.NewFromInt(int64(5000 * m)),
			CumulativeInvestment: decimal.NewFromInt(int64(8000 * m)),
			TotalAssets:          decimal.NewFromInt(int64(35000 * m)),
		}
	}
	return &domain.ProjectionResult{
		Summary: domain.Summary{
			MonthlyIncome:   decimal.NewFromInt(50000),
			MonthlyExpenses: decimal.NewFromInt(15000),
			MonthlyNet:      decimal.NewFromInt(35000),
		},
		MonthlyData: []domain.MonthRecord{month(1), month(2), month(3)},
		FinalAmounts: domain.FinalAmounts{
			Cash:       decimal.NewFromInt(66000),
			Savings:    decimal.NewFromInt(15000),
			Investment: decimal.NewFromInt(24000),
			Total:      decimal.NewFromInt(105000),
		},
		DebtAnalysis: &domain.DebtAnalysis{
			MonthlyIncome:     decimal.NewFromInt(50000),
			Location:          "taipei",
			MinimumLivingCost: decimal.NewFromInt(20379),
			General: domain.RatioAssessment{
				Ratio: decimal.NewFromInt(10),
				Risk:  domain.RiskLevel{Level: "excellent", Label: "Excellent"},
			},
		},
		HousingAffordability: &domain.HousingAffordability{
			Affordable:        true,
			AffordablePayment: decimal.NewFromInt(29621),
			LoanAmount:        decimal.NewFromInt(7000000),
			HousePrice:        decimal.NewFromInt(8750000),
			DownPayment:       decimal.NewFromInt(1750000),
			TermYears:         30,
		},
	}
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"console", "console"},
		{"json", "json"},
		{"csv", "csv"},
		{"text", "console"},
		{"JSON-Pretty", "json"},
	}
	for _, tt := range tests {
		f := GetFormatterByName(tt.input)
		assert.NotNil(t, f, "formatter for %q", tt.input)
		assert.Equal(t, tt.expected, f.Name())
	}
	assert.Nil(t, GetFormatterByName("pdf"))
}

func TestAvailableFormatterNames(t *testing.T) {
	assert.Equal(t, []string{"console", "csv", "json"}, AvailableFormatterNames())
}

func TestJSONFormatter(t *testing.T) {
	data, err := (JSONFormatter{}).Format(sampleResult())
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "summary")
	assert.Contains(t, decoded, "monthly_data")
	assert.Contains(t, decoded, "final_amounts")
}

func TestCSVExporter(t *testing.T) {
	data, err := (CSVExporter{}).Format(sampleResult())
	assert.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 4, "header plus one row per month")
	assert.Equal(t, "Month", records[0][0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "2025-08", records[1][1])
	assert.Equal(t, "50000.00", records[1][2])
}

func TestConsoleFormatter(t *testing.T) {
	data, err := (ConsoleFormatter{}).Format(sampleResult())
	assert.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "CASH FLOW PROJECTION SUMMARY")
	assert.Contains(t, text, "PROJECTED BALANCES AFTER 3 MONTHS")
	assert.Contains(t, text, "DEBT ANALYSIS")
	assert.Contains(t, text, "HOUSING AFFORDABILITY")
	assert.Contains(t, text, "$50000.00")
	assert.NotContains(t, text, "EARLY PAYOFF STRATEGY", "no strategy block without a strategy")
}

func TestFormatterFunc(t *testing.T) {
	ff := FormatterFunc{
		ID: "stub",
		F: func(r *domain.ProjectionResult) ([]byte, error) {
			return []byte("ok"), nil
		},
	}
	assert.Equal(t, "stub", ff.Name())
	data, err := ff.Format(sampleResult())
	assert.NoError(t, err)
	assert.Equal(t, "ok", string(data))
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "$1234.50", FormatCurrency(decimal.NewFromFloat(1234.5)))
	assert.Equal(t, "35.00%", FormatPercentage(decimal.NewFromInt(35)))
}
