package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/finplan/cashflow-projector/internal/domain"
)

// CSVExporter implements the monthly CSV output (one row per projected month).
type CSVExporter struct{}

func (c CSVExporter) Name() string { return "csv" }

func (c CSVExporter) Format(result *domain.ProjectionResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Month", "Date", "Income", "BaseIncome", "BonusIncome", "Expenses", "RegularExpenses", "LoanExpenses", "EarlyPayoffs", "Net", "Savings", "Investment", "CumulativeCash", "CumulativeSavings", "CumulativeInvestment", "TotalAssets"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, m := range result.MonthlyData {
		row := []string{
			strconv.Itoa(m.Month),
			m.Date.Format("2006-01"),
			m.Income.StringFixed(2),
			m.BaseIncome.StringFixed(2),
			m.BonusIncome.StringFixed(2),
			m.Expenses.StringFixed(2),
			m.RegularExpenses.StringFixed(2),
			m.LoanExpenses.StringFixed(2),
			m.EarlyPayoffs.StringFixed(2),
			m.Net.StringFixed(2),
			m.Savings.StringFixed(2),
			m.Investment.StringFixed(2),
			m.CumulativeCash.StringFixed(2),
			m.CumulativeSavings.StringFixed(2),
			m.CumulativeInvestment.StringFixed(2),
			m.TotalAssets.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), nil
}
