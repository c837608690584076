package output

import (
	"bytes"
	"fmt"

	"github.com/finplan/cashflow-projector/internal/domain"
)

// ConsoleFormatter renders a plain-text report: summary, final balances and
// the debt and affordability assessments.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "CASH FLOW PROJECTION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Monthly Income:      %s\n", FormatCurrency(result.Summary.MonthlyIncome))
	fmt.Fprintf(&buf, "Annual Bonuses:      %s\n", FormatCurrency(result.Summary.TotalAnnualBonus))
	fmt.Fprintf(&buf, "Monthly Expenses:    %s\n", FormatCurrency(result.Summary.MonthlyExpenses))
	fmt.Fprintf(&buf, "Monthly Net:         %s\n", FormatCurrency(result.Summary.MonthlyNet))
	fmt.Fprintf(&buf, "Monthly Savings:     %s\n", FormatCurrency(result.Summary.MonthlySavings))
	fmt.Fprintf(&buf, "Monthly Investment:  %s\n", FormatCurrency(result.Summary.MonthlyInvestment))
	fmt.Fprintf(&buf, "Total Outflow:       %s\n", FormatCurrency(result.Summary.TotalMonthlyOutflow))

	n := len(result.MonthlyData)
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "PROJECTED BALANCES AFTER %d MONTHS\n", n)
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Cash:        %s\n", FormatCurrency(result.FinalAmounts.Cash))
	fmt.Fprintf(&buf, "Savings:     %s (interest %s)\n",
		FormatCurrency(result.FinalAmounts.Savings),
		FormatCurrency(result.InvestmentStats.SavingsInterest))
	fmt.Fprintf(&buf, "Investment:  %s (returns %s)\n",
		FormatCurrency(result.FinalAmounts.Investment),
		FormatCurrency(result.InvestmentStats.TotalReturns))
	fmt.Fprintf(&buf, "Total:       %s\n", FormatCurrency(result.FinalAmounts.Total))

	if d := result.DebtAnalysis; d != nil {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "DEBT ANALYSIS")
		fmt.Fprintln(&buf, "================================")
		fmt.Fprintf(&buf, "Monthly Debt Service: %s (housing %s, credit %s, card %s, other %s)\n",
			FormatCurrency(d.Debt.Total),
			FormatCurrency(d.Debt.HousingLoan),
			FormatCurrency(d.Debt.CreditLoan),
			FormatCurrency(d.Debt.CardInstallments),
			FormatCurrency(d.Debt.OtherDebts))
		fmt.Fprintf(&buf, "Debt-to-Income: %s [%s] %s\n",
			FormatPercentage(d.General.Ratio), d.General.Risk.Label, d.General.Recommendation)
		fmt.Fprintf(&buf, "Coverage: %s of required %s, qualified=%t [%s]\n",
			FormatPercentage(d.Coverage.Ratio),
			FormatCurrency(d.Coverage.RequiredExpenses),
			d.Coverage.Qualified, d.Coverage.Risk.Label)
	}

	if s := result.DebtStrategyAnalysis; s != nil && s.HasStrategy {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "EARLY PAYOFF STRATEGY")
		fmt.Fprintln(&buf, "================================")
		for _, entry := range s.PayoffSchedule {
			fmt.Fprintf(&buf, "%s: payoff month %d, monthly relief %s, total saved %s\n",
				entry.Name, entry.PayoffMonth,
				FormatCurrency(entry.MonthlySavings),
				FormatCurrency(entry.TotalSavings))
		}
		fmt.Fprintf(&buf, "Debt ratio %s -> %s (coverage %s -> %s)\n",
			FormatPercentage(s.Before.DebtRatio), FormatPercentage(s.After.DebtRatio),
			FormatPercentage(s.Before.CoverageRatio), FormatPercentage(s.After.CoverageRatio))
	}

	if h := result.HousingAffordability; h != nil {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "HOUSING AFFORDABILITY")
		fmt.Fprintln(&buf, "================================")
		if h.Affordable {
			fmt.Fprintf(&buf, "Affordable payment: %s/month\n", FormatCurrency(h.AffordablePayment))
			fmt.Fprintf(&buf, "Loan amount: %s at %s over %d years\n",
				FormatCurrency(h.LoanAmount), FormatPercentage(h.AnnualRatePct), h.TermYears)
			fmt.Fprintf(&buf, "House price: %s (down payment %s)\n",
				FormatCurrency(h.HousePrice), FormatCurrency(h.DownPayment))
		} else {
			fmt.Fprintf(&buf, "Not currently affordable, monthly deficit %s\n", FormatCurrency(h.Deficit))
			for _, s := range h.Suggestions {
				fmt.Fprintf(&buf, "  - %s\n", s)
			}
		}
		fmt.Fprintf(&buf, "Outlook: qualified in %d of %d months, average available %s\n",
			h.Outlook.QualifiedMonths, len(h.Outlook.Months), FormatCurrency(h.Outlook.AverageAvailable))
	}

	return buf.Bytes(), nil
}
