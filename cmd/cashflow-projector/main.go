package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/finplan/cashflow-projector/internal/calculation"
	"github.com/finplan/cashflow-projector/internal/config"
	"github.com/finplan/cashflow-projector/internal/output"
)

var (
	inputFile  string
	formatName string
	months     int
	debugMode  bool
)

// stderrLogger routes engine diagnostics to stderr so report output on
// stdout stays clean.
type stderrLogger struct {
	debug bool
}

func (l stderrLogger) Debugf(format string, args ...interface{}) {
	if l.debug {
		log.Printf("DEBUG: "+format, args...)
	}
}
func (l stderrLogger) Infof(format string, args ...interface{})  { log.Printf("INFO: "+format, args...) }
func (l stderrLogger) Warnf(format string, args ...interface{})  { log.Printf("WARN: "+format, args...) }
func (l stderrLogger) Errorf(format string, args ...interface{}) { log.Printf("ERROR: "+format, args...) }

var rootCmd = &cobra.Command{
	Use:   "cashflow-projector",
	Short: "Household monthly cash-flow projection",
	Long: `Projects household cash flow month by month: irregular income and
bonuses, recurring and installment expenses, amortizing loans with
prepayments, and savings/investment accumulation, plus debt-burden and
housing-affordability analysis.`,
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Run the monthly projection for a plan file",
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		plan, err := parser.LoadFromFile(inputFile)
		if err != nil {
			return fmt.Errorf("failed to load plan: %w", err)
		}
		if months > 0 {
			plan.PredictionMonths = months
		}

		engine := calculation.NewEngine()
		engine.SetLogger(stderrLogger{debug: debugMode})

		result, err := engine.Project(plan)
		if err != nil {
			return fmt.Errorf("projection failed: %w", err)
		}

		name := output.NormalizeFormatName(formatName)
		if name == "console" {
			data, err := (output.ConsoleFormatter{}).Format(result)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		}
		filename, err := output.GenerateReport(result, name)
		if err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", filename)
		return nil
	},
}

var debtCmd = &cobra.Command{
	Use:   "debt",
	Short: "Run the standalone debt-burden analysis for a plan file",
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		plan, err := parser.LoadFromFile(inputFile)
		if err != nil {
			return fmt.Errorf("failed to load plan: %w", err)
		}

		analysis := calculation.AnalyzeDebt(
			plan.Income.MonthlyAmount(),
			plan.Expenses,
			plan.Income.Location,
			plan.LoanPaymentReduction,
			plan.Loans,
		)
		data, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Println(string(data))
		return err
	},
}

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Write an example plan file to example_plan.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		plan := parser.CreateExamplePlan()
		if err := output.SavePlan(plan, "example_plan.yaml"); err != nil {
			return fmt.Errorf("failed to write example plan: %w", err)
		}
		fmt.Println("Example plan written to example_plan.yaml")
		return nil
	},
}

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)

	projectCmd.Flags().StringVarP(&inputFile, "input", "i", "", "plan YAML file (required)")
	projectCmd.Flags().StringVarP(&formatName, "format", "f", "console", "output format: console, json, csv")
	projectCmd.Flags().IntVar(&months, "months", 0, "override the plan's prediction horizon")
	projectCmd.Flags().BoolVar(&debugMode, "debug", false, "enable debug logging")
	_ = projectCmd.MarkFlagRequired("input")

	debtCmd.Flags().StringVarP(&inputFile, "input", "i", "", "plan YAML file (required)")
	_ = debtCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(debtCmd)
	rootCmd.AddCommand(exampleCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
