package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan is the full input snapshot for one projection run. AsOf is the first
// month of the horizon; the engine never reads the wall clock, so a plan
// projects identically no matter when it is evaluated.
type Plan struct {
	AsOf                 time.Time        `yaml:"as_of" json:"as_of"`
	PredictionMonths     int              `yaml:"prediction_months" json:"prediction_months"`
	Income               Income           `yaml:"income" json:"income"`
	Expenses             []Expense        `yaml:"expenses" json:"expenses"`
	Investment           InvestmentPolicy `yaml:"investment" json:"investment"`
	Loans                []Loan           `yaml:"loans,omitempty" json:"loans,omitempty"`
	LoanPaymentReduction decimal.Decimal  `yaml:"loan_payment_reduction,omitempty" json:"loan_payment_reduction,omitempty"`
}

// MaxPredictionMonths caps the projection horizon.
const MaxPredictionMonths = 120
