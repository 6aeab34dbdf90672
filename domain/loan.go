package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type LoanTerms struct {
	Amount            decimal.Decimal `json:"amount"`
	AnnualRatePercent decimal.Decimal `json:"annualRatePercent"`
	TermMonths        int             `json:"termMonths"`
}

type AmortizationResult struct {
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	TotalInterest  decimal.Decimal `json:"totalInterest"`
	TotalRepayment decimal.Decimal `json:"totalRepayment"`
}

// LoanInput is what the loan form sends on every slider or field change.
type LoanInput struct {
	Amount       decimal.Decimal      `json:"amount"`
	InterestRate decimal.Decimal      `json:"interestRate"`
	TermMonths   int                  `json:"termMonths"`
	CreditScore  *CreditScoreSnapshot `json:"creditScore,omitempty"`
	LegacyScore  *int                 `json:"legacyScore,omitempty"`
}

type LoanQuote struct {
	Terms       LoanTerms          `json:"terms"`
	Band        Band               `json:"band"`
	Result      AmortizationResult `json:"result"`
	Adjustments []Adjustment       `json:"adjustments,omitempty"`
}

// TermQuote is the amortization of one candidate term on the loan form.
type TermQuote struct {
	TermMonths int                `json:"termMonths"`
	Result     AmortizationResult `json:"result"`
}

type Installment struct {
	Period             int             `json:"period"`
	DueDate            time.Time       `json:"dueDate"`
	Principal          decimal.Decimal `json:"principal"`
	Interest           decimal.Decimal `json:"interest"`
	Total              decimal.Decimal `json:"total"`
	RemainingPrincipal decimal.Decimal `json:"remainingPrincipal"`
}

type ScheduleInput struct {
	LoanInput
	StartDate time.Time `json:"startDate"`
}

type ScheduleResult struct {
	Terms        LoanTerms     `json:"terms"`
	Installments []Installment `json:"installments"`
	Adjustments  []Adjustment  `json:"adjustments,omitempty"`
}

// CalculationRecord is a stored loan calculation.
type CalculationRecord struct {
	ID        string             `json:"id"`
	Terms     LoanTerms          `json:"terms"`
	Result    AmortizationResult `json:"result"`
	Clamped   bool               `json:"clamped"`
	CreatedAt time.Time          `json:"createdAt"`
}

type LateFeeInput struct {
	InstallmentTotal decimal.Decimal `json:"installmentTotal"`
	DaysLate         int             `json:"daysLate"`
}

type LateFeeResult struct {
	Fee       decimal.Decimal `json:"fee"`
	AmountDue decimal.Decimal `json:"amountDue"`
	DaysLate  int             `json:"daysLate"`
}
