package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type LoanPurpose string

const (
	PurposePersonal          LoanPurpose = "PERSONAL"
	PurposeBusiness          LoanPurpose = "BUSINESS"
	PurposeEducation         LoanPurpose = "EDUCATION"
	PurposeMedical           LoanPurpose = "MEDICAL"
	PurposeHomeImprovement   LoanPurpose = "HOME_IMPROVEMENT"
	PurposeDebtConsolidation LoanPurpose = "DEBT_CONSOLIDATION"
	PurposeStartup           LoanPurpose = "STARTUP"
	PurposeOther             LoanPurpose = "OTHER"
)

func (p LoanPurpose) Valid() bool {
	switch p {
	case PurposePersonal, PurposeBusiness, PurposeEducation, PurposeMedical,
		PurposeHomeImprovement, PurposeDebtConsolidation, PurposeStartup, PurposeOther:
		return true
	}
	return false
}

// LoanApplication is the final loan form submitted by a borrower.
type LoanApplication struct {
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	Purpose      LoanPurpose     `json:"purpose"`
	Amount       decimal.Decimal `json:"amount"`
	InterestRate decimal.Decimal `json:"interestRate"`
	TermMonths   int             `json:"termMonths"`
}

// SubmittedLoan is the platform's view of a created loan request.
type SubmittedLoan struct {
	ID              int64           `json:"id"`
	LoanCode        string          `json:"loanCode"`
	Title           string          `json:"title"`
	Purpose         LoanPurpose     `json:"purpose"`
	RequestedAmount decimal.Decimal `json:"requestedAmount"`
	InterestRate    decimal.Decimal `json:"interestRate"`
	TermMonths      int             `json:"termMonths"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type SubmissionResult struct {
	Loan        SubmittedLoan `json:"loan"`
	Terms       LoanTerms     `json:"terms"`
	Adjustments []Adjustment  `json:"adjustments,omitempty"`
}
