package domain

import "github.com/shopspring/decimal"

type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskVeryHigh RiskLevel = "VERY_HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh, RiskVeryHigh, RiskCritical:
		return true
	}
	return false
}

// CreditScoreSnapshot is the server-computed credit score of the current user.
// It is read-only here; a nil *CreditScoreSnapshot means the score is not yet available.
type CreditScoreSnapshot struct {
	TotalScore        int             `json:"totalScore"`
	MaxScore          int             `json:"maxScore"`
	RiskLevel         RiskLevel       `json:"riskLevel"`
	RiskGrade         string          `json:"riskGrade,omitempty"`
	MinInterestRate   decimal.Decimal `json:"minInterestRate"`
	MaxInterestRate   decimal.Decimal `json:"maxInterestRate"`
	MaxLoanAmount     decimal.Decimal `json:"maxLoanAmount"`
	IsEligibleForLoan bool            `json:"isEligibleForLoan"`
	EligibilityReason string          `json:"eligibilityReason,omitempty"`
}
