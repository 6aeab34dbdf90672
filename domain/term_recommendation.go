package domain

import "github.com/shopspring/decimal"

type TermRecommendationInput struct {
	Amount            decimal.Decimal      `json:"amount"`
	InterestRate      decimal.Decimal      `json:"interestRate"`
	MaxMonthlyPayment decimal.Decimal      `json:"maxMonthlyPayment"` // zero means no limit
	Preference        string               `json:"preference"`        // "minimize_interest", "minimize_payment", "balanced"
	CreditScore       *CreditScoreSnapshot `json:"creditScore,omitempty"`
	LegacyScore       *int                 `json:"legacyScore,omitempty"`
}

type TermRecommendation struct {
	TermMonths     int             `json:"termMonths"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	TotalInterest  decimal.Decimal `json:"totalInterest"`
	TotalRepayment decimal.Decimal `json:"totalRepayment"`
	Score          float64         `json:"score"`
	Reason         string          `json:"reason"`
}

type TermRecommendationResult struct {
	Amount          decimal.Decimal      `json:"amount"`
	InterestRate    decimal.Decimal      `json:"interestRate"`
	RecommendedTerm int                  `json:"recommendedTerm"`
	Recommendations []TermRecommendation `json:"recommendations"`
	Adjustments     []Adjustment         `json:"adjustments,omitempty"`
}
