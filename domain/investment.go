package domain

import "github.com/shopspring/decimal"

type ReturnProjection struct {
	ExpectedReturn decimal.Decimal `json:"expectedReturn"`
	Profit         decimal.Decimal `json:"profit"`
}

// InvestmentInput is the marketplace investment dialog state: the lender's
// amount plus the loan's fixed rate and term. RemainingAmount and
// AvailableBalance are null until the dialog has loaded them.
type InvestmentInput struct {
	Amount           decimal.Decimal     `json:"amount"`
	InterestRate     decimal.Decimal     `json:"interestRate"`
	TermMonths       int                 `json:"termMonths"`
	RemainingAmount  decimal.NullDecimal `json:"remainingAmount"`
	AvailableBalance decimal.NullDecimal `json:"availableBalance"`
}

// InvestmentCheck says whether the dialog may submit, and why not.
type InvestmentCheck struct {
	Allowed bool     `json:"allowed"`
	Reasons []string `json:"reasons,omitempty"`
}

type InvestmentQuote struct {
	Projection ReturnProjection `json:"projection"`
	Check      InvestmentCheck  `json:"check"`
}

// Holding is one lender's stake in a funded loan.
type Holding struct {
	InvestmentID string          `json:"investmentId"`
	Amount       decimal.Decimal `json:"amount"`
}

type LenderShare struct {
	InvestmentID string          `json:"investmentId"`
	Principal    decimal.Decimal `json:"principal"`
	Interest     decimal.Decimal `json:"interest"`
	Total        decimal.Decimal `json:"total"`
}

type DistributionInput struct {
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Holdings  []Holding       `json:"holdings"`
}
