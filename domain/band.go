package domain

import "github.com/shopspring/decimal"

// Band is the permitted (amount, rate, term) space for a prospective borrower.
type Band struct {
	MinAmount         decimal.Decimal `json:"minAmount"`
	MaxAmount         decimal.Decimal `json:"maxAmount"`
	MinRate           decimal.Decimal `json:"minRate"`
	MaxRate           decimal.Decimal `json:"maxRate"`
	DefaultRate       decimal.Decimal `json:"defaultRate"`
	Terms             []int           `json:"terms"`
	Eligible          bool            `json:"eligible"`
	EligibilityReason string          `json:"eligibilityReason,omitempty"`
	FromSnapshot      bool            `json:"fromSnapshot"`
}

// Adjustment records one field that was pulled back inside the band.
type Adjustment struct {
	Field     string `json:"field"`
	Requested string `json:"requested"`
	Applied   string `json:"applied"`
	Reason    string `json:"reason"`
}
