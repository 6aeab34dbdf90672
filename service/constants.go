package service

import "time"

const (
	DefaultCreditScoreTTL   = 5 * time.Minute
	DefaultRecentLimit      = 20
	MaxLoanTitleLength      = 200
	MaxLoanDescriptionChars = 2000

	creditScoreKeyPrefix = "credit-score:"
)
