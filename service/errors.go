package service

import "errors"

var (
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidTerm        = errors.New("term must be positive")
	ErrInvalidPreference  = errors.New("invalid preference")
	ErrInvalidApplication = errors.New("invalid loan application")
	ErrInvalidHoldings    = errors.New("invalid holdings")
	ErrNoAffordableTerm   = errors.New("no available term fits the maximum monthly payment")
	ErrNotEligible        = errors.New("not eligible for a loan")
)
