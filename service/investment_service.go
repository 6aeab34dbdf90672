package service

import (
	"context"
	"fmt"
	"log/slog"

	"lending-core/domain"
	"lending-core/finance"
)

type InvestmentService struct {
	logger *slog.Logger
}

func NewInvestmentService(logger *slog.Logger) *InvestmentService {
	return &InvestmentService{logger: logger}
}

// ProjectReturn quotes the investment dialog figures for a lender. An empty
// amount (zero) is a valid in-progress state and yields a zero projection.
func (s *InvestmentService) ProjectReturn(
	ctx context.Context,
	input domain.InvestmentInput,
) (domain.InvestmentQuote, error) {

	if input.Amount.IsNegative() {
		return domain.InvestmentQuote{}, fmt.Errorf("%w: got %s", ErrInvalidAmount, input.Amount)
	}
	if input.TermMonths <= 0 {
		return domain.InvestmentQuote{}, fmt.Errorf("%w: got %d", ErrInvalidTerm, input.TermMonths)
	}

	amount := finance.RoundMoney(input.Amount)
	projection := finance.RoundProjection(
		finance.ProjectReturn(amount, input.InterestRate, input.TermMonths),
		amount,
	)

	return domain.InvestmentQuote{
		Projection: projection,
		Check:      finance.CheckInvestment(amount, input.RemainingAmount, input.AvailableBalance),
	}, nil
}

// Distribute splits a paid installment among the loan's lenders.
func (s *InvestmentService) Distribute(
	ctx context.Context,
	input domain.DistributionInput,
) ([]domain.LenderShare, error) {

	if len(input.Holdings) == 0 {
		return nil, fmt.Errorf("%w: no holdings", ErrInvalidHoldings)
	}
	seen := make(map[string]bool, len(input.Holdings))
	for _, h := range input.Holdings {
		if h.InvestmentID == "" {
			return nil, fmt.Errorf("%w: empty investment id", ErrInvalidHoldings)
		}
		if seen[h.InvestmentID] {
			return nil, fmt.Errorf("%w: duplicate investment id %s", ErrInvalidHoldings, h.InvestmentID)
		}
		seen[h.InvestmentID] = true
		if !h.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount of %s must be positive", ErrInvalidHoldings, h.InvestmentID)
		}
	}
	if input.Principal.IsNegative() || input.Interest.IsNegative() {
		return nil, fmt.Errorf("%w: installment parts must not be negative", ErrInvalidAmount)
	}

	shares := finance.DistributeInstallment(input.Principal, input.Interest, input.Holdings)
	s.logger.Debug("installment distributed", "lenders", len(shares))
	return shares, nil
}
