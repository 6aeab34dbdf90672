package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"lending-core/domain"
	"lending-core/finance"
	"lending-core/repository"
)

// roundTo2Decimals redondea un float64 a 2 decimales
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

type LoanService struct {
	repo   repository.CalculationRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewLoanService creates a new LoanService with the given repository.
func NewLoanService(repo repository.CalculationRepository, logger *slog.Logger) *LoanService {
	return &LoanService{repo: repo, logger: logger, now: time.Now}
}

func validateLoanInput(input domain.LoanInput) error {
	if !input.Amount.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, input.Amount)
	}
	if input.TermMonths <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTerm, input.TermMonths)
	}
	return nil
}

// Band resolves the allowed loan space for the given credit score.
func (s *LoanService) Band(snapshot *domain.CreditScoreSnapshot, legacyScore *int) domain.Band {
	return finance.ResolveBand(snapshot, legacyScore)
}

// CalculateLoan clamps the requested terms into the borrower's band and
// returns the live installment figures for them.
func (s *LoanService) CalculateLoan(ctx context.Context, input domain.LoanInput) (domain.LoanQuote, error) {
	if err := validateLoanInput(input); err != nil {
		return domain.LoanQuote{}, err
	}

	band := finance.ResolveBand(input.CreditScore, input.LegacyScore)
	terms, adjustments := finance.Clamp(band, domain.LoanTerms{
		Amount:            finance.RoundMoney(input.Amount),
		AnnualRatePercent: input.InterestRate,
		TermMonths:        input.TermMonths,
	})

	raw := finance.Amortize(terms.Amount, terms.AnnualRatePercent, terms.TermMonths)
	result := finance.Round(raw, terms.Amount, terms.TermMonths)

	record := domain.CalculationRecord{
		ID:        uuid.NewString(),
		Terms:     terms,
		Result:    result,
		Clamped:   len(adjustments) > 0,
		CreatedAt: s.now(),
	}
	// Guardar el resultado (no crítico si falla)
	if err := s.repo.Save(ctx, record); err != nil {
		s.logger.Warn("failed to save loan calculation", "id", record.ID, "error", err)
	}

	if len(adjustments) > 0 {
		s.logger.Debug("loan terms clamped", "id", record.ID, "adjustments", len(adjustments))
	}

	return domain.LoanQuote{
		Terms:       terms,
		Band:        band,
		Result:      result,
		Adjustments: adjustments,
	}, nil
}

// BuildSchedule returns the installment plan for the clamped terms.
func (s *LoanService) BuildSchedule(ctx context.Context, input domain.ScheduleInput) (domain.ScheduleResult, error) {
	if err := validateLoanInput(input.LoanInput); err != nil {
		return domain.ScheduleResult{}, err
	}

	band := finance.ResolveBand(input.CreditScore, input.LegacyScore)
	terms, adjustments := finance.Clamp(band, domain.LoanTerms{
		Amount:            finance.RoundMoney(input.Amount),
		AnnualRatePercent: input.InterestRate,
		TermMonths:        input.TermMonths,
	})

	start := input.StartDate
	if start.IsZero() {
		start = s.now()
	}

	return domain.ScheduleResult{
		Terms:        terms,
		Installments: finance.Schedule(terms.Amount, terms.AnnualRatePercent, terms.TermMonths, start),
		Adjustments:  adjustments,
	}, nil
}

// RecentCalculations lists the latest stored calculations.
func (s *LoanService) RecentCalculations(ctx context.Context, limit int) ([]domain.CalculationRecord, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	records, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent calculations: %w", err)
	}
	return records, nil
}

// LateFee prices an overdue installment. Paying early or on time costs nothing extra.
func (s *LoanService) LateFee(ctx context.Context, input domain.LateFeeInput) (domain.LateFeeResult, error) {
	if !input.InstallmentTotal.IsPositive() {
		return domain.LateFeeResult{}, fmt.Errorf("%w: got %s", ErrInvalidAmount, input.InstallmentTotal)
	}
	days := max(input.DaysLate, 0)
	fee := finance.LateFee(input.InstallmentTotal, days)
	return domain.LateFeeResult{
		Fee:       fee,
		AmountDue: input.InstallmentTotal.Add(fee),
		DaysLate:  days,
	}, nil
}
