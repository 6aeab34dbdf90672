package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"lending-core/domain"
	"lending-core/finance"
)

// LoanCreator submits loan applications to the platform.
type LoanCreator interface {
	CreateLoan(ctx context.Context, token string, app domain.LoanApplication) (domain.SubmittedLoan, error)
}

type SubmissionService struct {
	scores  *CreditScoreService
	creator LoanCreator
	logger  *slog.Logger
}

func NewSubmissionService(scores *CreditScoreService, creator LoanCreator, logger *slog.Logger) *SubmissionService {
	return &SubmissionService{scores: scores, creator: creator, logger: logger}
}

func validateApplication(app domain.LoanApplication) error {
	title := strings.TrimSpace(app.Title)
	switch {
	case title == "":
		return fmt.Errorf("%w: title is required", ErrInvalidApplication)
	case utf8.RuneCountInString(title) > MaxLoanTitleLength:
		return fmt.Errorf("%w: title must be less than %d characters", ErrInvalidApplication, MaxLoanTitleLength)
	case utf8.RuneCountInString(app.Description) > MaxLoanDescriptionChars:
		return fmt.Errorf("%w: description must be less than %d characters", ErrInvalidApplication, MaxLoanDescriptionChars)
	case !app.Purpose.Valid():
		return fmt.Errorf("%w: unknown purpose %q", ErrInvalidApplication, app.Purpose)
	case !app.Amount.IsPositive():
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, app.Amount)
	case app.TermMonths <= 0:
		return fmt.Errorf("%w: got %d", ErrInvalidTerm, app.TermMonths)
	}
	return nil
}

// Submit clamps the application into the borrower's band and hands it to the
// platform. Ineligible borrowers are refused before anything is sent.
func (s *SubmissionService) Submit(
	ctx context.Context,
	token string,
	app domain.LoanApplication,
) (domain.SubmissionResult, error) {

	if err := validateApplication(app); err != nil {
		return domain.SubmissionResult{}, err
	}

	snap, err := s.scores.Snapshot(ctx, token)
	if err != nil {
		return domain.SubmissionResult{}, err
	}
	if snap != nil && !snap.IsEligibleForLoan {
		if snap.EligibilityReason != "" {
			return domain.SubmissionResult{}, fmt.Errorf("%w: %s", ErrNotEligible, snap.EligibilityReason)
		}
		return domain.SubmissionResult{}, ErrNotEligible
	}

	band := finance.ResolveBand(snap, nil)
	if app.InterestRate.IsZero() {
		app.InterestRate = band.DefaultRate
	}
	terms, adjustments := finance.Clamp(band, domain.LoanTerms{
		Amount:            finance.RoundMoney(app.Amount),
		AnnualRatePercent: app.InterestRate,
		TermMonths:        app.TermMonths,
	})
	app.Title = strings.TrimSpace(app.Title)
	app.Amount = terms.Amount
	app.InterestRate = terms.AnnualRatePercent
	app.TermMonths = terms.TermMonths

	loan, err := s.creator.CreateLoan(ctx, token, app)
	if err != nil {
		return domain.SubmissionResult{}, err
	}

	s.logger.Info("loan submitted",
		"loanCode", loan.LoanCode,
		"amount", terms.Amount.String(),
		"rate", terms.AnnualRatePercent.String(),
		"termMonths", terms.TermMonths,
		"clamped", len(adjustments) > 0,
	)

	return domain.SubmissionResult{Loan: loan, Terms: terms, Adjustments: adjustments}, nil
}
