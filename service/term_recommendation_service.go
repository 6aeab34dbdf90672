package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"lending-core/domain"
	"lending-core/finance"
)

type TermRecommendationService struct {
	logger *slog.Logger
}

func NewTermRecommendationService(logger *slog.Logger) *TermRecommendationService {
	return &TermRecommendationService{logger: logger}
}

var preferenceWeights = map[string]struct{ interest, payment, term float64 }{
	"minimize_interest": {0.6, 0.2, 0.2},
	"minimize_payment":  {0.2, 0.6, 0.2},
	"balanced":          {0.4, 0.4, 0.2},
}

// RecommendTerm compares every available term for the clamped amount and rate
// and ranks them by the borrower's preference.
func (s *TermRecommendationService) RecommendTerm(
	ctx context.Context,
	input domain.TermRecommendationInput,
) (domain.TermRecommendationResult, error) {

	if !input.Amount.IsPositive() {
		return domain.TermRecommendationResult{}, fmt.Errorf("%w: got %s", ErrInvalidAmount, input.Amount)
	}
	if input.Preference == "" {
		input.Preference = "balanced"
	}
	weights, ok := preferenceWeights[input.Preference]
	if !ok {
		return domain.TermRecommendationResult{}, fmt.Errorf("%w: %q", ErrInvalidPreference, input.Preference)
	}

	band := finance.ResolveBand(input.CreditScore, input.LegacyScore)
	terms, adjustments := finance.Clamp(band, domain.LoanTerms{
		Amount:            finance.RoundMoney(input.Amount),
		AnnualRatePercent: input.InterestRate,
		TermMonths:        band.Terms[0],
	})

	recommendations := []domain.TermRecommendation{}
	for _, quote := range finance.QuoteTerms(terms.Amount, terms.AnnualRatePercent, band.Terms) {
		result := quote.Result

		// Filtrar por pago mensual máximo
		if input.MaxMonthlyPayment.IsPositive() && result.MonthlyPayment.GreaterThan(input.MaxMonthlyPayment) {
			continue
		}

		recommendations = append(recommendations, domain.TermRecommendation{
			TermMonths:     quote.TermMonths,
			MonthlyPayment: result.MonthlyPayment,
			TotalInterest:  result.TotalInterest,
			TotalRepayment: result.TotalRepayment,
			Reason:         generateReason(input.Preference),
		})
	}

	if len(recommendations) == 0 {
		s.logger.Info("no affordable term", "amount", terms.Amount.String(), "maxMonthlyPayment", input.MaxMonthlyPayment.String())
		return domain.TermRecommendationResult{}, ErrNoAffordableTerm
	}

	scoreRecommendations(recommendations, weights.interest, weights.payment, weights.term)

	// Ordenar por score descendente; empates favorecen el plazo más corto
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	return domain.TermRecommendationResult{
		Amount:          terms.Amount,
		InterestRate:    terms.AnnualRatePercent,
		RecommendedTerm: recommendations[0].TermMonths,
		Recommendations: recommendations,
		Adjustments:     adjustments,
	}, nil
}

// scoreRecommendations normalizes interest, payment and term to 0-10 across
// the candidates (lower is better for all three) and blends them.
func scoreRecommendations(recs []domain.TermRecommendation, wInterest, wPayment, wTerm float64) {
	minI, maxI := recs[0].TotalInterest.InexactFloat64(), recs[0].TotalInterest.InexactFloat64()
	minP, maxP := recs[0].MonthlyPayment.InexactFloat64(), recs[0].MonthlyPayment.InexactFloat64()
	minT, maxT := float64(recs[0].TermMonths), float64(recs[0].TermMonths)
	for _, r := range recs[1:] {
		i, p, t := r.TotalInterest.InexactFloat64(), r.MonthlyPayment.InexactFloat64(), float64(r.TermMonths)
		minI, maxI = min(minI, i), max(maxI, i)
		minP, maxP = min(minP, p), max(maxP, p)
		minT, maxT = min(minT, t), max(maxT, t)
	}

	for k := range recs {
		interestScore := normalizedScore(recs[k].TotalInterest.InexactFloat64(), minI, maxI)
		paymentScore := normalizedScore(recs[k].MonthlyPayment.InexactFloat64(), minP, maxP)
		termScore := normalizedScore(float64(recs[k].TermMonths), minT, maxT)
		recs[k].Score = roundTo2Decimals(wInterest*interestScore + wPayment*paymentScore + wTerm*termScore)
	}
}

func normalizedScore(v, lo, hi float64) float64 {
	if hi <= lo {
		return 10
	}
	return 10.0 * (1.0 - (v-lo)/(hi-lo))
}

func generateReason(preference string) string {
	switch preference {
	case "minimize_interest":
		return "Term optimized to minimize total interest"
	case "minimize_payment":
		return "Term optimized to minimize the monthly payment"
	case "balanced":
		return "Balance between monthly payment and total cost"
	}
	return "Recommendation based on the provided parameters"
}
