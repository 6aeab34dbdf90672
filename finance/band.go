package finance

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"lending-core/domain"
)

var (
	// MinLoanAmount is the smallest loan the platform accepts (VND).
	MinLoanAmount = decimal.NewFromInt(1_000_000)
	// SystemMaxLoanAmount caps the amount when no credit score is available.
	SystemMaxLoanAmount = decimal.NewFromInt(500_000_000)

	DefaultMinRate = decimal.NewFromInt(8)
	DefaultMaxRate = decimal.NewFromInt(20)
	DefaultRate    = decimal.NewFromInt(15)
)

// LoanTermOptions are the only terms a borrower may pick, ascending.
var LoanTermOptions = []int{3, 6, 9, 12, 18, 24, 36}

// ResolveBand derives the legal (amount, rate, term) space from a credit score.
// A nil snapshot falls back to the conservative system band; legacyScore, when
// non-nil, only tunes the default rate of that fallback.
func ResolveBand(snapshot *domain.CreditScoreSnapshot, legacyScore *int) domain.Band {
	band := domain.Band{
		MinAmount: MinLoanAmount,
		Terms:     append([]int(nil), LoanTermOptions...),
	}

	if snapshot != nil {
		band.MaxAmount = snapshot.MaxLoanAmount
		band.MinRate = snapshot.MinInterestRate
		band.MaxRate = snapshot.MaxInterestRate
		band.DefaultRate = band.MinRate.Add(band.MaxRate).Div(decimal.NewFromInt(2))
		band.Eligible = snapshot.IsEligibleForLoan
		band.EligibilityReason = snapshot.EligibilityReason
		band.FromSnapshot = true
	} else {
		band.MaxAmount = SystemMaxLoanAmount
		band.MinRate = DefaultMinRate
		band.MaxRate = DefaultMaxRate
		band.DefaultRate = DefaultRate
		if legacyScore != nil {
			heuristic := DefaultMaxRate.Sub(decimal.NewFromInt(int64(*legacyScore)).Div(decimal.NewFromInt(100)))
			band.DefaultRate = decimal.Max(DefaultMinRate, heuristic)
		}
		band.Eligible = true
	}

	band.DefaultRate = clampDecimal(band.DefaultRate, band.MinRate, band.MaxRate)
	return band
}

// clampDecimal applies the lower bound first and the upper bound last, so the
// result never exceeds hi even when lo > hi.
func clampDecimal(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		v = lo
	}
	if v.GreaterThan(hi) {
		v = hi
	}
	return v
}

func ClampAmount(b domain.Band, amount decimal.Decimal) decimal.Decimal {
	return clampDecimal(amount, b.MinAmount, b.MaxAmount)
}

func ClampRate(b domain.Band, rate decimal.Decimal) decimal.Decimal {
	return clampDecimal(rate, b.MinRate, b.MaxRate)
}

// ClampTerm snaps a term to the nearest allowed option. Ties go to the shorter term.
func ClampTerm(b domain.Band, months int) int {
	terms := b.Terms
	if len(terms) == 0 {
		terms = LoanTermOptions
	}
	if !sort.IntsAreSorted(terms) {
		terms = append([]int(nil), terms...)
		sort.Ints(terms)
	}

	i := sort.SearchInts(terms, months)
	switch {
	case i < len(terms) && terms[i] == months:
		return months
	case i == 0:
		return terms[0]
	case i == len(terms):
		return terms[len(terms)-1]
	}
	lower, upper := terms[i-1], terms[i]
	if months-lower <= upper-months {
		return lower
	}
	return upper
}

// Clamp pulls every field of terms inside the band and reports what moved.
func Clamp(b domain.Band, terms domain.LoanTerms) (domain.LoanTerms, []domain.Adjustment) {
	var adjustments []domain.Adjustment
	out := terms

	out.Amount = ClampAmount(b, terms.Amount)
	if !out.Amount.Equal(terms.Amount) {
		reason := "exceeds your maximum limit"
		if terms.Amount.LessThan(b.MinAmount) && out.Amount.Equal(b.MinAmount) {
			reason = "below the minimum loan amount"
		}
		adjustments = append(adjustments, domain.Adjustment{
			Field:     "amount",
			Requested: terms.Amount.String(),
			Applied:   out.Amount.String(),
			Reason:    reason,
		})
	}

	out.AnnualRatePercent = ClampRate(b, terms.AnnualRatePercent)
	if !out.AnnualRatePercent.Equal(terms.AnnualRatePercent) {
		reason := "above the maximum rate for your credit score"
		if terms.AnnualRatePercent.LessThan(b.MinRate) && out.AnnualRatePercent.Equal(b.MinRate) {
			reason = "below the minimum rate for your credit score"
		}
		adjustments = append(adjustments, domain.Adjustment{
			Field:     "interestRate",
			Requested: terms.AnnualRatePercent.String(),
			Applied:   out.AnnualRatePercent.String(),
			Reason:    reason,
		})
	}

	out.TermMonths = ClampTerm(b, terms.TermMonths)
	if out.TermMonths != terms.TermMonths {
		adjustments = append(adjustments, domain.Adjustment{
			Field:     "termMonths",
			Requested: fmt.Sprintf("%d", terms.TermMonths),
			Applied:   fmt.Sprintf("%d", out.TermMonths),
			Reason:    "not an available term",
		})
	}

	return out, adjustments
}
