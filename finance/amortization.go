package finance

import (
	"github.com/shopspring/decimal"

	"lending-core/domain"
)

// CurrencyPlaces is the minor-unit precision of VND amounts shown to users.
const CurrencyPlaces int32 = 0

var (
	percentPerMonth = decimal.NewFromInt(1200)

	// Below this monthly rate the annuity denominator is too close to zero to trust.
	linearRateThreshold = decimal.New(1, -9)
)

// MonthlyRate converts an annual percentage rate to a monthly fraction.
func MonthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.Div(percentPerMonth)
}

// Amortize computes the fixed installment of an annuity loan. Values are kept
// at full precision; call Round on the result for display.
//
// amount and termMonths must be positive.
func Amortize(amount, annualRatePercent decimal.Decimal, termMonths int) domain.AmortizationResult {
	n := decimal.NewFromInt(int64(termMonths))
	monthlyRate := MonthlyRate(annualRatePercent)

	var payment decimal.Decimal
	if monthlyRate.Abs().LessThan(linearRateThreshold) {
		payment = amount.Div(n)
	} else {
		growth := decimal.NewFromInt(1).Add(monthlyRate).Pow(n)
		payment = amount.Mul(monthlyRate).Mul(growth).Div(growth.Sub(decimal.NewFromInt(1)))
	}

	total := payment.Mul(n)
	return domain.AmortizationResult{
		MonthlyPayment: payment,
		TotalRepayment: total,
		TotalInterest:  total.Sub(amount),
	}
}

// RoundMoney rounds half-up to the currency minor unit.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyPlaces)
}

// Round produces the display figures. Totals are derived from the displayed
// installment, so displayed repayment is exactly payment x term.
// amount must already be in whole currency units (see RoundMoney); services
// round it before clamping so amount + interest equals the displayed total.
func Round(r domain.AmortizationResult, amount decimal.Decimal, termMonths int) domain.AmortizationResult {
	payment := RoundMoney(r.MonthlyPayment)
	total := payment.Mul(decimal.NewFromInt(int64(termMonths)))
	return domain.AmortizationResult{
		MonthlyPayment: payment,
		TotalRepayment: total,
		TotalInterest:  total.Sub(RoundMoney(amount)),
	}
}

// ProjectReturn quotes a lender's simple, non-compounding yield over the full term.
// It intentionally differs from Amortize: it answers what the platform promises
// the investor, not what the borrower pays each month.
func ProjectReturn(investment, annualRatePercent decimal.Decimal, termMonths int) domain.ReturnProjection {
	expected := investment.Mul(growthFactor(annualRatePercent, termMonths))
	return domain.ReturnProjection{
		ExpectedReturn: expected,
		Profit:         expected.Sub(investment),
	}
}

// growthFactor is 1 + rate/100 * term/12. It does not depend on the principal,
// which keeps projections linear in the invested amount.
func growthFactor(annualRatePercent decimal.Decimal, termMonths int) decimal.Decimal {
	n := decimal.NewFromInt(int64(termMonths))
	return decimal.NewFromInt(1).Add(annualRatePercent.Mul(n).Div(percentPerMonth))
}

// RoundProjection rounds a projection for display.
func RoundProjection(p domain.ReturnProjection, investment decimal.Decimal) domain.ReturnProjection {
	expected := RoundMoney(p.ExpectedReturn)
	return domain.ReturnProjection{
		ExpectedReturn: expected,
		Profit:         expected.Sub(RoundMoney(investment)),
	}
}

// QuoteTerms returns the display figures for every term in terms, in order.
func QuoteTerms(amount, annualRatePercent decimal.Decimal, terms []int) []domain.TermQuote {
	quotes := make([]domain.TermQuote, 0, len(terms))
	for _, n := range terms {
		quotes = append(quotes, domain.TermQuote{
			TermMonths: n,
			Result:     Round(Amortize(amount, annualRatePercent, n), amount, n),
		})
	}
	return quotes
}
