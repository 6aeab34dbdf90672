package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"lending-core/domain"
)

// Schedule lays out the equal-installment repayment plan of a funded loan.
// Each period's interest accrues on the remaining principal; the last period
// settles whatever principal rounding left behind, so principals sum to amount.
func Schedule(amount, annualRatePercent decimal.Decimal, termMonths int, start time.Time) []domain.Installment {
	if termMonths <= 0 {
		return nil
	}

	payment := RoundMoney(Amortize(amount, annualRatePercent, termMonths).MonthlyPayment)
	monthlyRate := MonthlyRate(annualRatePercent)
	remaining := amount

	installments := make([]domain.Installment, 0, termMonths)
	for period := 1; period <= termMonths; period++ {
		interest := RoundMoney(remaining.Mul(monthlyRate))
		principal := payment.Sub(interest)
		if period == termMonths || principal.GreaterThan(remaining) {
			principal = remaining
		}
		if principal.IsNegative() {
			principal = decimal.Zero
		}
		remaining = remaining.Sub(principal)

		installments = append(installments, domain.Installment{
			Period:             period,
			DueDate:            AddMonths(start, period),
			Principal:          principal,
			Interest:           interest,
			Total:              principal.Add(interest),
			RemainingPrincipal: remaining,
		})
	}
	return installments
}

// AddMonths moves t forward by n calendar months, clamping the day to the end
// of the target month (Jan 31 + 1 month is Feb 28/29, not Mar 3).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return first.AddDate(0, 0, d-1)
}
