package finance

import (
	"github.com/shopspring/decimal"

	"lending-core/domain"
)

var (
	// MinInvestment is the smallest amount a lender may put into one loan.
	MinInvestment = decimal.NewFromInt(100_000)

	// LateFeeRatePerDay is charged on the overdue installment for every day late.
	LateFeeRatePerDay = decimal.RequireFromString("0.01")

	shareRatioPlaces int32 = 10
)

// CheckInvestment mirrors the marketplace dialog gate. It never fails; it
// lists every rule the amount breaks. A remaining or available value that is
// not known yet (Valid false) skips its rule.
func CheckInvestment(amount decimal.Decimal, remaining, available decimal.NullDecimal) domain.InvestmentCheck {
	var reasons []string
	if amount.LessThan(MinInvestment) {
		reasons = append(reasons, "below the minimum investment of "+MinInvestment.String())
	}
	if remaining.Valid && amount.GreaterThan(remaining.Decimal) {
		reasons = append(reasons, "exceeds the amount remaining on this loan")
	}
	if available.Valid && amount.GreaterThan(available.Decimal) {
		reasons = append(reasons, "exceeds your available wallet balance")
	}
	return domain.InvestmentCheck{Allowed: len(reasons) == 0, Reasons: reasons}
}

// DistributeInstallment splits a paid installment among lenders pro rata to
// their holdings.
func DistributeInstallment(principal, interest decimal.Decimal, holdings []domain.Holding) []domain.LenderShare {
	funded := decimal.Zero
	for _, h := range holdings {
		funded = funded.Add(h.Amount)
	}
	if !funded.IsPositive() {
		return nil
	}

	shares := make([]domain.LenderShare, 0, len(holdings))
	for _, h := range holdings {
		ratio := h.Amount.DivRound(funded, shareRatioPlaces)
		p := RoundMoney(principal.Mul(ratio))
		i := RoundMoney(interest.Mul(ratio))
		shares = append(shares, domain.LenderShare{
			InvestmentID: h.InvestmentID,
			Principal:    p,
			Interest:     i,
			Total:        p.Add(i),
		})
	}
	return shares
}

// LateFee is the penalty on an overdue installment.
func LateFee(installmentTotal decimal.Decimal, daysLate int) decimal.Decimal {
	if daysLate <= 0 {
		return decimal.Zero
	}
	return RoundMoney(installmentTotal.Mul(LateFeeRatePerDay).Mul(decimal.NewFromInt(int64(daysLate))))
}
