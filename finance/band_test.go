package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lending-core/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func snapshot(maxAmount, minRate, maxRate string) *domain.CreditScoreSnapshot {
	return &domain.CreditScoreSnapshot{
		TotalScore:        720,
		MaxScore:          1000,
		RiskLevel:         domain.RiskMedium,
		MinInterestRate:   dec(minRate),
		MaxInterestRate:   dec(maxRate),
		MaxLoanAmount:     dec(maxAmount),
		IsEligibleForLoan: true,
	}
}

func TestResolveBand_NoSnapshot(t *testing.T) {
	band := ResolveBand(nil, nil)

	assert.True(t, band.MaxAmount.Equal(dec("500000000")))
	assert.True(t, band.MinAmount.Equal(dec("1000000")))
	assert.True(t, band.MinRate.Equal(dec("8")))
	assert.True(t, band.MaxRate.Equal(dec("20")))
	assert.True(t, band.DefaultRate.Equal(dec("15")))
	assert.Equal(t, []int{3, 6, 9, 12, 18, 24, 36}, band.Terms)
	assert.False(t, band.FromSnapshot)
	assert.True(t, band.Eligible)
}

func TestResolveBand_LegacyScoreHeuristic(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{score: 300, want: "17"},
		{score: 750, want: "12.5"},
		{score: 1000, want: "10"},
		{score: 1500, want: "8"},
	}
	for _, tc := range cases {
		score := tc.score
		band := ResolveBand(nil, &score)
		assert.True(t, band.DefaultRate.Equal(dec(tc.want)), "score %d: got %s", tc.score, band.DefaultRate)
	}
}

func TestResolveBand_FromSnapshot(t *testing.T) {
	snap := snapshot("5000000", "10", "12")
	snap.IsEligibleForLoan = false
	snap.EligibilityReason = "KYC not verified"

	band := ResolveBand(snap, nil)

	assert.True(t, band.MaxAmount.Equal(dec("5000000")))
	assert.True(t, band.MinRate.Equal(dec("10")))
	assert.True(t, band.MaxRate.Equal(dec("12")))
	assert.True(t, band.DefaultRate.Equal(dec("11")))
	assert.True(t, band.FromSnapshot)
	assert.False(t, band.Eligible)
	assert.Equal(t, "KYC not verified", band.EligibilityReason)
}

func TestResolveBand_SnapshotIgnoresLegacyScore(t *testing.T) {
	score := 100
	band := ResolveBand(snapshot("50000000", "9", "13"), &score)
	assert.True(t, band.DefaultRate.Equal(dec("11")))
}

func TestClamp_AmountAboveSnapshotLimit(t *testing.T) {
	band := ResolveBand(snapshot("5000000", "10", "12"), nil)

	terms, adjustments := Clamp(band, domain.LoanTerms{
		Amount:            dec("20000000"),
		AnnualRatePercent: dec("11"),
		TermMonths:        12,
	})

	assert.True(t, terms.Amount.Equal(dec("5000000")))
	require.Len(t, adjustments, 1)
	assert.Equal(t, "amount", adjustments[0].Field)
	assert.Equal(t, "exceeds your maximum limit", adjustments[0].Reason)
}

func TestClamp_AllFields(t *testing.T) {
	band := ResolveBand(nil, nil)

	terms, adjustments := Clamp(band, domain.LoanTerms{
		Amount:            dec("10"),
		AnnualRatePercent: dec("35"),
		TermMonths:        40,
	})

	assert.True(t, terms.Amount.Equal(MinLoanAmount))
	assert.True(t, terms.AnnualRatePercent.Equal(dec("20")))
	assert.Equal(t, 36, terms.TermMonths)
	require.Len(t, adjustments, 3)
	assert.Equal(t, "below the minimum loan amount", adjustments[0].Reason)
}

func TestClamp_InBandUntouched(t *testing.T) {
	band := ResolveBand(nil, nil)
	in := domain.LoanTerms{Amount: dec("10000000"), AnnualRatePercent: dec("12.5"), TermMonths: 18}

	out, adjustments := Clamp(band, in)

	assert.Empty(t, adjustments)
	assert.Equal(t, in, out)
}

func TestClamp_Idempotent(t *testing.T) {
	band := ResolveBand(snapshot("30000000", "9.5", "14"), nil)
	inputs := []domain.LoanTerms{
		{Amount: dec("999"), AnnualRatePercent: dec("1"), TermMonths: 1},
		{Amount: dec("90000000"), AnnualRatePercent: dec("30"), TermMonths: 100},
		{Amount: dec("12000000"), AnnualRatePercent: dec("10"), TermMonths: 15},
	}
	for _, in := range inputs {
		once, _ := Clamp(band, in)
		twice, adjustments := Clamp(band, once)
		assert.Equal(t, once, twice)
		assert.Empty(t, adjustments)
	}
}

func TestClampTerm_Nearest(t *testing.T) {
	band := ResolveBand(nil, nil)
	cases := map[int]int{
		-4: 3,
		0:  3,
		3:  3,
		4:  3,
		5:  6,
		15: 12,
		16: 18,
		30: 24,
		31: 36,
		99: 36,
	}
	for in, want := range cases {
		assert.Equal(t, want, ClampTerm(band, in), "term %d", in)
	}
}

func TestClamp_InvertedBandNeverExceedsCeiling(t *testing.T) {
	snap := snapshot("0", "10", "12")
	snap.IsEligibleForLoan = false
	band := ResolveBand(snap, nil)

	assert.True(t, ClampAmount(band, dec("5000000")).Equal(decimal.Zero))
}
