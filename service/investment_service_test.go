package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lending-core/domain"
)

func TestProjectReturn_Quote(t *testing.T) {
	service := NewInvestmentService(discardLogger())

	quote, err := service.ProjectReturn(context.Background(), domain.InvestmentInput{
		Amount:           dec("100000"),
		InterestRate:     dec("12"),
		TermMonths:       12,
		RemainingAmount:  decimal.NewNullDecimal(dec("4000000")),
		AvailableBalance: decimal.NewNullDecimal(dec("250000")),
	})

	require.NoError(t, err)
	assert.Equal(t, "112000", quote.Projection.ExpectedReturn.String())
	assert.Equal(t, "12000", quote.Projection.Profit.String())
	assert.True(t, quote.Check.Allowed)
}

func TestProjectReturn_EmptyAmountIsNotAnError(t *testing.T) {
	service := NewInvestmentService(discardLogger())

	quote, err := service.ProjectReturn(context.Background(), domain.InvestmentInput{
		Amount:       dec("0"),
		InterestRate: dec("12"),
		TermMonths:   12,
	})

	require.NoError(t, err)
	assert.True(t, quote.Projection.ExpectedReturn.IsZero())
	assert.False(t, quote.Check.Allowed)
}

func TestProjectReturn_LimitsNotLoadedYet(t *testing.T) {
	service := NewInvestmentService(discardLogger())

	quote, err := service.ProjectReturn(context.Background(), domain.InvestmentInput{
		Amount:       dec("250000"),
		InterestRate: dec("12"),
		TermMonths:   12,
	})

	require.NoError(t, err)
	assert.True(t, quote.Check.Allowed)
	assert.Empty(t, quote.Check.Reasons)
}

func TestProjectReturn_FractionalAmountKeepsIdentity(t *testing.T) {
	service := NewInvestmentService(discardLogger())

	quote, err := service.ProjectReturn(context.Background(), domain.InvestmentInput{
		Amount:       dec("333333.6"),
		InterestRate: dec("10"),
		TermMonths:   7,
	})

	require.NoError(t, err)
	p := quote.Projection
	assert.True(t, p.ExpectedReturn.Equal(dec("333334").Add(p.Profit)), "%s vs %s", p.ExpectedReturn, p.Profit)
}

func TestProjectReturn_Invalid(t *testing.T) {
	service := NewInvestmentService(discardLogger())

	_, err := service.ProjectReturn(context.Background(), domain.InvestmentInput{Amount: dec("-1"), TermMonths: 12})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = service.ProjectReturn(context.Background(), domain.InvestmentInput{Amount: dec("100000")})
	assert.ErrorIs(t, err, ErrInvalidTerm)
}

func TestDistribute(t *testing.T) {
	service := NewInvestmentService(discardLogger())

	shares, err := service.Distribute(context.Background(), domain.DistributionInput{
		Principal: dec("777583"),
		Interest:  dec("125000"),
		Holdings: []domain.Holding{
			{InvestmentID: "inv-1", Amount: dec("7500000")},
			{InvestmentID: "inv-2", Amount: dec("2500000")},
		},
	})

	require.NoError(t, err)
	require.Len(t, shares, 2)
	assert.Equal(t, "93750", shares[0].Interest.String())
	assert.Equal(t, "31250", shares[1].Interest.String())
}

func TestDistribute_InvalidHoldings(t *testing.T) {
	service := NewInvestmentService(discardLogger())
	cases := [][]domain.Holding{
		nil,
		{{InvestmentID: "", Amount: dec("1")}},
		{{InvestmentID: "a", Amount: dec("1")}, {InvestmentID: "a", Amount: dec("2")}},
		{{InvestmentID: "a", Amount: dec("0")}},
	}
	for _, holdings := range cases {
		_, err := service.Distribute(context.Background(), domain.DistributionInput{
			Principal: dec("100"),
			Interest:  dec("10"),
			Holdings:  holdings,
		})
		assert.ErrorIs(t, err, ErrInvalidHoldings)
	}
}
