package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lending-core/domain"
	"lending-core/repository"
	"lending-core/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newLoanHandler() *LoanHandler {
	repo := repository.NewLoanRepositoryMemory(100)
	return NewLoanHandler(service.NewLoanService(repo, discardLogger()), discardLogger())
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCalculateLoanHandler_OK(t *testing.T) {
	handler := newLoanHandler()

	req := postJSON("/loan/calculate", `{
		"amount": 10000000,
		"interestRate": 15,
		"termMonths": 12
	}`)
	w := httptest.NewRecorder()

	handler.CalculateLoan(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	var quote domain.LoanQuote
	require.NoError(t, json.NewDecoder(w.Body).Decode(&quote))
	assert.True(t, quote.Result.MonthlyPayment.Equal(decimal.NewFromInt(902583)), quote.Result.MonthlyPayment.String())
	assert.True(t, quote.Result.TotalRepayment.Equal(decimal.NewFromInt(10830996)))
	assert.Empty(t, quote.Adjustments)
}

func TestCalculateLoanHandler_ReportsClamping(t *testing.T) {
	handler := newLoanHandler()

	req := postJSON("/loan/calculate", `{
		"amount": "20000000",
		"interestRate": "9",
		"termMonths": 12,
		"creditScore": {
			"totalScore": 650,
			"maxScore": 1000,
			"riskLevel": "MEDIUM",
			"minInterestRate": 12,
			"maxInterestRate": 15,
			"maxLoanAmount": 10000000,
			"isEligibleForLoan": true
		}
	}`)
	w := httptest.NewRecorder()

	handler.CalculateLoan(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var quote domain.LoanQuote
	require.NoError(t, json.NewDecoder(w.Body).Decode(&quote))
	assert.True(t, quote.Terms.Amount.Equal(decimal.NewFromInt(10000000)))
	assert.True(t, quote.Terms.AnnualRatePercent.Equal(decimal.NewFromInt(12)))
	assert.Len(t, quote.Adjustments, 2)
}

func TestCalculateLoanHandler_MethodNotAllowed(t *testing.T) {
	handler := newLoanHandler()

	req := httptest.NewRequest(http.MethodGet, "/loan/calculate", nil)
	w := httptest.NewRecorder()

	handler.CalculateLoan(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestCalculateLoanHandler_BadRequest(t *testing.T) {
	handler := newLoanHandler()

	w := httptest.NewRecorder()
	handler.CalculateLoan(w, postJSON("/loan/calculate", `{invalid-json}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalculateLoanHandler_NonPositiveAmount(t *testing.T) {
	handler := newLoanHandler()

	w := httptest.NewRecorder()
	handler.CalculateLoan(w, postJSON("/loan/calculate", `{"amount": 0, "interestRate": 10, "termMonths": 12}`))

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body errorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Contains(t, body.Error, "amount")
}

func TestCalculateLoanHandler_WrongContentType(t *testing.T) {
	handler := newLoanHandler()

	req := httptest.NewRequest(http.MethodPost, "/loan/calculate", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()

	handler.CalculateLoan(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestBandHandler_Defaults(t *testing.T) {
	handler := newLoanHandler()

	w := httptest.NewRecorder()
	handler.Band(w, postJSON("/loan/band", `{}`))

	require.Equal(t, http.StatusOK, w.Code)
	var band domain.Band
	require.NoError(t, json.NewDecoder(w.Body).Decode(&band))
	assert.True(t, band.MaxAmount.Equal(decimal.NewFromInt(500000000)))
	assert.True(t, band.DefaultRate.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, []int{3, 6, 9, 12, 18, 24, 36}, band.Terms)
	assert.False(t, band.FromSnapshot)
}

func TestScheduleHandler_OK(t *testing.T) {
	handler := newLoanHandler()

	w := httptest.NewRecorder()
	handler.Schedule(w, postJSON("/loan/schedule", `{
		"amount": 10000000,
		"interestRate": 15,
		"termMonths": 12,
		"startDate": "2026-01-31T00:00:00Z"
	}`))

	require.Equal(t, http.StatusOK, w.Code)
	var result domain.ScheduleResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	require.Len(t, result.Installments, 12)
	assert.Equal(t, 2, int(result.Installments[0].DueDate.Month()))
	assert.Equal(t, 28, result.Installments[0].DueDate.Day())

	sum := decimal.Zero
	for _, inst := range result.Installments {
		sum = sum.Add(inst.Principal)
	}
	assert.True(t, sum.Equal(decimal.NewFromInt(10000000)))
}

func TestRecentCalculationsHandler(t *testing.T) {
	handler := newLoanHandler()

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		handler.CalculateLoan(w, postJSON("/loan/calculate", `{"amount": 5000000, "interestRate": 12, "termMonths": 6}`))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	handler.RecentCalculations(w, httptest.NewRequest(http.MethodGet, "/loan/recent?limit=2", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var records []domain.CalculationRecord
	require.NoError(t, json.NewDecoder(w.Body).Decode(&records))
	assert.Len(t, records, 2)

	w = httptest.NewRecorder()
	handler.RecentCalculations(w, httptest.NewRequest(http.MethodGet, "/loan/recent?limit=abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommendTermHandler(t *testing.T) {
	handler := NewTermRecommendationHandler(service.NewTermRecommendationService(discardLogger()), discardLogger())

	w := httptest.NewRecorder()
	handler.RecommendTerm(w, postJSON("/loan/recommend-term", `{
		"amount": 20000000,
		"interestRate": 12,
		"preference": "minimize_payment"
	}`))

	require.Equal(t, http.StatusOK, w.Code)
	var result domain.TermRecommendationResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.Equal(t, 12, result.RecommendedTerm)

	w = httptest.NewRecorder()
	handler.RecommendTerm(w, postJSON("/loan/recommend-term", `{"amount": 20000000, "interestRate": 12, "preference": "fastest"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/loan/recommend-term", bytes.NewBufferString(`{}`))
	w = httptest.NewRecorder()
	handler.RecommendTerm(w, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestInvestmentHandler_ProjectReturn(t *testing.T) {
	handler := NewInvestmentHandler(service.NewInvestmentService(discardLogger()), discardLogger())

	w := httptest.NewRecorder()
	handler.ProjectReturn(w, postJSON("/investment/project", `{
		"amount": 100000,
		"interestRate": 12,
		"termMonths": 12,
		"remainingAmount": 5000000,
		"availableBalance": 50000
	}`))

	require.Equal(t, http.StatusOK, w.Code)
	var quote domain.InvestmentQuote
	require.NoError(t, json.NewDecoder(w.Body).Decode(&quote))
	assert.True(t, quote.Projection.ExpectedReturn.Equal(decimal.NewFromInt(112000)))
	assert.True(t, quote.Projection.Profit.Equal(decimal.NewFromInt(12000)))
	assert.False(t, quote.Check.Allowed)
	assert.NotEmpty(t, quote.Check.Reasons)
}

func TestInvestmentHandler_ProjectReturnWithoutLimits(t *testing.T) {
	handler := NewInvestmentHandler(service.NewInvestmentService(discardLogger()), discardLogger())

	w := httptest.NewRecorder()
	handler.ProjectReturn(w, postJSON("/investment/project", `{
		"amount": 200000,
		"interestRate": 12,
		"termMonths": 12,
		"remainingAmount": null
	}`))

	require.Equal(t, http.StatusOK, w.Code)
	var quote domain.InvestmentQuote
	require.NoError(t, json.NewDecoder(w.Body).Decode(&quote))
	assert.True(t, quote.Check.Allowed, quote.Check.Reasons)
}

func TestInvestmentHandler_Distribute(t *testing.T) {
	handler := NewInvestmentHandler(service.NewInvestmentService(discardLogger()), discardLogger())

	w := httptest.NewRecorder()
	handler.Distribute(w, postJSON("/investment/distribute", `{
		"principal": 622067,
		"interest": 100000,
		"holdings": [
			{"investmentId": "a", "amount": 5000000},
			{"investmentId": "b", "amount": 3000000}
		]
	}`))

	require.Equal(t, http.StatusOK, w.Code)
	var shares []domain.LenderShare
	require.NoError(t, json.NewDecoder(w.Body).Decode(&shares))
	require.Len(t, shares, 2)
	assert.Equal(t, "a", shares[0].InvestmentID)
	assert.True(t, shares[0].Interest.Equal(decimal.NewFromInt(62500)))
	assert.True(t, shares[1].Interest.Equal(decimal.NewFromInt(37500)))

	w = httptest.NewRecorder()
	handler.Distribute(w, postJSON("/investment/distribute", `{"principal": 1, "interest": 1, "holdings": []}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLateFeeHandler(t *testing.T) {
	handler := newLoanHandler()

	w := httptest.NewRecorder()
	handler.LateFee(w, postJSON("/loan/late-fee", `{"installmentTotal": 902583, "daysLate": 3}`))

	require.Equal(t, http.StatusOK, w.Code)
	var result domain.LateFeeResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.True(t, result.Fee.Equal(decimal.NewFromInt(27077)))
	assert.True(t, result.AmountDue.Equal(decimal.NewFromInt(929660)))

	w = httptest.NewRecorder()
	handler.LateFee(w, postJSON("/loan/late-fee", `{"installmentTotal": -1, "daysLate": 3}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
