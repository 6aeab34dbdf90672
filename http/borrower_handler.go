package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"lending-core/domain"
	"lending-core/finance"
	"lending-core/service"
)

// BorrowerHandler serves routes that act on behalf of the signed-in borrower
// and therefore forward the caller's bearer token to the platform.
type BorrowerHandler struct {
	scores     *service.CreditScoreService
	submission *service.SubmissionService
	logger     *slog.Logger
}

func NewBorrowerHandler(
	scores *service.CreditScoreService,
	submission *service.SubmissionService,
	logger *slog.Logger,
) *BorrowerHandler {
	return &BorrowerHandler{scores: scores, submission: submission, logger: logger}
}

type myBandResponse struct {
	CreditScore *domain.CreditScoreSnapshot `json:"creditScore"`
	Band        domain.Band                 `json:"band"`
}

// MyBand resolves the band from the caller's own credit score. While the score
// is pending the response carries a null creditScore and the system band.
// ?refresh=true bypasses the cached score.
func (h *BorrowerHandler) MyBand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	token := bearerToken(r)
	if token == "" {
		http.Error(w, "missing bearer token", http.StatusUnauthorized)
		return
	}

	if refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh")); refresh {
		if err := h.scores.Invalidate(r.Context(), token); err != nil {
			h.logger.Warn("failed to invalidate cached credit score", "error", err)
		}
	}

	snap, err := h.scores.Snapshot(r.Context(), token)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, myBandResponse{
		CreditScore: snap,
		Band:        finance.ResolveBand(snap, nil),
	})
}

func (h *BorrowerHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	token := bearerToken(r)
	if token == "" {
		http.Error(w, "missing bearer token", http.StatusUnauthorized)
		return
	}
	if !requireJSON(w, r) {
		return
	}

	var app domain.LoanApplication
	if err := decodeJSON(w, r, &app); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.submission.Submit(r.Context(), token, app)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, result)
}
