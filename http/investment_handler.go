package http

import (
	"log/slog"
	"net/http"

	"lending-core/domain"
	"lending-core/service"
)

type InvestmentHandler struct {
	service *service.InvestmentService
	logger  *slog.Logger
}

func NewInvestmentHandler(service *service.InvestmentService, logger *slog.Logger) *InvestmentHandler {
	return &InvestmentHandler{service: service, logger: logger}
}

func (h *InvestmentHandler) ProjectReturn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !requireJSON(w, r) {
		return
	}

	var input domain.InvestmentInput
	if err := decodeJSON(w, r, &input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	quote, err := h.service.ProjectReturn(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, quote)
}

func (h *InvestmentHandler) Distribute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !requireJSON(w, r) {
		return
	}

	var input domain.DistributionInput
	if err := decodeJSON(w, r, &input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	shares, err := h.service.Distribute(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, shares)
}
