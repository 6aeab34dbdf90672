package http

import (
	"log/slog"
	"net/http"
	"strings"

	"lending-core/domain"
	"lending-core/service"
)

type TermRecommendationHandler struct {
	service *service.TermRecommendationService
	logger  *slog.Logger
}

func NewTermRecommendationHandler(service *service.TermRecommendationService, logger *slog.Logger) *TermRecommendationHandler {
	return &TermRecommendationHandler{service: service, logger: logger}
}

func (h *TermRecommendationHandler) RecommendTerm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Validar Content-Type
	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	var input domain.TermRecommendationInput
	if err := decodeJSON(w, r, &input); err != nil {
		h.logger.Debug("error decoding request body", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.RecommendTerm(r.Context(), input)
	if err != nil {
		h.logger.Info("error recommending term", "error", err)
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}
