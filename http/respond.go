package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"lending-core/platform"
	"lending-core/service"
)

const maxRequestBody = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	return json.NewDecoder(r.Body).Decode(dst)
}

// writeJSON codifica en un buffer primero para no escribir el header si falla.
func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.Error("error encoding response", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Warn("error writing response", "error", err)
	}
}

func statusFor(err error) int {
	var apiErr *platform.APIError
	var urlErr *url.Error
	switch {
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidTerm),
		errors.Is(err, service.ErrInvalidPreference),
		errors.Is(err, service.ErrInvalidApplication),
		errors.Is(err, service.ErrInvalidHoldings):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNoAffordableTerm):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrNotEligible):
		return http.StatusForbidden
	case errors.Is(err, platform.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
		return apiErr.StatusCode
	case errors.As(err, &apiErr), errors.As(err, &urlErr):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status >= 500 {
		logger.Error("request failed", "status", status, "error", err)
		if status == http.StatusInternalServerError {
			msg = "internal server error"
		} else {
			msg = "upstream service unavailable"
		}
	}
	writeJSON(w, logger, status, errorResponse{Error: msg})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func requireJSON(w http.ResponseWriter, r *http.Request) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return false
	}
	return true
}
