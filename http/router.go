package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterDeps struct {
	Loan       *LoanHandler
	Term       *TermRecommendationHandler
	Investment *InvestmentHandler
	Borrower   *BorrowerHandler

	// RateLimiter guards the routes that call the platform.
	RateLimiter *RateLimiter

	// QuoteLimiter guards the pure calculation routes; nil leaves them unlimited.
	QuoteLimiter *RateLimiter

	// Checks are run by /healthz, keyed by component name.
	Checks map[string]Pinger
}

func NewRouter(logger *slog.Logger, deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	withLimit := func(limiter *RateLimiter) func(http.HandlerFunc) http.Handler {
		return func(h http.HandlerFunc) http.Handler {
			if limiter == nil {
				return h
			}
			return RateLimitMiddleware(limiter, h)
		}
	}
	limited := withLimit(deps.RateLimiter)
	quote := withLimit(deps.QuoteLimiter)

	mux.HandleFunc("/healthz", healthHandler(logger, deps.Checks))

	if deps.Loan != nil {
		mux.Handle("/loan/calculate", quote(deps.Loan.CalculateLoan))
		mux.Handle("/loan/band", quote(deps.Loan.Band))
		mux.Handle("/loan/schedule", quote(deps.Loan.Schedule))
		mux.Handle("/loan/late-fee", quote(deps.Loan.LateFee))
		mux.HandleFunc("/loan/recent", deps.Loan.RecentCalculations)
	}
	if deps.Term != nil {
		mux.Handle("/loan/recommend-term", quote(deps.Term.RecommendTerm))
	}
	if deps.Investment != nil {
		mux.Handle("/investment/project", quote(deps.Investment.ProjectReturn))
		mux.Handle("/investment/distribute", quote(deps.Investment.Distribute))
	}
	if deps.Borrower != nil {
		mux.Handle("/borrower/band", limited(deps.Borrower.MyBand))
		mux.Handle("/loan/submit", limited(deps.Borrower.Submit))
	}

	return loggingMiddleware(logger, mux)
}

type healthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

func healthHandler(logger *slog.Logger, checks map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok"}
		status := http.StatusOK
		if len(checks) > 0 {
			resp.Components = make(map[string]string, len(checks))
		}
		for name, p := range checks {
			if err := p.Ping(ctx); err != nil {
				logger.Warn("health check failed", "component", name, "error", err)
				resp.Components[name] = "down"
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Components[name] = "up"
		}

		writeJSON(w, logger, status, resp)
	}
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"remote", clientIP(r),
		)
	})
}
