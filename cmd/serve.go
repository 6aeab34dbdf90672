package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"lending-core/config"
	httpLayer "lending-core/http"
	"lending-core/logging"
	"lending-core/platform"
	"lending-core/repository"
	"lending-core/service"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the calculation HTTP API",
		Long:  "Run the HTTP API. Configuration is read from environment variables (SERVER_PORT, CACHE_BACKEND, STORE_BACKEND, PLATFORM_API_URL, ...).",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := logging.New(cfg.Logging)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
}

// app holds the wired HTTP handler and whatever must be released on exit.
type app struct {
	handler  http.Handler
	closers  []io.Closer
	limiters []*httpLayer.RateLimiter
}

func (a *app) Close() error {
	for _, l := range a.limiters {
		l.Stop()
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	return errors.Join(errs...)
}

func buildApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*app, error) {
	a := &app{}
	checks := map[string]httpLayer.Pinger{}

	var cache repository.CacheRepository
	switch cfg.Cache.Backend {
	case config.BackendRedis:
		redisCache := repository.NewRedisCache(cfg.Cache.RedisAddr, logger)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := redisCache.Ping(pingCtx)
		cancel()
		if err != nil {
			_ = redisCache.Close()
			return nil, fmt.Errorf("connect redis at %s: %w", cfg.Cache.RedisAddr, err)
		}
		a.closers = append(a.closers, redisCache)
		checks["redis"] = redisCache
		cache = redisCache
	default:
		cache = repository.NewMemoryCache(cfg.Cache.Size)
	}

	var store repository.CalculationRepository
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		sqliteRepo, err := repository.OpenLoanRepositorySQLite(cfg.Store.SQLitePath)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.closers = append(a.closers, sqliteRepo)
		checks["sqlite"] = sqliteRepo
		store = sqliteRepo
	default:
		store = repository.NewLoanRepositoryMemory(cfg.Store.MaxRecords)
	}

	client := platform.NewClient(cfg.Platform.BaseURL, cfg.Platform.Timeout)

	loanService := service.NewLoanService(store, logger)
	termService := service.NewTermRecommendationService(logger)
	investmentService := service.NewInvestmentService(logger)
	scoreService := service.NewCreditScoreService(client, cache, cfg.Cache.TTL, logger)
	submissionService := service.NewSubmissionService(scoreService, client, logger)

	platformLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Window)
	a.limiters = append(a.limiters, platformLimiter)
	var quoteLimiter *httpLayer.RateLimiter
	if cfg.RateLimit.QuoteCapacity > 0 {
		quoteLimiter = httpLayer.NewRateLimiter(cfg.RateLimit.QuoteCapacity, cfg.RateLimit.Window)
		a.limiters = append(a.limiters, quoteLimiter)
	}
	a.handler = httpLayer.NewRouter(logger, httpLayer.RouterDeps{
		Loan:         httpLayer.NewLoanHandler(loanService, logger),
		Term:         httpLayer.NewTermRecommendationHandler(termService, logger),
		Investment:   httpLayer.NewInvestmentHandler(investmentService, logger),
		Borrower:     httpLayer.NewBorrowerHandler(scoreService, submissionService, logger),
		RateLimiter:  platformLimiter,
		QuoteLimiter: quoteLimiter,
		Checks:       checks,
	})

	logger.Info("dependencies ready",
		"cache", cfg.Cache.Backend,
		"store", cfg.Store.Backend,
		"platform", cfg.Platform.BaseURL,
	)
	return a, nil
}

func serve(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	a, err := buildApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("error releasing resources", "error", err)
		}
	}()

	server := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      a.handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("API listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("start server: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}
