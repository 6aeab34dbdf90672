package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"lending-core/domain"
	"lending-core/platform"
	"lending-core/repository"
)

// CreditScoreFetcher is the remote source of credit score snapshots.
type CreditScoreFetcher interface {
	MyCreditScore(ctx context.Context, token string) (*domain.CreditScoreSnapshot, error)
}

// CreditScoreService reads the signed-in user's credit score through a cache.
type CreditScoreService struct {
	fetcher CreditScoreFetcher
	cache   repository.CacheRepository
	ttl     time.Duration
	logger  *slog.Logger
}

func NewCreditScoreService(
	fetcher CreditScoreFetcher,
	cache repository.CacheRepository,
	ttl time.Duration,
	logger *slog.Logger,
) *CreditScoreService {
	if ttl <= 0 {
		ttl = DefaultCreditScoreTTL
	}
	return &CreditScoreService{fetcher: fetcher, cache: cache, ttl: ttl, logger: logger}
}

// cacheKey hashes the token so bearer credentials never land in the cache.
func cacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return creditScoreKeyPrefix + hex.EncodeToString(sum[:])
}

// Snapshot returns the current credit score, or nil when the server has not
// computed one yet. Callers treat nil as the absent snapshot.
func (s *CreditScoreService) Snapshot(ctx context.Context, token string) (*domain.CreditScoreSnapshot, error) {
	key := cacheKey(token)

	if cached, ok := s.cache.Get(ctx, key); ok {
		var snap domain.CreditScoreSnapshot
		if err := json.Unmarshal([]byte(cached), &snap); err == nil {
			return &snap, nil
		}
		s.logger.Warn("discarding unreadable cached credit score")
		_ = s.cache.Delete(ctx, key)
	}

	snap, err := s.fetcher.MyCreditScore(ctx, token)
	if errors.Is(err, platform.ErrScoreNotReady) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("credit score: %w", err)
	}

	if data, err := json.Marshal(snap); err == nil {
		if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
			s.logger.Warn("failed to cache credit score", "error", err)
		}
	}
	return snap, nil
}

// Invalidate drops the cached score, e.g. after the user asks for a recalculation.
func (s *CreditScoreService) Invalidate(ctx context.Context, token string) error {
	return s.cache.Delete(ctx, cacheKey(token))
}
