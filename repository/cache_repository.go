package repository

import (
	"context"
	"time"
)

// CacheRepository stores short-lived string values, such as serialized credit
// score snapshots. A ttl of zero means no expiry.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
