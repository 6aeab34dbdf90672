package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP      HTTPConfig
	Logging   LoggingConfig
	Cache     CacheConfig
	Store     StoreConfig
	Platform  PlatformConfig
	RateLimit RateLimitConfig
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string
	Format        string // text|json
	IncludeCaller bool
}

// CacheConfig selects where credit score snapshots are cached.
type CacheConfig struct {
	Backend   string // memory|redis
	RedisAddr string
	TTL       time.Duration
	Size      int
}

// StoreConfig selects where calculation history is kept.
type StoreConfig struct {
	Backend    string // memory|sqlite
	SQLitePath string
	MaxRecords int // memory backend only
}

type PlatformConfig struct {
	BaseURL string
	Timeout time.Duration
}

// RateLimitConfig sets per-client limits. Capacity applies to routes that
// call the platform; QuoteCapacity to the pure calculation routes, which the
// loan form hits on every change. A QuoteCapacity of zero disables that limit.
type RateLimitConfig struct {
	Capacity      int
	Window        time.Duration
	QuoteCapacity int
}

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

const (
	defaultHost            = "0.0.0.0"
	defaultPort            = 8080
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultLoggingLevel    = "info"
	defaultLoggingFormat   = "text"
	defaultRedisAddr       = "localhost:6379"
	defaultCacheTTL        = 5 * time.Minute
	defaultCacheSize       = 1024
	defaultSQLitePath      = "lending-core.db"
	defaultStoreMaxRecords = 1000
	defaultPlatformURL     = "http://localhost:3000/api"
	defaultPlatformTimeout = 10 * time.Second
	defaultRateCapacity    = 5
	defaultRateWindow      = time.Minute
	defaultQuoteCapacity   = 600
)

// Load reads configuration from environment variables, applying defaults.
func Load() (Config, error) {
	var errs []string
	intVar := func(key string, fallback int) int {
		v, err := parseInt(key, fallback)
		if err != nil {
			errs = append(errs, err.Error())
		}
		return v
	}
	durationVar := func(key string, fallback time.Duration) time.Duration {
		v, err := parseDuration(key, fallback)
		if err != nil {
			errs = append(errs, err.Error())
		}
		return v
	}

	cfg := Config{
		HTTP: HTTPConfig{
			Host:            valueOrDefault("SERVER_HOST", defaultHost),
			Port:            intVar("SERVER_PORT", defaultPort),
			ReadTimeout:     durationVar("SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:    durationVar("SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:     durationVar("SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
			ShutdownTimeout: durationVar("SERVER_SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		},
		Logging: LoggingConfig{
			Level:         valueOrDefault("LOG_LEVEL", defaultLoggingLevel),
			Format:        valueOrDefault("LOG_FORMAT", defaultLoggingFormat),
			IncludeCaller: parseBoolWithDefault("LOG_INCLUDE_CALLER", false),
		},
		Cache: CacheConfig{
			Backend:   strings.ToLower(valueOrDefault("CACHE_BACKEND", BackendMemory)),
			RedisAddr: valueOrDefault("REDIS_ADDR", defaultRedisAddr),
			TTL:       durationVar("CACHE_TTL", defaultCacheTTL),
			Size:      intVar("CACHE_SIZE", defaultCacheSize),
		},
		Store: StoreConfig{
			Backend:    strings.ToLower(valueOrDefault("STORE_BACKEND", BackendMemory)),
			SQLitePath: valueOrDefault("SQLITE_PATH", defaultSQLitePath),
			MaxRecords: intVar("STORE_MAX_RECORDS", defaultStoreMaxRecords),
		},
		Platform: PlatformConfig{
			BaseURL: valueOrDefault("PLATFORM_API_URL", defaultPlatformURL),
			Timeout: durationVar("PLATFORM_TIMEOUT", defaultPlatformTimeout),
		},
		RateLimit: RateLimitConfig{
			Capacity:      intVar("RATE_LIMIT_CAPACITY", defaultRateCapacity),
			Window:        durationVar("RATE_LIMIT_WINDOW", defaultRateWindow),
			QuoteCapacity: intVar("QUOTE_RATE_LIMIT_CAPACITY", defaultQuoteCapacity),
		},
	}
	if len(errs) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints that single-value parsing cannot.
func (c Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("port %d is out of range", c.HTTP.Port)
	}
	switch c.Cache.Backend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}
	if c.Cache.Size <= 0 {
		return fmt.Errorf("CACHE_SIZE must be positive, got %d", c.Cache.Size)
	}
	if c.Store.MaxRecords <= 0 {
		return fmt.Errorf("STORE_MAX_RECORDS must be positive, got %d", c.Store.MaxRecords)
	}
	if c.RateLimit.Capacity <= 0 || c.RateLimit.Window <= 0 {
		return fmt.Errorf("rate limit needs a positive capacity and window")
	}
	if c.RateLimit.QuoteCapacity < 0 {
		return fmt.Errorf("QUOTE_RATE_LIMIT_CAPACITY must not be negative, got %d", c.RateLimit.QuoteCapacity)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := cast.ToBoolE(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := cast.ToIntE(strings.TrimSpace(v))
	if err != nil {
		return fallback, fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	return n, nil
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := cast.ToDurationE(strings.TrimSpace(v))
	if err != nil {
		return fallback, fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	return d, nil
}
