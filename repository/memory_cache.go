package repository

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultMemoryCacheSize = 1024

type memoryEntry struct {
	value  string
	expiry time.Time
}

// MemoryCache is an in-process LRU CacheRepository used when Redis is not configured.
type MemoryCache struct {
	mu    sync.Mutex
	cache *lru.Cache[string, memoryEntry]
	now   func() time.Time
}

func NewMemoryCache(size int) *MemoryCache {
	if size <= 0 {
		size = defaultMemoryCacheSize
	}
	cache, err := lru.New[string, memoryEntry](size)
	if err != nil {
		cache, _ = lru.New[string, memoryEntry](defaultMemoryCacheSize)
	}
	return &MemoryCache{cache: cache, now: time.Now}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.cache.Get(key)
	if !ok {
		return "", false
	}
	if !entry.expiry.IsZero() && m.now().After(entry.expiry) {
		m.cache.Remove(key)
		return "", false
	}
	return entry.value, true
}

func (m *MemoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiry = m.now().Add(ttl)
	}
	m.cache.Add(key, entry)
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cache.Remove(key)
	return nil
}

func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.cache.Len()
}
