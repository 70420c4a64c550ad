// Package cache keeps the category listing and write-rate counters in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

const (
	// Redis key prefixes
	categoriesKey   = "trivia:categories"
	rateLimitPrefix = "trivia:ratelimit:"
)

// ErrMiss is returned when a key is not cached
var ErrMiss = errors.New("cache miss")

// Manager reads and writes cached data in Redis
type Manager struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewManager creates a new cache manager. Cached categories expire after ttl.
func NewManager(redis *redis.Client, ttl time.Duration) *Manager {
	return &Manager{redis: redis, ttl: ttl}
}

// StoreCategories caches the full ordered category listing
func (m *Manager) StoreCategories(ctx context.Context, categories []domain.Category) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("failed to marshal categories: %w", err)
	}

	return m.redis.Set(ctx, categoriesKey, data, m.ttl).Err()
}

// GetCategories returns the cached category listing, or ErrMiss
func (m *Manager) GetCategories(ctx context.Context) ([]domain.Category, error) {
	data, err := m.redis.Get(ctx, categoriesKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	var categories []domain.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("failed to unmarshal categories: %w", err)
	}

	return categories, nil
}

// InvalidateCategories drops the cached category listing
func (m *Manager) InvalidateCategories(ctx context.Context) error {
	if err := m.redis.Del(ctx, categoriesKey).Err(); err != nil {
		return fmt.Errorf("failed to delete categories from Redis: %w", err)
	}
	return nil
}

// RateLimit counts a hit for client in a fixed window and reports whether
// the limit has been exceeded
func (m *Manager) RateLimit(ctx context.Context, client string, limit int, window time.Duration) (bool, error) {
	key := rateLimitPrefix + client
	count, err := m.redis.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit: %w", err)
	}

	if count == 1 {
		if err := m.redis.Expire(ctx, key, window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	return count > int64(limit), nil
}
