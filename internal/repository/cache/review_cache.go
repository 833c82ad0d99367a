package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"hearing-care-backend/internal/domain"
)

const keyPrefix = "reviews:"

type redisReviewCache struct {
	client *goredis.Client
}

// NewRedisReviewCache stores reviews as JSON strings with a Redis TTL.
func NewRedisReviewCache(client *goredis.Client) domain.ReviewCache {
	return &redisReviewCache{client: client}
}

func (r *redisReviewCache) Get(ctx context.Context, key string) ([]domain.GooglePlaceReview, bool, error) {
	raw, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("review cache get: %w", err)
	}

	var reviews []domain.GooglePlaceReview
	if err := json.Unmarshal(raw, &reviews); err != nil {
		return nil, false, fmt.Errorf("review cache decode: %w", err)
	}
	return reviews, true, nil
}

func (r *redisReviewCache) Set(ctx context.Context, key string, reviews []domain.GooglePlaceReview, ttl time.Duration) error {
	raw, err := json.Marshal(reviews)
	if err != nil {
		return fmt.Errorf("review cache encode: %w", err)
	}
	if err := r.client.Set(ctx, keyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("review cache set: %w", err)
	}
	return nil
}

type memoryEntry struct {
	reviews   []domain.GooglePlaceReview
	expiresAt time.Time
}

type memoryReviewCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryReviewCache is the single-process fallback used without Redis.
// Expired entries are dropped on read.
func NewMemoryReviewCache() domain.ReviewCache {
	return &memoryReviewCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *memoryReviewCache) Get(_ context.Context, key string) ([]domain.GooglePlaceReview, bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if !m.now().Before(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, false, nil
	}

	out := make([]domain.GooglePlaceReview, len(entry.reviews))
	copy(out, entry.reviews)
	return out, true, nil
}

func (m *memoryReviewCache) Set(_ context.Context, key string, reviews []domain.GooglePlaceReview, ttl time.Duration) error {
	stored := make([]domain.GooglePlaceReview, len(reviews))
	copy(stored, reviews)

	m.mu.Lock()
	m.entries[key] = memoryEntry{reviews: stored, expiresAt: m.now().Add(ttl)}
	m.mu.Unlock()
	return nil
}
