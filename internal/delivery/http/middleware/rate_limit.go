package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"hearing-care-backend/config"
	"hearing-care-backend/internal/delivery/http/response"
	"hearing-care-backend/pkg/i18n"
	"hearing-care-backend/pkg/redis"
	"hearing-care-backend/pkg/security"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis
	KeyPrefix string
	// Whether to fail closed (reject) when Redis is unavailable
	FailClosed bool
	// Redis client; nil uses the in-memory counter
	Redis *goredis.Client
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

var rateLimitScript = goredis.NewScript(rateLimitLuaScript)

// rateLimitEntry tracks request count for a key (in-memory fallback)
type rateLimitEntry struct {
	count   int
	resetAt time.Time
}

// memoryCounter is a fixed-window counter used when Redis is absent or failing.
// Expired entries are swept at most once per window.
type memoryCounter struct {
	mu        sync.Mutex
	entries   map[string]*rateLimitEntry
	lastSweep time.Time
}

func newMemoryCounter() *memoryCounter {
	return &memoryCounter{entries: make(map[string]*rateLimitEntry)}
}

func (m *memoryCounter) incr(key string, window time.Duration, now time.Time) (int, time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if now.Sub(m.lastSweep) > window {
		for k, e := range m.entries {
			if now.After(e.resetAt) {
				delete(m.entries, k)
			}
		}
		m.lastSweep = now
	}

	entry, ok := m.entries[key]
	if !ok || now.After(entry.resetAt) {
		entry = &rateLimitEntry{resetAt: now.Add(window)}
		m.entries[key] = entry
	}
	entry.count++

	return entry.count, entry.resetAt
}

func clientIPKey(c *gin.Context) string {
	return c.ClientIP()
}

// GlobalRateLimitConfig limits every API request per client IP.
func GlobalRateLimitConfig(cfg *config.Config) RateLimitConfig {
	return RateLimitConfig{
		Limit:     cfg.RateLimitGlobalThreshold,
		Window:    time.Duration(cfg.RateLimitWindowSeconds) * time.Second,
		KeyPrefix: "rl:ip:",
		KeyFunc:   clientIPKey,
		Redis:     redis.Client(),
	}
}

// ContactRateLimitConfig is the stricter limit for contact form submissions.
// Each accepted submission sends two emails, so it fails closed.
func ContactRateLimitConfig(cfg *config.Config) RateLimitConfig {
	return RateLimitConfig{
		Limit:      cfg.RateLimitContactThreshold,
		Window:     time.Duration(cfg.RateLimitWindowSeconds) * time.Second,
		KeyPrefix:  "rl:contact:",
		FailClosed: true,
		KeyFunc:    clientIPKey,
		Redis:      redis.Client(),
	}
}

// RateLimitMiddleware creates a rate limiting middleware with the given config
// Uses Redis when available, falls back to in-memory when not
func RateLimitMiddleware(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = clientIPKey
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	memory := newMemoryCounter()

	return func(c *gin.Context) {
		if cfg.Limit <= 0 {
			c.Next()
			return
		}

		fullKey := cfg.KeyPrefix + cfg.KeyFunc(c)
		now := time.Now()

		var count int
		var resetAt time.Time

		if cfg.Redis != nil {
			var err error
			count, resetAt, err = checkRateLimitRedis(c.Request.Context(), cfg.Redis, fullKey, cfg.Window, now)
			if err != nil {
				logRateLimitError(c, err)
				if cfg.FailClosed {
					response.Error(c, http.StatusServiceUnavailable,
						i18n.Tr(c.Request.Context(), "The contact service is temporarily unavailable"))
					c.Abort()
					return
				}
				count, resetAt = memory.incr(fullKey, cfg.Window, now)
			}
		} else {
			count, resetAt = memory.incr(fullKey, cfg.Window, now)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		c.Header("X-RateLimit-Reset", resetAt.UTC().Format(time.RFC3339))

		if count > cfg.Limit {
			retryAfter := int(resetAt.Sub(now).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logRateLimitTriggered(c)

			response.Error(c, http.StatusTooManyRequests,
				i18n.Tr(c.Request.Context(), "Rate limit exceeded. Please try again later."))
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(cfg.Limit-count))
		c.Next()
	}
}

// checkRateLimitRedis checks rate limit using Redis with atomic Lua script
func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, window time.Duration, now time.Time) (int, time.Time, error) {
	ttlSeconds := int(window.Seconds())
	if ttlSeconds < 1 {
		ttlSeconds = 1
	}

	result, err := rateLimitScript.Run(ctx, client, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format: %T", result)
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)
	if ttl < 0 {
		ttl = int64(ttlSeconds)
	}

	return int(count), now.Add(time.Duration(ttl) * time.Second), nil
}

func logRateLimitTriggered(c *gin.Context) {
	security.DefaultLogger().LogRateLimitTriggered(
		c.Request.Context(),
		c.ClientIP(),
		c.GetHeader("User-Agent"),
		c.GetString("RequestID"),
		c.FullPath(),
	)
}

func logRateLimitError(c *gin.Context, err error) {
	security.DefaultLogger().Log(c.Request.Context(), security.SecurityEvent{
		Event:       security.EventRateLimitStoreError,
		SubjectType: "system",
		IP:          c.ClientIP(),
		RequestID:   c.GetString("RequestID"),
		Details: map[string]interface{}{
			"error": err.Error(),
		},
	})
}
