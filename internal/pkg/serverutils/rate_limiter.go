package serverutils

import (
	"context"
	"fmt"
	"time"

	"ai-assistant-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// RateLimiter counts requests per key over a fixed window.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// MemoryRateLimiter is the in-process fallback used when Redis is not
// reachable. Counters live in a go-cache with window-sized expiry.
type MemoryRateLimiter struct {
	counters *cache.Cache
	limit    int
	window   time.Duration
}

func NewMemoryRateLimiter(limit int, window time.Duration) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		counters: cache.New(window, 2*window),
		limit:    limit,
		window:   window,
	}
}

func (l *MemoryRateLimiter) Allow(_ context.Context, key string) (bool, error) {
	if err := l.counters.Add(key, 1, l.window); err == nil {
		return l.limit >= 1, nil
	}
	count, err := l.counters.IncrementInt(key, 1)
	if err != nil {
		// Counter expired between Add and Increment. Start a new window.
		l.counters.Set(key, 1, l.window)
		return l.limit >= 1, nil
	}
	return count <= l.limit, nil
}

// RedisRateLimiter shares counters across instances via INCR + EXPIRE.
type RedisRateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRedisRateLimiter(client *redis.Client, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		// Fail open: rate limiting is protection, not authorization.
		return true, err
	}
	if count == 1 {
		l.client.Expire(ctx, key, l.window)
	}
	return count <= int64(l.limit), nil
}

// RateLimitMiddleware applies a limiter to one route scope, keyed by caller IP.
func RateLimitMiddleware(limiter RateLimiter, scope string, sysLogger logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		key := fmt.Sprintf("ratelimit:%s:%s", scope, ctx.IP())
		allowed, err := limiter.Allow(ctx.Context(), key)
		if err != nil {
			sysLogger.Warn("rate-limit", "limiter backend error", map[string]interface{}{
				"scope": scope,
				"error": err.Error(),
			})
		}
		if !allowed {
			return ctx.Status(fiber.StatusTooManyRequests).
				JSON(ErrorResponse(fiber.StatusTooManyRequests, "Rate limit exceeded. Try again later."))
		}
		return ctx.Next()
	}
}
