package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"peoplehub.app/api/internal/http/response"
)

type RateLimitResult struct {
	Count   int64
	ResetIn time.Duration
}

// Limiter counts hits for key inside a fixed window.
type Limiter interface {
	Hit(ctx context.Context, key string, window time.Duration) (RateLimitResult, error)
}

type redisLimiter struct {
	client *redis.Client
	prefix string
}

func NewRedisLimiter(client *redis.Client) Limiter {
	return &redisLimiter{client: client, prefix: "ratelimit"}
}

func (l *redisLimiter) Hit(ctx context.Context, key string, window time.Duration) (RateLimitResult, error) {
	k := l.prefix + ":" + key

	count, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("incr %s: %w", k, err)
	}
	if count == 1 {
		if err := l.client.PExpire(ctx, k, window).Err(); err != nil {
			return RateLimitResult{}, fmt.Errorf("pexpire %s: %w", k, err)
		}
		return RateLimitResult{Count: count, ResetIn: window}, nil
	}

	ttl, err := l.client.PTTL(ctx, k).Result()
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("pttl %s: %w", k, err)
	}
	if ttl < 0 {
		// Key lost its expiry (e.g. PEXPIRE failed after INCR); restart the window.
		if err := l.client.PExpire(ctx, k, window).Err(); err != nil {
			return RateLimitResult{}, fmt.Errorf("pexpire %s: %w", k, err)
		}
		ttl = window
	}
	return RateLimitResult{Count: count, ResetIn: ttl}, nil
}

// RateLimit allows max requests per client IP per window within scope.
// Limiter failures let the request through.
func RateLimit(limiter Limiter, scope string, max int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := scope + ":" + c.ClientIP()

		res, err := limiter.Hit(ctx, key, window)
		if err != nil {
			slog.WarnContext(ctx, "rate limiter unavailable, allowing request",
				"error", err,
				"scope", scope)
			c.Next()
			return
		}

		remaining := int64(max) - res.Count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(max))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if res.Count > int64(max) {
			retryAfter := int(math.Ceil(res.ResetIn.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			response.Error(c, http.StatusTooManyRequests, "too many requests, please try again later", nil)
			return
		}

		c.Next()
	}
}
