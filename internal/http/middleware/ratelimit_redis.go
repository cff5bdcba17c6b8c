package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"community_cards/internal/logger"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

// Counter counts hits per key in fixed windows.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisCounter implements a fixed-window counter using Redis INCR/EXPIRE.
// key format: rl:<window_seconds>:<identifier>
type RedisCounter struct {
	client *redis.Client
}

// NewRedisCounter wraps a connected client.
func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

// Incr bumps the counter and reads its TTL in one round trip. A key left
// without an expiry, after a failed EXPIRE or otherwise, gets one on the
// next hit so it cannot block its visitor forever.
func (r *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	key = redisCounterKey(key, window)
	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	_, err := r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		ttl = pipe.TTL(ctx, key)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if ttl.Val() < 0 {
		if err := r.client.Expire(ctx, key, window).Err(); err != nil {
			return 0, err
		}
	}
	return incr.Val(), nil
}

func redisCounterKey(key string, window time.Duration) string {
	return "rl:" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + key
}

// KeyFunc picks the identity a limit applies to. An empty key skips limiting.
type KeyFunc func(c *gin.Context) string

// KeyByIP limits per client address.
func KeyByIP(c *gin.Context) string { return "ip:" + c.ClientIP() }

// KeyBySession limits per session; SessionAuth must run first.
func KeyBySession(c *gin.Context) string {
	id := c.GetString(SessionIDKey)
	if id == "" {
		return ""
	}
	return "session:" + id
}

// RateLimit rejects requests above maxRequests per window for the key
// chosen by keyFn. Counter errors fail open. maxRequests <= 0 disables it.
func RateLimit(counter Counter, name string, maxRequests int, window time.Duration, keyFn KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if counter == nil || maxRequests <= 0 {
			c.Next()
			return
		}
		ident := keyFn(c)
		if ident == "" {
			c.Next()
			return
		}

		val, err := counter.Incr(c.Request.Context(), name+":"+ident, window)
		if err != nil {
			// on counter error, fail-open (allow) but set header
			logger.Warn("rate limiter unavailable", "limiter", name, "error", err)
			c.Header("X-RateLimit-Error", "counter-error")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(0, int64(maxRequests)-val), 10))

		if val > int64(maxRequests) {
			RLBlocked.WithLabelValues(name).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests. Please try again later.",
				"retry_after": int(window.Seconds()),
			})
			return
		}

		RLRequests.WithLabelValues(name).Inc()
		c.Next()
	}
}
