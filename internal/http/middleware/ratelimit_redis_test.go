package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping integration test")
	}
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			db = n
		}
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: os.Getenv("REDIS_PASSWORD"), DB: db})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())
	return client
}

// Integration-style test: runs only if REDIS_ADDR env is set.
func TestRedisCounter_KeyAlwaysExpires(t *testing.T) {
	client := testRedisClient(t)
	ctx := context.Background()
	window := 30 * time.Second
	id := "test-" + uuid.NewString()
	key := redisCounterKey(id, window)
	t.Cleanup(func() { client.Del(ctx, key) })

	c := NewRedisCounter(client)
	n, err := c.Incr(ctx, id, window)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	ttl, err := client.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, window)

	// a key that lost its expiry gets one back on the next hit
	require.NoError(t, client.Persist(ctx, key).Err())
	n, err = c.Incr(ctx, id, window)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	ttl, err = client.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

// Integration-style test: runs only if REDIS_ADDR env is set.
func TestRedisRateLimitIntegration(t *testing.T) {
	client := testRedisClient(t)

	// small window for test, unique limiter name so reruns don't collide
	w := 2 * time.Second
	limit := 2
	name := "test-" + uuid.NewString()

	r := gin.New()
	r.GET("/test", RateLimit(NewRedisCounter(client), name, limit, w, KeyByIP), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	for i := 0; i < limit; i++ {
		res, err := http.Get(srv.URL + "/test")
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, 200, res.StatusCode)
	}

	// next request should be blocked
	res, err := http.Get(srv.URL + "/test")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, 429, res.StatusCode)
}
