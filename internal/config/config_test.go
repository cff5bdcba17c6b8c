package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(env(map[string]string{"JWT_SECRET": "s"}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogJSON)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, ProviderMock, cfg.LookupProvider)
	assert.Equal(t, 1500*time.Millisecond, cfg.LookupDelay)
	assert.Equal(t, 10*time.Second, cfg.LookupTimeout)
	assert.Equal(t, 5*time.Minute, cfg.LookupCacheTTL)
	assert.Equal(t, 10, cfg.CheckRateLimit)
	assert.Equal(t, time.Minute, cfg.CheckRateWindow)
	assert.Equal(t, 5000, cfg.TotalCards)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.DatabaseURL)
	assert.False(t, cfg.IsProduction())
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := Parse(env(map[string]string{
		"JWT_SECRET":           "s",
		"APP_PORT":             "9000",
		"APP_ENV":              "production",
		"LOG_FORMAT":           "JSON",
		"LOG_LEVEL":            "DEBUG",
		"LOOKUP_PROVIDER":      "Twitter",
		"TWITTER_BEARER_TOKEN": "tok",
		"LOOKUP_DELAY_MS":      "0",
		"REDIS_ADDR":           "localhost:6379",
		"REDIS_DB":             "2",
		"API_RATE_LIMIT":       "30",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.AppPort)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.LogJSON)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ProviderTwitter, cfg.LookupProvider)
	assert.Equal(t, "tok", cfg.TwitterBearerToken)
	assert.Zero(t, cfg.LookupDelay)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 30, cfg.APIRateLimit)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse(env(map[string]string{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	_, err = Parse(env(map[string]string{"JWT_SECRET": "s", "LOOKUP_PROVIDER": "twitter"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TWITTER_BEARER_TOKEN")

	_, err = Parse(env(map[string]string{"JWT_SECRET": "s", "LOOKUP_PROVIDER": "mastodon"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOOKUP_PROVIDER")

	_, err = Parse(env(map[string]string{"JWT_SECRET": "s", "CHECK_RATE_LIMIT": "ten"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHECK_RATE_LIMIT")
}
