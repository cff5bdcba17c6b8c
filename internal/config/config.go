package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"community_cards/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort   string
	AppEnv    string
	LogLevel  string
	LogJSON   bool
	JWTSecret string

	SessionTTL time.Duration

	// Empty RedisAddr keeps sessions and rate limits in memory.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Empty DatabaseURL disables the audit log; stats fall back to the snapshot.
	DatabaseURL string

	LookupProvider     string
	LookupDelay        time.Duration
	LookupTimeout      time.Duration
	TwitterBearerToken string
	TwitterAPIBase     string
	LookupCacheSize    int
	LookupCacheTTL     time.Duration

	APIRateLimit    int
	APIRateWindow   time.Duration
	CheckRateLimit  int
	CheckRateWindow time.Duration

	AllowedOrigin string
	FrontendDir   string
	TotalCards    int
}

const (
	ProviderMock    = "mock"
	ProviderTwitter = "twitter"
)

// IsProduction reports whether APP_ENV is "production".
func (c *Config) IsProduction() bool { return c.AppEnv == "production" }

// Load reads .env and the environment, exiting on invalid config.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := Parse(os.Getenv)
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}
	return cfg
}

// Parse builds a Config from getenv, applying defaults.
func Parse(getenv func(string) string) (*Config, error) {
	var errs []error
	str := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}
	num := func(key string, def int) int {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			errs = append(errs, fmt.Errorf("%s must be a non-negative integer, got %q", key, v))
			return def
		}
		return n
	}
	seconds := func(key string, def int) time.Duration {
		return time.Duration(num(key, def)) * time.Second
	}
	millis := func(key string, def int) time.Duration {
		return time.Duration(num(key, def)) * time.Millisecond
	}

	cfg := &Config{
		AppPort:   str("APP_PORT", "8080"),
		AppEnv:    str("APP_ENV", "development"),
		LogLevel:  strings.ToLower(str("LOG_LEVEL", "info")),
		LogJSON:   strings.EqualFold(str("LOG_FORMAT", "text"), "json"),
		JWTSecret: getenv("JWT_SECRET"),

		SessionTTL: seconds("SESSION_TTL_SECONDS", 24*60*60),

		RedisAddr:     str("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD"),
		RedisDB:       num("REDIS_DB", 0),

		DatabaseURL: str("DATABASE_URL", ""),

		LookupProvider:     strings.ToLower(str("LOOKUP_PROVIDER", ProviderMock)),
		LookupDelay:        millis("LOOKUP_DELAY_MS", 1500),
		LookupTimeout:      millis("LOOKUP_TIMEOUT_MS", 10000),
		TwitterBearerToken: getenv("TWITTER_BEARER_TOKEN"),
		TwitterAPIBase:     str("TWITTER_API_BASE", "https://api.twitter.com/2"),
		LookupCacheSize:    num("LOOKUP_CACHE_SIZE", 1024),
		LookupCacheTTL:     seconds("LOOKUP_CACHE_TTL_SECONDS", 300),

		APIRateLimit:    num("API_RATE_LIMIT", 120),
		APIRateWindow:   seconds("API_RATE_WINDOW_SECONDS", 60),
		CheckRateLimit:  num("CHECK_RATE_LIMIT", 10),
		CheckRateWindow: seconds("CHECK_RATE_WINDOW_SECONDS", 60),

		AllowedOrigin: str("ALLOWED_ORIGIN", "*"),
		FrontendDir:   str("FRONTEND_DIR", ""),
		TotalCards:    num("TOTAL_CARDS", 5000),
	}

	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	switch cfg.LookupProvider {
	case ProviderMock:
	case ProviderTwitter:
		if cfg.TwitterBearerToken == "" {
			errs = append(errs, errors.New("TWITTER_BEARER_TOKEN is required for the twitter lookup provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("LOOKUP_PROVIDER must be %q or %q, got %q", ProviderMock, ProviderTwitter, cfg.LookupProvider))
	}
	if cfg.SessionTTL == 0 {
		errs = append(errs, errors.New("SESSION_TTL_SECONDS must be positive"))
	}
	if cfg.TotalCards == 0 {
		errs = append(errs, errors.New("TOTAL_CARDS must be positive"))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}
