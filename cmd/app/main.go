package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"community_cards/internal/config"
	"community_cards/internal/db"
	httpServer "community_cards/internal/http"
	"community_cards/internal/http/handlers"
	"community_cards/internal/http/middleware"
	"community_cards/internal/logger"
	"community_cards/internal/lookup"
	"community_cards/internal/repository"
	"community_cards/internal/service"
	"community_cards/internal/session"
	"community_cards/internal/ws"

	"github.com/gin-gonic/gin"
)

var version = "dev"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := handlers.RegisterValidators(); err != nil {
		logger.Fatal("failed to register validators", "error", err)
	}

	ctx := context.Background()
	checks := map[string]handlers.Checker{}

	// Redis is optional: without it sessions and rate limits stay in memory.
	var (
		store   session.Store
		counter middleware.Counter
	)
	memStore := session.NewMemoryStore(cfg.SessionTTL, time.Minute)
	defer memStore.Close()
	store, counter = memStore, middleware.NewMemoryCounter()

	if cfg.RedisAddr != "" {
		rdb, err := db.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Warn("redis unavailable, using in-memory sessions and rate limits", "error", err)
		} else {
			defer rdb.Close()
			store = session.NewRedisStore(rdb, cfg.SessionTTL)
			counter = middleware.NewRedisCounter(rdb)
			checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		}
	}

	// Postgres is optional: it only feeds the audit log and stats.
	var (
		audit *service.AuditService
		stats = service.NewStatsService(nil, cfg.TotalCards)
	)
	if cfg.DatabaseURL != "" {
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("failed to connect database", "error", err)
		}
		defer pool.Close()
		repo := repository.NewAuditRepository(pool)
		audit = service.NewAuditService(repo)
		stats = service.NewStatsService(repo, cfg.TotalCards)
		checks["database"] = pool.Ping
	}

	cards := service.NewCardService(store, newLookup(cfg), audit, service.CardServiceConfig{
		LookupTimeout: cfg.LookupTimeout,
	})
	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.SessionTTL)
	hub := ws.NewHub()

	r := httpServer.NewRouter(cfg, httpServer.Deps{
		Handler: handlers.NewHandler(cards, stats, tokens),
		Health:  handlers.NewHealthHandler(version, checks),
		Hub:     hub,
		Counter: counter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "lookup", cfg.LookupProvider, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// hijacked websocket connections are not closed by Shutdown
	hub.CloseAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}

func newLookup(cfg *config.Config) lookup.Client {
	var client lookup.Client
	switch cfg.LookupProvider {
	case config.ProviderTwitter:
		client = lookup.NewTwitterClient(cfg.TwitterAPIBase, cfg.TwitterBearerToken)
	default:
		client = lookup.NewMockClient(cfg.LookupDelay)
	}
	if cfg.LookupCacheSize > 0 {
		client = lookup.NewCachedClient(client, cfg.LookupCacheSize, cfg.LookupCacheTTL)
	}
	return client
}
