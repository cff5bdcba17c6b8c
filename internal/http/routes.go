package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"community_cards/internal/config"
	"community_cards/internal/http/handlers"
	"community_cards/internal/http/middleware"
	"community_cards/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the wired components the routes serve.
type Deps struct {
	Handler *handlers.Handler
	Health  *handlers.HealthHandler
	Hub     *ws.Hub
	// Counter backs rate limiting; nil disables it.
	Counter middleware.Counter
}

// NewRouter builds the gin engine with middleware and every route.
func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.AllowedOrigin))

	RegisterRoutes(r, cfg, deps)
	return r
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps Deps) {
	h := deps.Handler
	auth := middleware.SessionAuth(h.Tokens, false)

	// Health checks (no rate limiting)
	r.GET("/health", deps.Health.Health)
	r.GET("/healthz", deps.Health.Liveness)
	r.GET("/readyz", deps.Health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(deps.Counter, "api", cfg.APIRateLimit, cfg.APIRateWindow, middleware.KeyByIP))
	registerAPIRoutes(v1, h, auth, deps.Counter, cfg.CheckRateLimit, cfg.CheckRateWindow)

	// Live preview socket; browsers cannot set headers on upgrade, so the
	// token may come from the query string.
	r.GET("/ws/preview", middleware.SessionAuth(h.Tokens, true), ws.HandleWS(deps.Hub, h.Cards, cfg.AllowedOrigin))

	if cfg.FrontendDir != "" {
		registerFrontend(r, cfg.FrontendDir)
	}
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, auth gin.HandlerFunc, counter middleware.Counter, checkLimit int, checkWindow time.Duration) {
	// Sessions
	api.POST("/session", h.CreateSession)

	// Eligibility check hits the lookup, so it is limited per session as well
	checkRL := middleware.RateLimit(counter, "check", checkLimit, checkWindow, middleware.KeyBySession)
	api.POST("/eligibility/check", auth, checkRL, h.CheckEligibility)

	// Cards
	api.POST("/cards/preview", auth, h.PreviewCard)
	api.POST("/cards/claim", auth, h.ClaimCard)
	api.GET("/cards/claimed", auth, h.ClaimedCard)

	// Public info
	api.GET("/stats", h.CommunityStats)
	api.GET("/rarities", h.Rarities)
}

// registerFrontend serves the built front-end with an SPA fallback.
func registerFrontend(r *gin.Engine, dir string) {
	r.StaticFS("/assets", gin.Dir(filepath.Join(dir, "assets"), false))
	index := filepath.Join(dir, "index.html")
	r.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/ws/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if path != "/" {
			f := filepath.Join(dir, filepath.Clean("/"+path))
			if st, err := os.Stat(f); err == nil && !st.IsDir() {
				c.File(f)
				return
			}
		}
		c.File(index)
	})
}
