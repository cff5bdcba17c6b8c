package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"community_cards/internal/config"
	"community_cards/internal/domain"
	"community_cards/internal/http/handlers"
	"community_cards/internal/http/middleware"
	"community_cards/internal/lookup"
	"community_cards/internal/service"
	"community_cards/internal/session"
	"community_cards/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := handlers.RegisterValidators(); err != nil {
		panic(err)
	}
}

type testServer struct {
	router  *gin.Engine
	lookups atomic.Int32
}

func newTestServer(t *testing.T, followers int, mutate func(*config.Config)) *testServer {
	t.Helper()
	cfg, err := config.Parse(func(k string) string {
		if k == "JWT_SECRET" {
			return "test-secret"
		}
		return ""
	})
	require.NoError(t, err)
	if mutate != nil {
		mutate(cfg)
	}

	ts := &testServer{}
	client := lookup.ClientFunc(func(_ context.Context, handle string) (*domain.UserProfile, error) {
		ts.lookups.Add(1)
		if handle == "ghost" {
			return nil, domain.ErrProfileNotFound
		}
		if handle == "flaky" {
			return nil, domain.ErrLookupFailed
		}
		return &domain.UserProfile{
			ID:             "1",
			Username:       handle,
			FollowersCount: followers,
			Description:    "Product designer and UX nerd",
		}, nil
	})

	store := session.NewMemoryStore(time.Hour, 0)
	t.Cleanup(func() { _ = store.Close() })
	cards := service.NewCardService(store, client, nil, service.CardServiceConfig{IDSource: func(int) int { return 99 }})
	h := handlers.NewHandler(cards, service.NewStatsService(nil, cfg.TotalCards), service.NewTokenIssuer(cfg.JWTSecret, cfg.SessionTTL))

	ts.router = NewRouter(cfg, Deps{
		Handler: h,
		Health:  handlers.NewHealthHandler("test", nil),
		Hub:     ws.NewHub(),
		Counter: middleware.NewMemoryCounter(),
	})
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "" {
		_ = json.Unmarshal(w.Body.Bytes(), &out)
	}
	return w, out
}

func (ts *testServer) session(t *testing.T) string {
	t.Helper()
	w, body := ts.do(t, "POST", "/api/v1/session", "", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	tok, ok := body["token"].(string)
	require.True(t, ok)
	return tok
}

func TestCheckThenClaim(t *testing.T) {
	ts := newTestServer(t, 1500, nil)
	tok := ts.session(t)

	w, body := ts.do(t, "POST", "/api/v1/eligibility/check", tok, gin.H{"username": "@ivy"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["eligible"])
	assert.Equal(t, "You qualify for a uncommon Community Card!", body["message"])
	preview := body["preview"].(map[string]any)
	assert.Equal(t, "@ivy", preview["username"])
	assert.Equal(t, "Designer", preview["role"])
	assert.Equal(t, float64(100), preview["cardId"])

	w, _ = ts.do(t, "GET", "/api/v1/cards/claimed", tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body = ts.do(t, "POST", "/api/v1/cards/claim", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Your uncommon Community Card has been generated!", body["message"])
	assert.Equal(t, "#0100", body["number"])

	w, body = ts.do(t, "GET", "/api/v1/cards/claimed", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "uncommon", body["card"].(map[string]any)["rarity"])
}

func TestCheck_Ineligible(t *testing.T) {
	ts := newTestServer(t, 120, nil)
	tok := ts.session(t)

	w, body := ts.do(t, "POST", "/api/v1/eligibility/check", tok, gin.H{"username": "jay"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["eligible"])
	assert.Equal(t, float64(380), body["shortfall"])
	assert.Nil(t, body["preview"])

	w, body = ts.do(t, "POST", "/api/v1/cards/claim", tok, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Please check your eligibility first.", body["error"])
}

func TestCheck_Errors(t *testing.T) {
	ts := newTestServer(t, 900, nil)
	tok := ts.session(t)

	w, body := ts.do(t, "POST", "/api/v1/eligibility/check", tok, gin.H{"username": "no spaces allowed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["fields"], "username")

	w, _ = ts.do(t, "POST", "/api/v1/eligibility/check", tok, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, ts.lookups.Load())

	w, body = ts.do(t, "POST", "/api/v1/eligibility/check", tok, gin.H{"username": "ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Could not find Twitter user. Please check the username.", body["error"])

	w, _ = ts.do(t, "POST", "/api/v1/eligibility/check", tok, gin.H{"username": "flaky"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t, 900, nil)

	for _, path := range []string{"/api/v1/eligibility/check", "/api/v1/cards/preview", "/api/v1/cards/claim"} {
		w, _ := ts.do(t, "POST", path, "", gin.H{})
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
	w, _ := ts.do(t, "GET", "/api/v1/cards/claimed", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// a valid token for a session the store never saw
	tokens := service.NewTokenIssuer("test-secret", time.Hour)
	orphan, _, err := tokens.Generate("does-not-exist")
	require.NoError(t, err)
	w, _ = ts.do(t, "GET", "/api/v1/cards/claimed", orphan, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPreviewForm(t *testing.T) {
	ts := newTestServer(t, 0, nil)
	tok := ts.session(t)

	w, body := ts.do(t, "POST", "/api/v1/cards/preview", tok, gin.H{
		"username": "kim", "platform": "LinkedIn", "followers": 0, "contribution": "community moderation",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["eligible"])
	assert.Equal(t, float64(500), body["shortfall"])

	w, body = ts.do(t, "POST", "/api/v1/cards/preview", tok, gin.H{
		"username": "kim", "platform": "LinkedIn", "followers": 10000, "contribution": "community moderation",
	})
	require.Equal(t, http.StatusOK, w.Code)
	draft := body["draft"].(map[string]any)
	assert.Equal(t, "legendary", draft["rarity"])
	assert.Equal(t, "Community Builder", draft["role"])
	assert.Equal(t, "linkedin", draft["platform"])

	w, body = ts.do(t, "POST", "/api/v1/cards/claim", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Your legendary Community Card has been generated!", body["message"])

	w, body = ts.do(t, "POST", "/api/v1/cards/preview", tok, gin.H{
		"username": "kim", "platform": "myspace", "contribution": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	fields := body["fields"].(map[string]any)
	assert.Contains(t, fields, "platform")
	assert.Contains(t, fields, "followers")
	assert.Contains(t, fields, "contribution")
}

func TestPublicEndpoints(t *testing.T) {
	ts := newTestServer(t, 0, nil)

	w, body := ts.do(t, "GET", "/api/v1/stats", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(5000), body["total_cards"])
	assert.Equal(t, float64(1247), body["claimed_cards"])

	w, body = ts.do(t, "GET", "/api/v1/rarities", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(500), body["threshold"])
	assert.Len(t, body["tiers"], 5)

	w, _ = ts.do(t, "GET", "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = ts.do(t, "GET", "/readyz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = ts.do(t, "GET", "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestCheckRateLimit(t *testing.T) {
	ts := newTestServer(t, 900, func(c *config.Config) { c.CheckRateLimit = 2 })
	tok := ts.session(t)

	for i := 0; i < 2; i++ {
		w, _ := ts.do(t, "POST", "/api/v1/eligibility/check", tok, gin.H{"username": "lee"})
		require.Equal(t, http.StatusOK, w.Code)
	}
	w, _ := ts.do(t, "POST", "/api/v1/eligibility/check", tok, gin.H{"username": "lee"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// another visitor is not affected
	w, _ = ts.do(t, "POST", "/api/v1/eligibility/check", ts.session(t), gin.H{"username": "lee"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFrontendFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>cards</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "robots.txt"), []byte("User-agent: *"), 0o644))
	ts := newTestServer(t, 0, func(c *config.Config) { c.FrontendDir = dir })

	w, _ := ts.do(t, "GET", "/claim/some/route", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cards")

	w, _ = ts.do(t, "GET", "/robots.txt", "", nil)
	assert.Contains(t, w.Body.String(), "User-agent")

	w, _ = ts.do(t, "GET", "/api/v1/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
