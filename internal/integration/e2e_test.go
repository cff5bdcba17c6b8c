package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"community_cards/internal/config"
	"community_cards/internal/db"
	"community_cards/internal/domain"
	httpserver "community_cards/internal/http"
	"community_cards/internal/http/handlers"
	"community_cards/internal/http/middleware"
	"community_cards/internal/lookup"
	"community_cards/internal/migrations"
	"community_cards/internal/repository"
	"community_cards/internal/service"
	"community_cards/internal/session"
	"community_cards/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Full stack against real Postgres, and Redis when REDIS_ADDR is set.
func TestE2E_ClaimRecordedInStats(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	gin.SetMode(gin.TestMode)
	require.NoError(t, handlers.RegisterValidators())
	ctx := context.Background()

	pool, err := db.Connect(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()
	sqlDB := db.SQL(pool)
	defer sqlDB.Close()
	require.NoError(t, migrations.Up(ctx, sqlDB))

	cfg, err := config.Parse(func(k string) string {
		switch k {
		case "JWT_SECRET":
			return "test-secret"
		case "REDIS_ADDR", "REDIS_PASSWORD":
			return os.Getenv(k)
		}
		return ""
	})
	require.NoError(t, err)

	var store session.Store
	mem := session.NewMemoryStore(cfg.SessionTTL, 0)
	defer mem.Close()
	store = mem
	var counter middleware.Counter = middleware.NewMemoryCounter()
	if cfg.RedisAddr != "" {
		rdb, err := db.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		require.NoError(t, err)
		defer rdb.Close()
		store = session.NewRedisStore(rdb, cfg.SessionTTL)
		counter = middleware.NewRedisCounter(rdb)
	}

	repo := repository.NewAuditRepository(pool)
	stats := service.NewStatsService(repo, cfg.TotalCards)
	before, err := stats.Stats(ctx)
	require.NoError(t, err)

	mock := lookup.NewMockClient(0)
	mock.IntN = func(int) int { return 9600 } // 10100 followers
	cards := service.NewCardService(store, lookup.NewCachedClient(mock, 16, time.Minute), service.NewAuditService(repo), service.CardServiceConfig{})

	hub := ws.NewHub()
	r := httpserver.NewRouter(cfg, httpserver.Deps{
		Handler: handlers.NewHandler(cards, stats, service.NewTokenIssuer(cfg.JWTSecret, cfg.SessionTTL)),
		Health:  handlers.NewHealthHandler("e2e", map[string]handlers.Checker{"database": pool.Ping}),
		Hub:     hub,
		Counter: counter,
	})
	srv := httptest.NewServer(r)
	defer srv.Close()
	defer hub.CloseAll()

	post := func(path, token string, body any) map[string]any {
		b, _ := json.Marshal(body)
		req, _ := http.NewRequest(http.MethodPost, srv.URL+path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		res, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer res.Body.Close()
		require.Less(t, res.StatusCode, 300, path)
		var out map[string]any
		require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
		return out
	}

	token := post("/api/v1/session", "", nil)["token"].(string)
	check := post("/api/v1/eligibility/check", token, gin.H{"username": "@e2e_user"})
	assert.Equal(t, true, check["eligible"])
	assert.Equal(t, "legendary", check["preview"].(map[string]any)["rarity"])

	// the socket sees the same session
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/preview?token="+token, nil)
	require.NoError(t, err)
	defer conn.Close()
	var m ws.Message
	require.NoError(t, conn.ReadJSON(&m))
	require.Equal(t, ws.MsgReady, m.Type)
	require.NoError(t, conn.WriteJSON(ws.Message{Type: ws.MsgClaim}))
	require.NoError(t, conn.ReadJSON(&m))
	require.Equal(t, ws.MsgClaimed, m.Type)

	after, err := stats.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.ClaimedCards+1, after.ClaimedCards)
	assert.GreaterOrEqual(t, after.ActiveUsers, 1)

	var claimed struct {
		Card domain.CardData `json:"card"`
	}
	require.NoError(t, json.Unmarshal(m.Data, &claimed))
	assert.Equal(t, "@e2e_user", claimed.Card.Username)
	assert.Equal(t, domain.RarityLegendary, claimed.Card.Rarity)
}
