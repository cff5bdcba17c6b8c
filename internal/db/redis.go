package db

import (
	"context"
	"fmt"
	"time"

	"community_cards/internal/logger"

	redis "github.com/redis/go-redis/v9"
)

// ConnectRedis creates a client and pings it. Callers decide whether a
// failed ping is fatal or means falling back to in-memory state.
func ConnectRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}

	logger.Info("redis connected", "addr", addr)
	return client, nil
}
