package redis

import (
	"context"
	"fmt"

	"github.com/avolkov-dev/order-notifier/internal/config"
	goredis "github.com/redis/go-redis/v9"
)

// NewClient creates a go-redis client and verifies the connection.
func NewClient(cfg *config.Config) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis: failed to connect: %w", err)
	}

	return client, nil
}
