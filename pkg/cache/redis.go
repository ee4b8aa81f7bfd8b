package cache

import (
	"context"
	"fmt"
	"time"

	"salon-booking/pkg/utils"

	"github.com/go-redis/redis/v8"
)

// InitRedis creates the cache client. Returns nil when no address is
// configured; the availability cache treats a nil client as disabled.
func InitRedis(config utils.RedisConfig) (*redis.Client, error) {
	if config.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}
