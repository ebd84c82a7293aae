package database

import (
	"context"
	"fmt"
	"time"

	"servicehub/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// InitRedis creates the Redis client used for ephemeral checkout state
// (order intents).
func InitRedis(config utils.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis failed: %w", err)
	}

	return client, nil
}
