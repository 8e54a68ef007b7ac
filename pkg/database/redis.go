package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates a Redis client and verifies the connection with a
// ping. Callers own the returned client and decide how to degrade when the
// server is unreachable.
func NewRedisClient(ctx context.Context, address, password string) (*redis.Client, error) {
	if address == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	slog.Info("Successfully connected to Redis", slog.String("address", address))
	return client, nil
}

// CloseRedisClient closes the Redis client.
func CloseRedisClient(client *redis.Client) {
	if client != nil {
		_ = client.Close()
		slog.Info("Redis client closed")
	}
}
