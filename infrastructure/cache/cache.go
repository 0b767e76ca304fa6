package cache

import (
	"context"

	"github.com/redis/go-redis/v9"

	"rating-dashboard/infrastructure/logger"
)

// NewCache connects to redis and pings it once.
func NewCache(ctx context.Context, addr, username, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.GetLogger().WithField("error", err).WithField("addr", addr).Error("Redis ping failed")
		_ = client.Close()
		return nil, err
	}
	logger.GetLogger().WithField("addr", addr).Info("Redis connected")
	return client, nil
}
