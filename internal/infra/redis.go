// README: Redis client initialization for the itinerary cache.
package infra

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func NewRedis(ctx context.Context, addr string, log zerolog.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	ping := func() error { return client.Ping(ctx).Err() }
	if err := retryStartup(ctx, "redis", ping, log); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
