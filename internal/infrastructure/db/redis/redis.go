// Package redis holds the directory's Redis pieces: the connection helper
// and the failed-login throttle. Redis is optional; when no address is
// configured the service runs without the throttle.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect opens a client against addr and proves it with a ping. An
// unreachable Redis at boot is a configuration error; only runtime failures
// are tolerated by the throttle's callers.
func Connect(ctx context.Context, addr string, db int, timeout time.Duration) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	return client, nil
}
