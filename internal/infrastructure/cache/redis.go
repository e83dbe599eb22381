// Package cache constructs the shared Redis client.
package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisFromURL parses a redis:// URL and returns a connected client.
// A failed ping is logged, not fatal: the counting path degrades gracefully
// when the cache is unreachable.
func NewRedisFromURL(ctx context.Context, url string) *redis.Client {
	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Printf("[WARN] redis ping failed, continuing degraded: %v", err)
	}
	return rdb
}

// Close releases the client connection pool.
func Close(rdb *redis.Client) {
	if rdb == nil {
		return
	}
	if err := rdb.Close(); err != nil {
		log.Printf("[WARN] closing redis client: %v", err)
	}
}
