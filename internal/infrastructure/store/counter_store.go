package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"boardpulse/internal/domain/contract"
)

// RedisCounterStore implements the counter-store contract on Redis. It is the
// fast path for pending view counters and viewed markers; every method maps
// redis.Nil to an absent-key result instead of an error.
type RedisCounterStore struct {
	rdb *redis.Client
}

// NewRedisCounterStore creates a counter store backed by the given client.
func NewRedisCounterStore(rdb *redis.Client) *RedisCounterStore {
	return &RedisCounterStore{rdb: rdb}
}

var _ contract.ICounterStore = (*RedisCounterStore)(nil)

// Get returns the raw string value under key.
func (s *RedisCounterStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", false, nil
		}
		return "", false, err
	}
	return val, true, nil
}

// Set writes value under key. A zero ttl stores the key without expiration.
func (s *RedisCounterStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

// SetNX writes value only when the key is absent and reports whether it won.
func (s *RedisCounterStore) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return s.rdb.SetNX(ctx, key, value, ttl).Result()
}

// Increment uses the Redis INCR primitive, which is atomic and creates the
// key at 1 when absent. INCR fails on non-numeric values; callers treat that
// as corruption, not as a store failure.
func (s *RedisCounterStore) Increment(ctx context.Context, key string) (int64, error) {
	return s.rdb.Incr(ctx, key).Result()
}

// Delete removes the key. Deleting an absent key is not an error.
func (s *RedisCounterStore) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

// Exists reports whether the key is present.
func (s *RedisCounterStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ScanKeys enumerates keys matching pattern with SCAN, never KEYS, so a large
// keyspace cannot block the server.
func (s *RedisCounterStore) ScanKeys(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	iter := s.rdb.Scan(ctx, 0, pattern, 1000).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// TTLOf returns the remaining lifetime of key, mapping the Redis sentinels to
// the contract's TTLNoExpiry and TTLMissing.
func (s *RedisCounterStore) TTLOf(ctx context.Context, key string) (time.Duration, error) {
	d, err := s.rdb.TTL(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	switch d {
	case -1:
		return contract.TTLNoExpiry, nil
	case -2:
		return contract.TTLMissing, nil
	default:
		return d, nil
	}
}
