package contract

import (
	"context"
	"errors"
	"time"
)

// ErrIncrementUnsupported is returned by counter stores whose backend has no
// atomic increment primitive. Callers fall back to read-modify-write.
var ErrIncrementUnsupported = errors.New("counter store: atomic increment unsupported")

// TTL sentinels reported by TTLOf, mirroring Redis TTL semantics.
const (
	// TTLNoExpiry means the key exists but has no expiration set.
	TTLNoExpiry time.Duration = -1
	// TTLMissing means the key does not exist (or has already been evicted).
	TTLMissing time.Duration = -2
)

// ICounterStore is the TTL-capable key-value cache holding pending view
// counters and viewed markers. It is shared and externally mutable: values may
// be changed by other processes between any two calls, so callers must never
// assume a read is still valid by the time they write.
type ICounterStore interface {
	// Get returns the raw string value. found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set writes value under key. A zero ttl means no expiration.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// SetNX writes value only if the key does not exist yet and reports
	// whether it won. Used for cross-process drain locks.
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)

	// Increment atomically increments the integer value under key, creating
	// it at 1 when absent, and returns the new value. Stores without an
	// atomic primitive return ErrIncrementUnsupported.
	Increment(ctx context.Context, key string) (int64, error)

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether the key is present.
	Exists(ctx context.Context, key string) (bool, error)

	// ScanKeys enumerates all keys matching a glob pattern. May return an
	// empty slice.
	ScanKeys(ctx context.Context, pattern string) ([]string, error)

	// TTLOf returns the remaining lifetime of a key, TTLNoExpiry, or
	// TTLMissing.
	TTLOf(ctx context.Context, key string) (time.Duration, error)
}
