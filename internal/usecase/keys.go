package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"boardpulse/internal/domain/entity"
)

// Counter-store key families. Pending counters and viewed markers live in a
// shared, externally mutable cache, so every key carries a namespace prefix.
const (
	counterKeyPrefix = "viewcount"
	markerKeyPrefix  = "viewed"
	drainLockPrefix  = "lock:drain"

	// AllCountersPattern matches every pending counter key.
	AllCountersPattern = counterKeyPrefix + ":*"
	// AllMarkersPattern matches every viewed marker key.
	AllMarkersPattern = markerKeyPrefix + ":*"
)

// CounterKey builds the pending-counter key for one content item,
// e.g. "viewcount:notice:42".
func CounterKey(ref entity.ContentRef) string {
	return fmt.Sprintf("%s:%s:%d", counterKeyPrefix, ref.Type, ref.ID)
}

// CounterKeyPattern matches all pending counters of one content type.
func CounterKeyPattern(t entity.ContentType) string {
	return fmt.Sprintf("%s:%s:*", counterKeyPrefix, t)
}

// MarkerKeyPattern matches all viewed markers of one content type.
func MarkerKeyPattern(t entity.ContentType) string {
	return fmt.Sprintf("%s:%s:*", markerKeyPrefix, t)
}

// MarkerKey builds the viewed-marker key for one (content, visitor) pair,
// e.g. "viewed:notice:42:<fingerprint>".
func MarkerKey(ref entity.ContentRef, fingerprint string) string {
	return fmt.Sprintf("%s:%s:%d:%s", markerKeyPrefix, ref.Type, ref.ID, fingerprint)
}

// DrainLockKey builds the cross-process drain lock key for one counter.
func DrainLockKey(ref entity.ContentRef) string {
	return fmt.Sprintf("%s:%s:%d", drainLockPrefix, ref.Type, ref.ID)
}

// ParseCounterKey recovers the content reference from a pending-counter key.
// Malformed keys are reported to the caller, which must skip them without
// deleting so they stay inspectable.
func ParseCounterKey(key string) (entity.ContentRef, error) {
	parts := strings.Split(key, ":")
	if len(parts) != 3 || parts[0] != counterKeyPrefix {
		return entity.ContentRef{}, fmt.Errorf("malformed counter key %q", key)
	}
	contentType, err := entity.ParseContentType(parts[1])
	if err != nil {
		return entity.ContentRef{}, fmt.Errorf("malformed counter key %q: %w", key, err)
	}
	id, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return entity.ContentRef{}, fmt.Errorf("malformed counter key %q: %w", key, err)
	}
	return entity.ContentRef{Type: contentType, ID: id}, nil
}
