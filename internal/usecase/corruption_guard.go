package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"boardpulse/internal/domain/contract"
	"boardpulse/internal/infrastructure/metrics"
	usecasecontract "boardpulse/internal/usecase/contract"
)

// CorruptionGuard keeps garbage out of the counters. The counter store is a
// loosely-typed shared cache: any operator, bug, or concurrent writer can
// leave a non-numeric value under a counter key, and the guard makes sure
// such values are repaired instead of propagated.
type CorruptionGuard struct {
	store    contract.ICounterStore
	strategy IIncrementStrategy
	logger   usecasecontract.IAppLogger
}

// NewCorruptionGuard creates a guard using the given increment strategy.
func NewCorruptionGuard(store contract.ICounterStore, strategy IIncrementStrategy, logger usecasecontract.IAppLogger) *CorruptionGuard {
	return &CorruptionGuard{store: store, strategy: strategy, logger: logger}
}

// SafeIncrement increments the pending counter under key.
//
// Absent keys are created at 1. Values that parse as non-negative integers go
// through the configured strategy. Anything else is corruption: the key is
// overwritten with "1" so the current view still counts, and the event is
// logged and counted.
func (g *CorruptionGuard) SafeIncrement(ctx context.Context, key string) (int64, error) {
	raw, found, err := g.store.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("failed to read counter %s: %w", key, err)
	}
	if !found {
		if err := g.store.Set(ctx, key, "1", 0); err != nil {
			return 0, fmt.Errorf("failed to create counter %s: %w", key, err)
		}
		return 1, nil
	}
	if n, perr := strconv.ParseInt(raw, 10, 64); perr != nil || n < 0 {
		return g.repairTo(ctx, key, raw, "1", 1)
	}

	n, err := g.strategy.Increment(ctx, key)
	if err != nil {
		// A concurrent writer corrupted the key between our read and the
		// strategy's own read.
		if errors.Is(err, ErrCorruptValue) {
			return g.repairTo(ctx, key, "<raced>", "1", 1)
		}
		return 0, fmt.Errorf("failed to increment counter %s: %w", key, err)
	}
	return n, nil
}

// NormalizeRead returns the integer value under key for read paths. Absent
// keys read as 0. Unparsable values are repaired to "0" and read as 0, so a
// corrupted counter never surfaces in an API response.
func (g *CorruptionGuard) NormalizeRead(ctx context.Context, key string) (int64, error) {
	raw, found, err := g.store.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("failed to read counter %s: %w", key, err)
	}
	if !found {
		return 0, nil
	}
	n, perr := strconv.ParseInt(raw, 10, 64)
	if perr != nil || n < 0 {
		return g.repairTo(ctx, key, raw, "0", 0)
	}
	return n, nil
}

// ScanAndRepair sweeps all keys matching pattern and resets every value that
// fails integer parsing to "0". It runs on a slow cadence as a self-healing
// pass, independent of the request path.
func (g *CorruptionGuard) ScanAndRepair(ctx context.Context, pattern string) (int, error) {
	keys, err := g.store.ScanKeys(ctx, pattern)
	if err != nil {
		return 0, fmt.Errorf("failed to scan %s: %w", pattern, err)
	}
	repaired := 0
	for _, key := range keys {
		raw, found, err := g.store.Get(ctx, key)
		if err != nil {
			g.logger.Warnf("repair sweep: failed to read %s: %v", key, err)
			continue
		}
		if !found {
			continue
		}
		if n, perr := strconv.ParseInt(raw, 10, 64); perr == nil && n >= 0 {
			continue
		}
		if _, err := g.repairTo(ctx, key, raw, "0", 0); err != nil {
			g.logger.Warnf("repair sweep: failed to repair %s: %v", key, err)
			continue
		}
		repaired++
	}
	return repaired, nil
}

// CountCorrupted counts keys under pattern whose value fails integer parsing,
// without repairing them. Used by the stats endpoint.
func (g *CorruptionGuard) CountCorrupted(ctx context.Context, pattern string) (int64, error) {
	keys, err := g.store.ScanKeys(ctx, pattern)
	if err != nil {
		return 0, fmt.Errorf("failed to scan %s: %w", pattern, err)
	}
	var corrupted int64
	for _, key := range keys {
		raw, found, err := g.store.Get(ctx, key)
		if err != nil || !found {
			continue
		}
		if n, perr := strconv.ParseInt(raw, 10, 64); perr != nil || n < 0 {
			corrupted++
		}
	}
	return corrupted, nil
}

// ClearAll deletes every key matching pattern. Emergency recovery only; the
// number of removed keys is always logged.
func (g *CorruptionGuard) ClearAll(ctx context.Context, pattern string) (int, error) {
	keys, err := g.store.ScanKeys(ctx, pattern)
	if err != nil {
		return 0, fmt.Errorf("failed to scan %s: %w", pattern, err)
	}
	removed := 0
	for _, key := range keys {
		if err := g.store.Delete(ctx, key); err != nil {
			g.logger.Warnf("clear: failed to delete %s: %v", key, err)
			continue
		}
		removed++
	}
	g.logger.Infof("cleared %d keys matching %s", removed, pattern)
	return removed, nil
}

// repairTo overwrites a corrupted key and records the corruption event.
func (g *CorruptionGuard) repairTo(ctx context.Context, key, raw, value string, result int64) (int64, error) {
	if err := g.store.Set(ctx, key, value, 0); err != nil {
		return 0, fmt.Errorf("failed to repair counter %s: %w", key, err)
	}
	metrics.IncCorruptionEvent()
	g.logger.Warnf("corrupted counter %s held %q, repaired to %s", key, raw, value)
	return result, nil
}
