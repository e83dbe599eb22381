// Package scheduler runs the background reconciliation that makes the
// engagement counters eventually consistent: pending view deltas are drained
// into the durable content store, stale viewed markers are swept, and
// corrupted counter keys are repaired.
package scheduler

import (
	"context"
	"errors"
	"strconv"
	"time"

	"boardpulse/internal/domain/contract"
	"boardpulse/internal/domain/entity"
	"boardpulse/internal/infrastructure/metrics"
	"boardpulse/internal/usecase"
	usecasecontract "boardpulse/internal/usecase/contract"
)

// Intervals groups the cycle periods. Zero values fall back to the defaults
// used by the original deployment (1m drain, 10m sweep, 1h repair).
type Intervals struct {
	Drain       time.Duration
	MarkerSweep time.Duration
	Repair      time.Duration
}

// Reconciler owns the three periodic cycles. The cycles are independent: a
// slow or failing cycle never blocks the others, and every per-key failure is
// isolated and logged so one bad key cannot abort a run.
type Reconciler struct {
	counters contract.ICounterStore
	guard    *usecase.CorruptionGuard
	notices  contract.IContentStore
	posts    contract.IContentStore
	logger   usecasecontract.IAppLogger

	intervals Intervals

	// instanceID is this process's lock ownership token. Drain locks live in
	// the shared counter store so drains of the same key never overlap, even
	// across processes.
	instanceID string
	lockTTL    time.Duration
}

// NewReconciler creates a reconciler. uuidGen provides the per-process lock
// ownership token.
func NewReconciler(
	counters contract.ICounterStore,
	guard *usecase.CorruptionGuard,
	notices contract.IContentStore,
	posts contract.IContentStore,
	uuidGen contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
	intervals Intervals,
) *Reconciler {
	if intervals.Drain <= 0 {
		intervals.Drain = time.Minute
	}
	if intervals.MarkerSweep <= 0 {
		intervals.MarkerSweep = 10 * time.Minute
	}
	if intervals.Repair <= 0 {
		intervals.Repair = time.Hour
	}
	return &Reconciler{
		counters:   counters,
		guard:      guard,
		notices:    notices,
		posts:      posts,
		logger:     logger,
		intervals:  intervals,
		instanceID: uuidGen.NewUUID(),
		lockTTL:    30 * time.Second,
	}
}

// Start launches the three cycles and returns. The goroutines stop when ctx
// is cancelled.
func (r *Reconciler) Start(ctx context.Context) {
	go r.runEvery(ctx, "drain", r.intervals.Drain, func(ctx context.Context) {
		applied, failed := r.DrainOnce(ctx)
		if applied > 0 || failed > 0 {
			r.logger.Infof("drain cycle: %d counters drained, %d failed", applied, failed)
		}
	})
	go r.runEvery(ctx, "marker-sweep", r.intervals.MarkerSweep, func(ctx context.Context) {
		removed, err := r.SweepMarkersOnce(ctx)
		if err != nil {
			r.logger.Errorf("marker sweep cycle: %v", err)
			return
		}
		if removed > 0 {
			r.logger.Infof("marker sweep cycle: removed %d stale markers", removed)
		}
	})
	go r.runEvery(ctx, "repair", r.intervals.Repair, func(ctx context.Context) {
		repaired, err := r.RepairOnce(ctx)
		if err != nil {
			r.logger.Errorf("repair cycle: %v", err)
			return
		}
		if repaired > 0 {
			r.logger.Warnf("repair cycle: repaired %d corrupted counters", repaired)
		}
	})
}

// runEvery ticks fn until ctx is cancelled. A panicking cycle is logged and
// the loop keeps running; one bad run must not terminate the scheduler.
func (r *Reconciler) runEvery(ctx context.Context, name string, every time.Duration, fn func(context.Context)) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			func() {
				defer func() {
					if rec := recover(); rec != nil {
						r.logger.Errorf("%s cycle panicked: %v", name, rec)
					}
				}()
				fn(ctx)
			}()
		}
	}
}

// DrainOnce applies every positive pending counter to the durable store and
// resets it to 0. Each key is processed independently: parse failures are
// skipped (not deleted), durable failures leave the counter un-reset so the
// next cycle retries the same delta.
//
// A request-path increment landing between the durable apply and the reset is
// lost with it; the per-key lock only serializes drains, matching the source
// system's read-reset sequence.
func (r *Reconciler) DrainOnce(ctx context.Context) (applied, failed int) {
	keys, err := r.counters.ScanKeys(ctx, usecase.AllCountersPattern)
	if err != nil {
		r.logger.Errorf("drain: failed to scan pending counters: %v", err)
		return 0, 0
	}
	for _, key := range keys {
		if r.drainKey(ctx, key) {
			applied++
		} else {
			failed++
		}
	}
	return applied, failed
}

// drainKey drains one pending counter. Returns true when the key needed no
// work or was drained successfully.
func (r *Reconciler) drainKey(ctx context.Context, key string) bool {
	ref, err := usecase.ParseCounterKey(key)
	if err != nil {
		// Left in place for inspection; the repair cycle never touches the
		// key name, only values.
		r.logger.Warnf("drain: skipping key: %v", err)
		return false
	}

	ok, err := r.counters.SetNX(ctx, usecase.DrainLockKey(ref), r.instanceID, r.lockTTL)
	if err != nil {
		r.logger.Warnf("drain: failed to lock %s: %v", key, err)
		return false
	}
	if !ok {
		// Another drainer holds this key.
		return true
	}
	defer r.unlock(ctx, ref)

	raw, found, err := r.counters.Get(ctx, key)
	if err != nil {
		r.logger.Warnf("drain: failed to read %s: %v", key, err)
		metrics.IncDrainFailure()
		return false
	}
	if !found {
		return true
	}
	n, perr := strconv.ParseInt(raw, 10, 64)
	if perr != nil || n < 0 {
		// Corrupted value; the repair cycle owns it.
		r.logger.Warnf("drain: skipping %s, unparsable value %q", key, raw)
		return false
	}
	if n == 0 {
		return true
	}

	if err := r.contentStoreFor(ref.Type).IncrementViewCountBy(ctx, ref.ID, n); err != nil {
		if errors.Is(err, contract.ErrContentNotFound) {
			// The content is gone; its delta can never apply. Drop it so the
			// drain does not retry forever.
			r.logger.Warnf("drain: dropping %d pending views for missing content %s", n, ref)
			if err := r.counters.Set(ctx, key, "0", 0); err != nil {
				r.logger.Warnf("drain: failed to reset %s: %v", key, err)
			}
			return true
		}
		r.logger.Errorf("drain: failed to apply %d views to %s: %v", n, ref, err)
		metrics.IncDrainFailure()
		return false
	}

	// Reset to 0, never delete: ABSENT and RESET are observationally the
	// same, and a kept key stays visible to operators. If the reset itself
	// fails the delta is applied again next cycle; that rare double count is
	// the documented trade-off of retry-by-leaving-stale.
	if err := r.counters.Set(ctx, key, "0", 0); err != nil {
		r.logger.Errorf("drain: applied %d views to %s but failed to reset counter: %v", n, ref, err)
		metrics.IncDrainFailure()
		return false
	}
	metrics.AddDrainedViews(float64(n))
	return true
}

func (r *Reconciler) unlock(ctx context.Context, ref entity.ContentRef) {
	lockKey := usecase.DrainLockKey(ref)
	val, found, err := r.counters.Get(ctx, lockKey)
	if err != nil || !found || val != r.instanceID {
		// Expired or taken over; the TTL bounds how long a dead holder can
		// block a key.
		return
	}
	if err := r.counters.Delete(ctx, lockKey); err != nil {
		r.logger.Warnf("drain: failed to release lock %s: %v", lockKey, err)
	}
}

// SweepMarkersOnce removes viewed markers that still physically exist even
// though their TTL has lapsed (or was never set). On a store with enforced
// TTL eviction this is a no-op; on stores without it, the sweep is what keeps
// the marker family bounded.
func (r *Reconciler) SweepMarkersOnce(ctx context.Context) (int, error) {
	keys, err := r.counters.ScanKeys(ctx, usecase.AllMarkersPattern)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, key := range keys {
		ttl, err := r.counters.TTLOf(ctx, key)
		if err != nil {
			r.logger.Warnf("marker sweep: failed to read ttl of %s: %v", key, err)
			continue
		}
		switch {
		case ttl == contract.TTLMissing:
			// Already evicted.
		case ttl == contract.TTLNoExpiry, ttl <= 0:
			// A marker must always carry a cooldown TTL; one without (or one
			// past it) is a leak.
			if err := r.counters.Delete(ctx, key); err != nil {
				r.logger.Warnf("marker sweep: failed to delete %s: %v", key, err)
				continue
			}
			removed++
		}
	}
	metrics.AddMarkersSwept(float64(removed))
	return removed, nil
}

// RepairOnce runs the corruption guard's sweep over all pending counters.
func (r *Reconciler) RepairOnce(ctx context.Context) (int, error) {
	return r.guard.ScanAndRepair(ctx, usecase.AllCountersPattern)
}

func (r *Reconciler) contentStoreFor(t entity.ContentType) contract.IContentStore {
	if t == entity.ContentTypeNotice {
		return r.notices
	}
	return r.posts
}
