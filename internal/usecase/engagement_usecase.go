package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"boardpulse/internal/domain/contract"
	"boardpulse/internal/domain/entity"
	"boardpulse/internal/infrastructure/metrics"
	usecasecontract "boardpulse/internal/usecase/contract"
)

// ViewOutcome is the result of a view-recording attempt. The counting path
// never returns an error to its caller: failures degrade to a not-counted
// outcome and callers branch on data.
type ViewOutcome struct {
	Counted bool   `json:"counted"`
	Reason  string `json:"reason"`
}

// Reasons reported in ViewOutcome.
const (
	ReasonCounted          = "counted"
	ReasonDuplicate        = "duplicate"
	ReasonBot              = "bot"
	ReasonThrottled        = "throttled"
	ReasonMissingClient    = "missing-client-info"
	ReasonStoreUnavailable = "store-unavailable"
)

// IEngagementUseCase defines view-counting business logic.
type IEngagementUseCase interface {
	RecordView(ctx context.Context, ref entity.ContentRef, clientIP, userAgent string) ViewOutcome
	GetPendingCount(ctx context.Context, ref entity.ContentRef) int64
	GetTotalCount(ctx context.Context, ref entity.ContentRef) int64
	ListPending(ctx context.Context, contentType entity.ContentType) ([]entity.ViewCountSnapshot, error)
	SetPendingCount(ctx context.Context, ref entity.ContentRef, value int64) error
	ResetPendingCount(ctx context.Context, ref entity.ContentRef) error
	Stats(ctx context.Context) (entity.CounterStats, error)
}

// EngagementUsecase implements the engagement counter over a shared TTL
// key-value store and the durable content repositories.
type EngagementUsecase struct {
	counters contract.ICounterStore
	guard    *CorruptionGuard
	notices  contract.IContentStore
	posts    contract.IContentStore
	limiter  *ViewRateLimiter
	logger   usecasecontract.IAppLogger

	cooldown  time.Duration
	opTimeout time.Duration
}

// NewEngagementUsecase creates a new engagement counter. cooldown is the
// dedup window for repeat views; opTimeout bounds every counter-store
// interaction on the request path.
func NewEngagementUsecase(
	counters contract.ICounterStore,
	guard *CorruptionGuard,
	notices contract.IContentStore,
	posts contract.IContentStore,
	limiter *ViewRateLimiter,
	logger usecasecontract.IAppLogger,
	cooldown time.Duration,
	opTimeout time.Duration,
) *EngagementUsecase {
	return &EngagementUsecase{
		counters:  counters,
		guard:     guard,
		notices:   notices,
		posts:     posts,
		limiter:   limiter,
		logger:    logger,
		cooldown:  cooldown,
		opTimeout: opTimeout,
	}
}

var _ IEngagementUseCase = (*EngagementUsecase)(nil)

// isBot returns true if the User-Agent string matches common bot patterns.
func isBot(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	botSignatures := []string{"bot", "spider", "crawl", "slurp", "curl", "wget", "python-requests", "httpclient", "feedfetcher", "mediapartners-google"}
	for _, sig := range botSignatures {
		if strings.Contains(ua, sig) {
			return true
		}
	}
	return false
}

// opCtx bounds a counter-store interaction so a slow cache cannot stall the
// content-view request.
func (uc *EngagementUsecase) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if uc.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, uc.opTimeout)
}

// RecordView decides whether this view counts and mutates the pending counter.
//
// Ordering is increment first, then marker write. If the process dies between
// the two steps the same visitor can be counted again on retry; that is the
// accepted eventual-consistency trade-off of this design, kept deliberately
// instead of inventing a multi-key transaction the store does not offer.
func (uc *EngagementUsecase) RecordView(ctx context.Context, ref entity.ContentRef, clientIP, userAgent string) ViewOutcome {
	if clientIP == "" {
		return ViewOutcome{Counted: false, Reason: ReasonMissingClient}
	}
	if isBot(userAgent) {
		uc.logger.Infof("bot detected, view not counted for %s, user-agent: %s", ref, userAgent)
		metrics.IncViewThrottled()
		return ViewOutcome{Counted: false, Reason: ReasonBot}
	}
	if uc.limiter != nil && !uc.limiter.Allow(clientIP) {
		uc.logger.Warnf("view velocity exceeded for ip %s on %s", clientIP, ref)
		metrics.IncViewThrottled()
		return ViewOutcome{Counted: false, Reason: ReasonThrottled}
	}

	fingerprint := Fingerprint(clientIP, userAgent)
	markerKey := MarkerKey(ref, fingerprint)

	ctx, cancel := uc.opCtx(ctx)
	defer cancel()

	seen, err := uc.counters.Exists(ctx, markerKey)
	if err != nil {
		uc.logger.Warnf("counter store unreachable checking marker for %s: %v", ref, err)
		metrics.IncCounterSoftFail()
		return ViewOutcome{Counted: false, Reason: ReasonStoreUnavailable}
	}
	if seen {
		metrics.IncViewDuplicate(string(ref.Type))
		return ViewOutcome{Counted: false, Reason: ReasonDuplicate}
	}

	if _, err := uc.guard.SafeIncrement(ctx, CounterKey(ref)); err != nil {
		uc.logger.Warnf("failed to increment pending counter for %s: %v", ref, err)
		metrics.IncCounterSoftFail()
		return ViewOutcome{Counted: false, Reason: ReasonStoreUnavailable}
	}

	// Best effort: a lost marker only risks one extra count from this
	// visitor, so failure is logged, never escalated.
	if err := uc.counters.Set(ctx, markerKey, "1", uc.cooldown); err != nil {
		uc.logger.Warnf("failed to write viewed marker for %s: %v", ref, err)
	}

	metrics.IncViewCounted(string(ref.Type))
	return ViewOutcome{Counted: true, Reason: ReasonCounted}
}

// GetPendingCount returns the delta accumulated since the last drain. Absent,
// unparsable, and unreadable counters all read as 0; corruption is repaired
// on the way.
func (uc *EngagementUsecase) GetPendingCount(ctx context.Context, ref entity.ContentRef) int64 {
	ctx, cancel := uc.opCtx(ctx)
	defer cancel()

	n, err := uc.guard.NormalizeRead(ctx, CounterKey(ref))
	if err != nil {
		uc.logger.Warnf("failed to read pending count for %s: %v", ref, err)
		return 0
	}
	return n
}

// GetTotalCount returns durable count + pending count. A durable-store
// failure is treated as 0 so the endpoint still returns a usable number.
func (uc *EngagementUsecase) GetTotalCount(ctx context.Context, ref entity.ContentRef) int64 {
	durable, err := uc.contentStoreFor(ref.Type).GetViewCount(ctx, ref.ID)
	if err != nil {
		if !errors.Is(err, contract.ErrContentNotFound) {
			uc.logger.Warnf("failed to read durable view count for %s: %v", ref, err)
		}
		durable = 0
	}
	return durable + uc.GetPendingCount(ctx, ref)
}

// ListPending enumerates every pending counter of one content type, sorted by
// content ID. Malformed keys are logged and skipped, never deleted.
func (uc *EngagementUsecase) ListPending(ctx context.Context, contentType entity.ContentType) ([]entity.ViewCountSnapshot, error) {
	keys, err := uc.counters.ScanKeys(ctx, CounterKeyPattern(contentType))
	if err != nil {
		return nil, fmt.Errorf("failed to scan pending counters: %w", err)
	}

	snapshots := make([]entity.ViewCountSnapshot, 0, len(keys))
	for _, key := range keys {
		ref, err := ParseCounterKey(key)
		if err != nil {
			uc.logger.Warnf("skipping unparsable counter key: %v", err)
			continue
		}
		n, err := uc.guard.NormalizeRead(ctx, key)
		if err != nil {
			uc.logger.Warnf("failed to read pending counter %s: %v", key, err)
			continue
		}
		snapshots = append(snapshots, entity.ViewCountSnapshot{
			Type:         ref.Type,
			ID:           ref.ID,
			PendingCount: n,
		})
	}
	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i].ID < snapshots[j].ID })
	return snapshots, nil
}

// SetPendingCount overwrites a pending counter. Administrative use and the
// post-drain reset only.
func (uc *EngagementUsecase) SetPendingCount(ctx context.Context, ref entity.ContentRef, value int64) error {
	if value < 0 {
		return fmt.Errorf("pending count must be non-negative, got %d", value)
	}
	if err := uc.counters.Set(ctx, CounterKey(ref), strconv.FormatInt(value, 10), 0); err != nil {
		return fmt.Errorf("failed to set pending count for %s: %w", ref, err)
	}
	return nil
}

// ResetPendingCount resets a pending counter to 0. The key is kept, not
// deleted, so ABSENT and RESET stay observationally identical.
func (uc *EngagementUsecase) ResetPendingCount(ctx context.Context, ref entity.ContentRef) error {
	return uc.SetPendingCount(ctx, ref, 0)
}

// Stats aggregates the current state of the counter store for operators.
func (uc *EngagementUsecase) Stats(ctx context.Context) (entity.CounterStats, error) {
	var stats entity.CounterStats

	counterKeys, err := uc.counters.ScanKeys(ctx, AllCountersPattern)
	if err != nil {
		return stats, fmt.Errorf("failed to scan counters: %w", err)
	}
	stats.TotalCounterKeys = int64(len(counterKeys))
	for _, key := range counterKeys {
		raw, found, err := uc.counters.Get(ctx, key)
		if err != nil || !found {
			continue
		}
		n, perr := strconv.ParseInt(raw, 10, 64)
		if perr != nil || n < 0 {
			stats.CorruptedKeyCount++
			continue
		}
		stats.TotalPendingSum += n
	}

	markerKeys, err := uc.counters.ScanKeys(ctx, AllMarkersPattern)
	if err != nil {
		return stats, fmt.Errorf("failed to scan markers: %w", err)
	}
	stats.TotalMarkerKeys = int64(len(markerKeys))

	return stats, nil
}

// contentStoreFor picks the durable store of record for a content type.
func (uc *EngagementUsecase) contentStoreFor(t entity.ContentType) contract.IContentStore {
	if t == entity.ContentTypeNotice {
		return uc.notices
	}
	return uc.posts
}
