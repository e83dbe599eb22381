package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"boardpulse/internal/domain/entity"
)

const (
	testIP = "203.0.113.7"
	testUA = "Mozilla/5.0 (X11; Linux x86_64)"
)

type engagementFixture struct {
	uc      *EngagementUsecase
	store   *fakeCounterStore
	notices *fakeContentStore
	posts   *fakeContentStore
	logger  *testLogger
}

func newEngagementFixture(limiter *ViewRateLimiter) *engagementFixture {
	store := newFakeCounterStore()
	logger := newTestLogger()
	guard := NewCorruptionGuard(store, NewAtomicIncrementStrategy(store), logger)
	notices := newFakeContentStore()
	posts := newFakeContentStore()
	uc := NewEngagementUsecase(store, guard, notices, posts, limiter, logger, time.Minute, 0)
	return &engagementFixture{uc: uc, store: store, notices: notices, posts: posts, logger: logger}
}

func noticeRef(id int64) entity.ContentRef {
	return entity.ContentRef{Type: entity.ContentTypeNotice, ID: id}
}

func TestRecordViewDedupWithinCooldown(t *testing.T) {
	f := newEngagementFixture(nil)
	ref := noticeRef(42)

	// Three views from the same visitor inside the window count once.
	out := f.uc.RecordView(context.Background(), ref, testIP, testUA)
	assert.True(t, out.Counted)
	assert.Equal(t, ReasonCounted, out.Reason)

	for i := 0; i < 2; i++ {
		out = f.uc.RecordView(context.Background(), ref, testIP, testUA)
		assert.False(t, out.Counted)
		assert.Equal(t, ReasonDuplicate, out.Reason)
	}
	assert.Equal(t, int64(1), f.uc.GetPendingCount(context.Background(), ref))
}

func TestRecordViewCountsAgainAfterCooldown(t *testing.T) {
	f := newEngagementFixture(nil)
	ref := noticeRef(42)

	f.uc.RecordView(context.Background(), ref, testIP, testUA)
	f.store.advance(61 * time.Second)

	out := f.uc.RecordView(context.Background(), ref, testIP, testUA)
	assert.True(t, out.Counted)
	assert.Equal(t, int64(2), f.uc.GetPendingCount(context.Background(), ref))
}

func TestRecordViewDistinctVisitorsEachCount(t *testing.T) {
	f := newEngagementFixture(nil)
	ref := noticeRef(42)

	assert.True(t, f.uc.RecordView(context.Background(), ref, "203.0.113.1", testUA).Counted)
	assert.True(t, f.uc.RecordView(context.Background(), ref, "203.0.113.2", testUA).Counted)
	assert.True(t, f.uc.RecordView(context.Background(), ref, "203.0.113.1", "Other/1.0").Counted)
	assert.Equal(t, int64(3), f.uc.GetPendingCount(context.Background(), ref))
}

func TestRecordViewIgnoresBots(t *testing.T) {
	f := newEngagementFixture(nil)
	ref := noticeRef(42)

	out := f.uc.RecordView(context.Background(), ref, testIP, "Googlebot/2.1")
	assert.False(t, out.Counted)
	assert.Equal(t, ReasonBot, out.Reason)
	assert.Equal(t, int64(0), f.uc.GetPendingCount(context.Background(), ref))
}

func TestRecordViewRequiresClientIP(t *testing.T) {
	f := newEngagementFixture(nil)
	out := f.uc.RecordView(context.Background(), noticeRef(42), "", testUA)
	assert.False(t, out.Counted)
	assert.Equal(t, ReasonMissingClient, out.Reason)
}

func TestRecordViewThrottledByVelocityLimiter(t *testing.T) {
	limiter := NewViewRateLimiter(0.001, 1)
	f := newEngagementFixture(limiter)

	// Distinct content so dedup cannot mask the limiter.
	assert.True(t, f.uc.RecordView(context.Background(), noticeRef(1), testIP, testUA).Counted)
	out := f.uc.RecordView(context.Background(), noticeRef(2), testIP, testUA)
	assert.False(t, out.Counted)
	assert.Equal(t, ReasonThrottled, out.Reason)
}

func TestRecordViewSoftFailsWhenStoreDown(t *testing.T) {
	f := newEngagementFixture(nil)
	f.store.FailExists = true

	out := f.uc.RecordView(context.Background(), noticeRef(42), testIP, testUA)
	assert.False(t, out.Counted)
	assert.Equal(t, ReasonStoreUnavailable, out.Reason)
}

func TestRecordViewCountsEvenWhenMarkerWriteFails(t *testing.T) {
	f := newEngagementFixture(nil)
	f.store.FailSetPrefix = "viewed:"
	ref := noticeRef(42)

	out := f.uc.RecordView(context.Background(), ref, testIP, testUA)
	assert.True(t, out.Counted)
	assert.Equal(t, int64(1), f.uc.GetPendingCount(context.Background(), ref))
	assert.True(t, f.logger.contains("failed to write viewed marker"))
}

func TestGetTotalCountCombinesDurableAndPending(t *testing.T) {
	f := newEngagementFixture(nil)
	ref := noticeRef(42)
	f.notices.Counts[42] = 40
	f.store.put(CounterKey(ref), "5")

	assert.Equal(t, int64(45), f.uc.GetTotalCount(context.Background(), ref))
}

func TestGetTotalCountTreatsDurableFailureAsZero(t *testing.T) {
	f := newEngagementFixture(nil)
	ref := noticeRef(42)
	f.notices.ShouldFailGet = true
	f.store.put(CounterKey(ref), "5")

	assert.Equal(t, int64(5), f.uc.GetTotalCount(context.Background(), ref))
}

func TestGetPendingCountNormalizesCorruption(t *testing.T) {
	f := newEngagementFixture(nil)
	ref := noticeRef(42)
	f.store.put(CounterKey(ref), "NaN")

	assert.Equal(t, int64(0), f.uc.GetPendingCount(context.Background(), ref))
}

func TestListPendingSkipsMalformedKeys(t *testing.T) {
	f := newEngagementFixture(nil)
	f.store.put("viewcount:notice:2", "4")
	f.store.put("viewcount:notice:1", "2")
	f.store.put("viewcount:notice:bogus", "9")
	f.store.put("viewcount:community:3", "7")

	snapshots, err := f.uc.ListPending(context.Background(), entity.ContentTypeNotice)
	assert.NoError(t, err)
	assert.Equal(t, []entity.ViewCountSnapshot{
		{Type: entity.ContentTypeNotice, ID: 1, PendingCount: 2},
		{Type: entity.ContentTypeNotice, ID: 2, PendingCount: 4},
	}, snapshots)
}

func TestSetAndResetPendingCount(t *testing.T) {
	f := newEngagementFixture(nil)
	ref := entity.ContentRef{Type: entity.ContentTypeCommunity, ID: 10}

	assert.NoError(t, f.uc.SetPendingCount(context.Background(), ref, 5))
	assert.Equal(t, int64(5), f.uc.GetPendingCount(context.Background(), ref))

	assert.NoError(t, f.uc.ResetPendingCount(context.Background(), ref))
	assert.Equal(t, int64(0), f.uc.GetPendingCount(context.Background(), ref))

	// The key survives a reset; only the value changes.
	found, _ := f.store.Exists(context.Background(), CounterKey(ref))
	assert.True(t, found)

	assert.Error(t, f.uc.SetPendingCount(context.Background(), ref, -1))
}

func TestStats(t *testing.T) {
	f := newEngagementFixture(nil)
	f.store.put("viewcount:notice:1", "3")
	f.store.put("viewcount:notice:2", "NaN")
	f.store.put("viewcount:community:3", "4")
	f.store.put("viewed:notice:1:abc", "1")
	f.store.put("viewed:notice:1:def", "1")

	stats, err := f.uc.Stats(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalCounterKeys)
	assert.Equal(t, int64(2), stats.TotalMarkerKeys)
	assert.Equal(t, int64(7), stats.TotalPendingSum)
	assert.Equal(t, int64(1), stats.CorruptedKeyCount)
}
