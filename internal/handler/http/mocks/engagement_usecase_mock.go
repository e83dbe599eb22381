package mocks

import (
	"context"
	"errors"

	"boardpulse/internal/domain/entity"
	"boardpulse/internal/usecase"
)

// MockEngagementUsecase is a mock implementation of the engagement usecase.
type MockEngagementUsecase struct {
	// Control mock behavior
	ShouldFailListPending bool
	ShouldFailSetCounter  bool
	ShouldFailStats       bool

	// Return values
	MockOutcome   usecase.ViewOutcome
	MockPending   int64
	MockTotal     int64
	MockSnapshots []entity.ViewCountSnapshot
	MockStats     entity.CounterStats

	// Recorded calls
	RecordedRefs []entity.ContentRef
	SetValues    map[string]int64
}

// Ensure MockEngagementUsecase satisfies the interface used by the handlers.
var _ usecase.IEngagementUseCase = (*MockEngagementUsecase)(nil)

func NewMockEngagementUsecase() *MockEngagementUsecase {
	return &MockEngagementUsecase{
		MockOutcome: usecase.ViewOutcome{Counted: true, Reason: usecase.ReasonCounted},
		MockPending: 3,
		MockTotal:   45,
		MockSnapshots: []entity.ViewCountSnapshot{
			{Type: entity.ContentTypeNotice, ID: 1, PendingCount: 2},
			{Type: entity.ContentTypeNotice, ID: 42, PendingCount: 7},
		},
		MockStats: entity.CounterStats{
			TotalCounterKeys:  2,
			TotalMarkerKeys:   5,
			TotalPendingSum:   9,
			CorruptedKeyCount: 1,
		},
		SetValues: make(map[string]int64),
	}
}

func (m *MockEngagementUsecase) RecordView(ctx context.Context, ref entity.ContentRef, clientIP, userAgent string) usecase.ViewOutcome {
	m.RecordedRefs = append(m.RecordedRefs, ref)
	return m.MockOutcome
}

func (m *MockEngagementUsecase) GetPendingCount(ctx context.Context, ref entity.ContentRef) int64 {
	return m.MockPending
}

func (m *MockEngagementUsecase) GetTotalCount(ctx context.Context, ref entity.ContentRef) int64 {
	return m.MockTotal
}

func (m *MockEngagementUsecase) ListPending(ctx context.Context, contentType entity.ContentType) ([]entity.ViewCountSnapshot, error) {
	if m.ShouldFailListPending {
		return nil, errors.New("counter store unavailable")
	}
	return m.MockSnapshots, nil
}

func (m *MockEngagementUsecase) SetPendingCount(ctx context.Context, ref entity.ContentRef, value int64) error {
	if m.ShouldFailSetCounter {
		return errors.New("counter store unavailable")
	}
	m.SetValues[ref.String()] = value
	return nil
}

func (m *MockEngagementUsecase) ResetPendingCount(ctx context.Context, ref entity.ContentRef) error {
	return m.SetPendingCount(ctx, ref, 0)
}

func (m *MockEngagementUsecase) Stats(ctx context.Context) (entity.CounterStats, error) {
	if m.ShouldFailStats {
		return entity.CounterStats{}, errors.New("counter store unavailable")
	}
	return m.MockStats, nil
}
