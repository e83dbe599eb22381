package mocks

import (
	"context"
	"errors"
)

// MockReconciler is a mock implementation of the ReconcilerRunner interface.
type MockReconciler struct {
	ShouldFailRepair bool

	MockApplied  int
	MockFailed   int
	MockSwept    int
	MockRepaired int

	DrainCalls int
}

func NewMockReconciler() *MockReconciler {
	return &MockReconciler{MockApplied: 4, MockRepaired: 2}
}

func (m *MockReconciler) DrainOnce(ctx context.Context) (int, int) {
	m.DrainCalls++
	return m.MockApplied, m.MockFailed
}

func (m *MockReconciler) SweepMarkersOnce(ctx context.Context) (int, error) {
	return m.MockSwept, nil
}

func (m *MockReconciler) RepairOnce(ctx context.Context) (int, error) {
	if m.ShouldFailRepair {
		return 0, errors.New("counter store unavailable")
	}
	return m.MockRepaired, nil
}

// MockJanitor is a mock implementation of the CounterJanitor interface.
type MockJanitor struct {
	ShouldFailClear bool

	MockRemoved     int
	ClearedPatterns []string
}

func NewMockJanitor() *MockJanitor {
	return &MockJanitor{MockRemoved: 3}
}

func (m *MockJanitor) ClearAll(ctx context.Context, pattern string) (int, error) {
	if m.ShouldFailClear {
		return 0, errors.New("counter store unavailable")
	}
	m.ClearedPatterns = append(m.ClearedPatterns, pattern)
	return m.MockRemoved, nil
}
