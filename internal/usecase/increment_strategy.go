package usecase

import (
	"context"
	"errors"
	"strconv"

	"boardpulse/internal/domain/contract"
)

// ErrCorruptValue signals that a counter key holds something that does not
// parse as a non-negative integer. The corruption guard repairs it; strategies
// only report it.
var ErrCorruptValue = errors.New("corrupt counter value")

// IIncrementStrategy increments a pending-counter key and returns the new
// value. The choice between the atomic primitive and the race-prone
// read-modify-write fallback is made at construction time so tests can
// exercise either path deterministically.
type IIncrementStrategy interface {
	Increment(ctx context.Context, key string) (int64, error)
	Name() string
}

// AtomicIncrementStrategy uses the store's atomic increment. When the store
// reports the primitive as unsupported it degrades to read-modify-write for
// that call.
type AtomicIncrementStrategy struct {
	store    contract.ICounterStore
	fallback *ReadModifyWriteStrategy
}

// NewAtomicIncrementStrategy creates the default increment strategy.
func NewAtomicIncrementStrategy(store contract.ICounterStore) *AtomicIncrementStrategy {
	return &AtomicIncrementStrategy{
		store:    store,
		fallback: NewReadModifyWriteStrategy(store),
	}
}

var _ IIncrementStrategy = (*AtomicIncrementStrategy)(nil)

func (s *AtomicIncrementStrategy) Name() string { return "atomic" }

// Increment atomically increments key, creating it at 1 when absent.
func (s *AtomicIncrementStrategy) Increment(ctx context.Context, key string) (int64, error) {
	n, err := s.store.Increment(ctx, key)
	if err != nil {
		if errors.Is(err, contract.ErrIncrementUnsupported) {
			return s.fallback.Increment(ctx, key)
		}
		return 0, err
	}
	return n, nil
}

// ReadModifyWriteStrategy increments by reading the current value and writing
// n+1. Two concurrent callers can both compute n+1 and one increment is lost;
// the cooldown dedup design accepts that trade-off.
type ReadModifyWriteStrategy struct {
	store contract.ICounterStore
}

// NewReadModifyWriteStrategy creates the non-atomic fallback strategy.
func NewReadModifyWriteStrategy(store contract.ICounterStore) *ReadModifyWriteStrategy {
	return &ReadModifyWriteStrategy{store: store}
}

var _ IIncrementStrategy = (*ReadModifyWriteStrategy)(nil)

func (s *ReadModifyWriteStrategy) Name() string { return "read-modify-write" }

// Increment reads the current value and writes n+1. Absent keys are created
// at 1. Unparsable values surface as ErrCorruptValue.
func (s *ReadModifyWriteStrategy) Increment(ctx context.Context, key string) (int64, error) {
	raw, found, err := s.store.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	if !found {
		if err := s.store.Set(ctx, key, "1", 0); err != nil {
			return 0, err
		}
		return 1, nil
	}
	n, perr := strconv.ParseInt(raw, 10, 64)
	if perr != nil || n < 0 {
		return 0, ErrCorruptValue
	}
	if err := s.store.Set(ctx, key, strconv.FormatInt(n+1, 10), 0); err != nil {
		return 0, err
	}
	return n + 1, nil
}
