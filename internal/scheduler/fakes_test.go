package scheduler

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"boardpulse/internal/domain/contract"
)

// fakeCounterStore mirrors the shared TTL key-value store in memory, with a
// manual clock so TTL edge cases can be staged directly.
type fakeCounterStore struct {
	mu     sync.Mutex
	data   map[string]string
	expiry map[string]time.Time
	now    time.Time

	FailScan bool

	// EnforceTTL makes expired keys behave as absent. Switch it off to model
	// a backing store that keeps expired entries around.
	EnforceTTL bool
}

var _ contract.ICounterStore = (*fakeCounterStore)(nil)

func newFakeCounterStore() *fakeCounterStore {
	return &fakeCounterStore{
		data:       make(map[string]string),
		expiry:     make(map[string]time.Time),
		now:        time.Now(),
		EnforceTTL: true,
	}
}

func (s *fakeCounterStore) put(key, value string) {
	s.mu.Lock()
	s.data[key] = value
	delete(s.expiry, key)
	s.mu.Unlock()
}

func (s *fakeCounterStore) putWithTTL(key, value string, ttl time.Duration) {
	s.mu.Lock()
	s.data[key] = value
	s.expiry[key] = s.now.Add(ttl)
	s.mu.Unlock()
}

func (s *fakeCounterStore) value(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key]
}

func (s *fakeCounterStore) expired(key string) bool {
	exp, ok := s.expiry[key]
	return ok && !s.now.Before(exp)
}

func (s *fakeCounterStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	val, ok := s.data[key]
	if !ok || (s.EnforceTTL && s.expired(key)) {
		return "", false, nil
	}
	return val, true, nil
}

func (s *fakeCounterStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	if ttl > 0 {
		s.expiry[key] = s.now.Add(ttl)
	} else {
		delete(s.expiry, key)
	}
	return nil
}

func (s *fakeCounterStore) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	if _, ok := s.data[key]; ok && !(s.EnforceTTL && s.expired(key)) {
		s.mu.Unlock()
		return false, nil
	}
	s.mu.Unlock()
	return true, s.Set(ctx, key, value, ttl)
}

func (s *fakeCounterStore) Increment(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.data[key]
	if !ok || (s.EnforceTTL && s.expired(key)) {
		s.data[key] = "1"
		delete(s.expiry, key)
		return 1, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("value is not an integer")
	}
	s.data[key] = strconv.FormatInt(n+1, 10)
	return n + 1, nil
}

func (s *fakeCounterStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	delete(s.expiry, key)
	return nil
}

func (s *fakeCounterStore) Exists(ctx context.Context, key string) (bool, error) {
	_, found, err := s.Get(ctx, key)
	return found, err
}

func (s *fakeCounterStore) ScanKeys(ctx context.Context, pattern string) ([]string, error) {
	if s.FailScan {
		return nil, errors.New("fake store down")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var keys []string
	for key := range s.data {
		if s.EnforceTTL && s.expired(key) {
			continue
		}
		if ok, _ := path.Match(pattern, key); ok {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (s *fakeCounterStore) TTLOf(ctx context.Context, key string) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok || (s.EnforceTTL && s.expired(key)) {
		return contract.TTLMissing, nil
	}
	exp, ok := s.expiry[key]
	if !ok {
		return contract.TTLNoExpiry, nil
	}
	return exp.Sub(s.now), nil
}

// fakeContentStore records durable view-count increments.
type fakeContentStore struct {
	mu sync.Mutex

	ShouldFailIncrement bool
	NotFound            bool

	Counts     map[int64]int64
	Increments []incrementCall
}

type incrementCall struct {
	ContentID int64
	Delta     int64
}

var _ contract.IContentStore = (*fakeContentStore)(nil)

func newFakeContentStore() *fakeContentStore {
	return &fakeContentStore{Counts: make(map[int64]int64)}
}

func (s *fakeContentStore) IncrementViewCountBy(ctx context.Context, contentID int64, delta int64) error {
	if s.ShouldFailIncrement {
		return errors.New("durable store down")
	}
	if s.NotFound {
		return contract.ErrContentNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Counts[contentID] += delta
	s.Increments = append(s.Increments, incrementCall{ContentID: contentID, Delta: delta})
	return nil
}

func (s *fakeContentStore) GetViewCount(ctx context.Context, contentID int64) (int64, error) {
	if s.NotFound {
		return 0, contract.ErrContentNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Counts[contentID], nil
}

// stubUUID hands out a fixed ownership token.
type stubUUID struct{ id string }

var _ contract.IUUIDGenerator = (*stubUUID)(nil)

func (u *stubUUID) NewUUID() string { return u.id }

// testLogger captures log lines for assertions.
type testLogger struct {
	mu    sync.Mutex
	Lines []string
}

func newTestLogger() *testLogger { return &testLogger{} }

func (l *testLogger) logf(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Lines = append(l.Lines, level+" "+fmt.Sprintf(format, args...))
}

func (l *testLogger) Debugf(format string, args ...interface{}) { l.logf("DEBUG", format, args...) }
func (l *testLogger) Infof(format string, args ...interface{})  { l.logf("INFO", format, args...) }
func (l *testLogger) Warnf(format string, args ...interface{})  { l.logf("WARN", format, args...) }
func (l *testLogger) Errorf(format string, args ...interface{}) { l.logf("ERROR", format, args...) }
func (l *testLogger) Fatalf(format string, args ...interface{}) { l.logf("FATAL", format, args...) }

func (l *testLogger) contains(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.Lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}
