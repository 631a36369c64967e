package engine

import (
	"sync"
	"time"
)

// Clock supplies timestamps to animations and event stamping
type Clock interface {
	Now() time.Time
}

// TimeProvider is the wall clock; readings carry the monotonic component
type TimeProvider struct{}

// NewTimeProvider returns the wall clock
func NewTimeProvider() *TimeProvider {
	return &TimeProvider{}
}

// Now implements Clock
func (*TimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider is a manually advanced clock for deterministic frame tests
type MockTimeProvider struct {
	mu  sync.Mutex
	now time.Time
}

// NewMockTimeProvider starts the mock clock at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{now: start}
}

// Now implements Clock
func (m *MockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// SetTime jumps to t, backwards included
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Advance moves the clock forward by d and returns the new reading
func (m *MockTimeProvider) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
	return m.now
}
