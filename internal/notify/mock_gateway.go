// Package notify provides mock implementations for testing.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yctseng/remindkit/internal/models"
)

// MockGateway is an in-memory Gateway that records every call. Other
// packages' tests reuse it, so it lives outside the _test files.
type MockGateway struct {
	mu            sync.Mutex
	scheduled     []ScheduledNotification
	cancelCalls   [][]string
	failItems     map[string]bool
	scheduleErr   error
	scheduleDelay time.Duration
	inFlight      int
	maxInFlight   int
}

// NewMockGateway creates an empty MockGateway.
func NewMockGateway() *MockGateway {
	return &MockGateway{failItems: make(map[string]bool)}
}

// SetScheduleError makes every Schedule call fail with err.
func (m *MockGateway) SetScheduleError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scheduleErr = err
}

// FailFor makes Schedule fail only for the given item id.
func (m *MockGateway) FailFor(itemID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failItems[itemID] = true
}

// SetScheduleDelay makes each Schedule call hold its slot for d, so tests can
// observe concurrency.
func (m *MockGateway) SetScheduleDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scheduleDelay = d
}

// Schedule records the notification, tracking how many calls are in flight.
func (m *MockGateway) Schedule(ctx context.Context, itemID, title, body string, at time.Time) error {
	m.mu.Lock()
	m.inFlight++
	if m.inFlight > m.maxInFlight {
		m.maxInFlight = m.inFlight
	}
	delay := m.scheduleDelay
	failed := m.scheduleErr != nil || m.failItems[itemID]
	err := m.scheduleErr
	m.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.inFlight--

	if failed {
		if err == nil {
			err = fmt.Errorf("mock schedule failed for %s", itemID)
		}
		return err
	}

	m.scheduled = append(m.scheduled, ScheduledNotification{
		ItemID: itemID,
		Title:  title,
		Body:   body,
		At:     at,
	})
	return nil
}

// Cancel records the cancelled id set.
func (m *MockGateway) Cancel(ctx context.Context, itemIDs []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, len(itemIDs))
	copy(ids, itemIDs)
	m.cancelCalls = append(m.cancelCalls, ids)
}

// Scheduled returns a copy of all successfully scheduled notifications.
func (m *MockGateway) Scheduled() []ScheduledNotification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ScheduledNotification, len(m.scheduled))
	copy(out, m.scheduled)
	return out
}

// ScheduleCount returns the number of successful Schedule calls.
func (m *MockGateway) ScheduleCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.scheduled)
}

// CancelCalls returns every Cancel invocation's id set.
func (m *MockGateway) CancelCalls() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]string, len(m.cancelCalls))
	copy(out, m.cancelCalls)
	return out
}

// MaxInFlight returns the highest number of simultaneous Schedule calls seen.
func (m *MockGateway) MaxInFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxInFlight
}

// MockConfigSource is an in-memory ConfigSource.
type MockConfigSource struct {
	mu       sync.Mutex
	config   models.NotificationConfig
	fetchErr error
	fetches  int
}

// NewMockConfigSource creates a MockConfigSource returning cfg.
func NewMockConfigSource(cfg models.NotificationConfig) *MockConfigSource {
	return &MockConfigSource{config: cfg}
}

// SetFetchError makes Fetch fail with err.
func (m *MockConfigSource) SetFetchError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchErr = err
}

// Fetch returns the configured value or the configured error.
func (m *MockConfigSource) Fetch(ctx context.Context) (models.NotificationConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetches++
	if m.fetchErr != nil {
		return models.NotificationConfig{}, m.fetchErr
	}
	return m.config, nil
}

// FetchCount returns how many times Fetch was called.
func (m *MockConfigSource) FetchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetches
}
