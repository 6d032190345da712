package utils

import "time"

// Clock provides the current instant. Everything that depends on "today" takes a Clock so tests can pin it.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (s SystemClock) Now() time.Time {
	return time.Now()
}

type MockClock struct {
	FixedNow time.Time
}

func NewMockClock(now time.Time) *MockClock {
	return &MockClock{FixedNow: now}
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}

// AdvanceDays moves the mocked instant by whole calendar days.
func (m *MockClock) AdvanceDays(days int) {
	m.FixedNow = m.FixedNow.AddDate(0, 0, days)
}
