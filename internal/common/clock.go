package common

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// MockClock returns a fixed instant until it is moved.
type MockClock struct {
	FixedNow time.Time
}

// Now returns the fixed instant.
func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

// SetNow moves the clock to now.
func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}

// Advance moves the clock forward by d.
func (m *MockClock) Advance(d time.Duration) {
	m.FixedNow = m.FixedNow.Add(d)
}
