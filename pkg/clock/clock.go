package clock

import "time"

// Clock supplies wall-clock timestamps for event envelopes and derived
// state. Abstracting it keeps notification timestamps deterministic
// under test.
type Clock interface {
	// Now returns the current wall-clock time
	Now() time.Time

	// Since returns the duration elapsed since the given time
	Since(t time.Time) time.Duration
}

// SystemClock reads the operating system clock.
type SystemClock struct{}

// NewSystemClock creates a SystemClock.
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

// Now returns the current system time.
func (s *SystemClock) Now() time.Time {
	return time.Now()
}

// Since returns the duration elapsed since t on the system clock.
func (s *SystemClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}
