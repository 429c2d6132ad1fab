package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// The Controller uses it as the reference date for validation and age calculation.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

