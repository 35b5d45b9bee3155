package kernel

import "time"

// Clock is the single source of "now" for the domain: scheduled-time validation,
// bid timestamps, and assignment timestamps all read it instead of time.Now.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// ClockFunc adapts a function to Clock. The returned time is normalized to UTC.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f().UTC()
}

// FixedClock always returns t, in UTC.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}
