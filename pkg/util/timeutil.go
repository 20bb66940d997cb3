package util

import "time"

// Clock returns the current time. Services hold one so tests can pin it.
type Clock func() time.Time

// NowUTC is the production clock.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// Fixed returns a clock frozen at t.
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}
