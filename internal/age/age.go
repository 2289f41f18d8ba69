// Package age computes the durations task views display: how long work has
// been running and how much time is left before a deadline.
package age

import "time"

// Elapsed computes how long work ran. Active work is measured against now;
// finished work against its finish time. Negative spans clamp to zero.
func Elapsed(startedAt time.Time, finishedAt time.Time, active bool, now time.Time) (time.Duration, bool) {
	if startedAt.IsZero() {
		return 0, false
	}
	end := now
	if !active {
		if finishedAt.IsZero() {
			return 0, false
		}
		end = finishedAt
	}
	return clamp(end.Sub(startedAt)), true
}

// Since returns the age of a timestamp, clamped at zero.
func Since(then time.Time, now time.Time) (time.Duration, bool) {
	if then.IsZero() {
		return 0, false
	}
	return clamp(now.Sub(then)), true
}

// Until returns the signed time left before deadline. It is negative once the
// deadline has passed.
func Until(deadline time.Time, now time.Time) (time.Duration, bool) {
	if deadline.IsZero() {
		return 0, false
	}
	return deadline.Sub(now), true
}

func clamp(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
