package ui

import (
	"fmt"
	"time"

	internalage "github.com/amonks/agency/internal/age"
)

// TimestampLayout is how task times are shown.
const TimestampLayout = "2006-01-02 15:04"

// FormatTimeAgo returns a compact age string like "2m ago".
func FormatTimeAgo(then time.Time, now time.Time) string {
	duration, ok := internalage.Since(then, now)
	if !ok {
		return "-"
	}
	return FormatDurationShort(duration) + " ago"
}

// FormatDurationShort formats a duration using short units (s/m/h/d).
func FormatDurationShort(duration time.Duration) string {
	if duration < 0 {
		duration = 0
	}

	duration = duration.Truncate(time.Second)
	seconds := int64(duration.Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}

	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh", hours)
	}

	days := hours / 24
	return fmt.Sprintf("%dd", days)
}

// FormatCountdown renders time left before a deadline with second
// precision, e.g. "1h02m03s left" or "5m10s late". It returns "-" when there
// is no deadline.
func FormatCountdown(left time.Duration, ok bool) string {
	if !ok {
		return "-"
	}
	suffix := "left"
	if left < 0 {
		left = -left
		suffix = "late"
	}
	left = left.Truncate(time.Second)

	days := left / (24 * time.Hour)
	left -= days * 24 * time.Hour
	hours := left / time.Hour
	left -= hours * time.Hour
	minutes := left / time.Minute
	left -= minutes * time.Minute
	seconds := left / time.Second

	switch {
	case days > 0:
		return fmt.Sprintf("%dd%02dh %s", days, hours, suffix)
	case hours > 0:
		return fmt.Sprintf("%dh%02dm%02ds %s", hours, minutes, seconds, suffix)
	default:
		return fmt.Sprintf("%dm%02ds %s", minutes, seconds, suffix)
	}
}

// FormatTime renders t in the local zone, or "-" for the zero time.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(time.Local).Format(TimestampLayout)
}
