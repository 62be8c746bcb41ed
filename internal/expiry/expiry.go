// Package expiry converts expiry durations in days to absolute timestamps and
// classifies timestamps as expired or still live.
package expiry

import (
	"math"
	"time"
)

const hoursPerDay = 24

// Date returns the absolute expiry timestamp for a duration in days, or nil
// when days is zero or negative (the link never expires).
func Date(days int) *time.Time {
	return DateFrom(time.Now(), days)
}

// DateFrom is Date anchored at an explicit instant. The result keeps the same
// wall-clock time-of-day, days whole days later.
func DateFrom(now time.Time, days int) *time.Time {
	if days <= 0 {
		return nil
	}

	t := now.AddDate(0, 0, days)

	return &t
}

// IsExpired reports whether expiresAt is at or before the current instant.
// A nil expiry never expires.
func IsExpired(expiresAt *time.Time) bool {
	return IsExpiredAt(time.Now(), expiresAt)
}

// IsExpiredAt is IsExpired evaluated at an explicit instant.
func IsExpiredAt(now time.Time, expiresAt *time.Time) bool {
	if expiresAt == nil {
		return false
	}

	return !expiresAt.After(now)
}

// DaysLeft returns the whole days remaining until expiresAt, rounded up and
// floored at zero. Nil in, nil out.
func DaysLeft(expiresAt *time.Time) *int {
	return DaysLeftAt(time.Now(), expiresAt)
}

// DaysLeftAt is DaysLeft evaluated at an explicit instant.
func DaysLeftAt(now time.Time, expiresAt *time.Time) *int {
	if expiresAt == nil {
		return nil
	}

	days := int(math.Ceil(expiresAt.Sub(now).Hours() / hoursPerDay))
	if days < 0 {
		days = 0
	}

	return &days
}

// FormatDateTime renders a timestamp for display, with an em dash placeholder
// for absent values.
func FormatDateTime(t *time.Time) string {
	if t == nil {
		return "—"
	}

	return t.Format("Jan 2, 2006, 3:04 PM")
}
