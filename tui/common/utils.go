package common

import (
	"time"

	"github.com/dustin/go-humanize"
)

// RelativeTime formats t relative to now, e.g. "2 hours ago". The zero time
// renders as an empty string.
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	if now.Sub(t) < time.Minute && now.Sub(t) > -time.Minute {
		return "just now"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// FormatCount renders counts with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}
