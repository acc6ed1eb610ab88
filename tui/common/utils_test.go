package common

import (
	"testing"
	"time"
)

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if got := RelativeTime(now.Add(-2*time.Hour), now); got != "2 hours ago" {
		t.Fatalf("unexpected relative time: %q", got)
	}
	if got := RelativeTime(now.Add(-10*time.Second), now); got != "just now" {
		t.Fatalf("expected just now, got %q", got)
	}
	if got := RelativeTime(time.Time{}, now); got != "" {
		t.Fatalf("zero time should render empty, got %q", got)
	}
}

func TestFormatCount(t *testing.T) {
	if got := FormatCount(1234); got != "1,234" {
		t.Fatalf("unexpected count: %q", got)
	}
	if got := FormatCount(7); got != "7" {
		t.Fatalf("unexpected count: %q", got)
	}
}
