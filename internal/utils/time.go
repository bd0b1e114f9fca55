package util

import (
	"fmt"
	"time"
)

const dateLayout = "Jan 2, 2006"

// TimeAgo renders t relative to now: "just now", "5m ago", "3h ago",
// "2d ago", and a plain date after a week.
func TimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	default:
		return t.Format(dateLayout)
	}
}
