package dashboard

import (
	"fmt"
	"time"
)

// Unit lengths in seconds. Months are 30-day buckets and years ignore leap days.
const (
	secondsPerYear   int64 = 31536000
	secondsPerMonth  int64 = 2592000
	secondsPerDay    int64 = 86400
	secondsPerHour   int64 = 3600
	secondsPerMinute int64 = 60
)

var timeUnits = []struct {
	seconds int64
	label   string
}{
	{secondsPerYear, "years"},
	{secondsPerMonth, "months"},
	{secondsPerDay, "days"},
	{secondsPerHour, "hours"},
	{secondsPerMinute, "minutes"},
}

// TimeSince renders a coarse "N units ago" label for t relative to now, using
// the largest unit that fits more than once. Future instants read as
// "0 seconds ago".
func TimeSince(t, now time.Time) string {
	elapsed := int64(now.Sub(t) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	for _, u := range timeUnits {
		if elapsed > u.seconds {
			return fmt.Sprintf("%d %s ago", elapsed/u.seconds, u.label)
		}
	}
	return fmt.Sprintf("%d seconds ago", elapsed)
}
