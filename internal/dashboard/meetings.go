package dashboard

import (
	"alcyxob/gym-admin/internal/domain"
	"sort"
	"time"
)

// UpcomingMeetings returns the meetings starting strictly after now, earliest
// first. The input slice is not modified.
func UpcomingMeetings(meetings []domain.ZoomMeeting, now time.Time) []domain.ZoomMeeting {
	upcoming := make([]domain.ZoomMeeting, 0, len(meetings))
	for i := range meetings {
		if meetings[i].StartTime.After(now) {
			upcoming = append(upcoming, meetings[i])
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].StartTime.Before(upcoming[j].StartTime)
	})
	return upcoming
}
