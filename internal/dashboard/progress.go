package dashboard

import (
	"alcyxob/gym-admin/internal/domain"
	"math"
	"sort"
	"time"
)

// ProgressSummary condenses a member's workout history for the profile page.
type ProgressSummary struct {
	WorkoutsThisMonth int
	TotalHours        float64 // Rounded to one decimal
	Logs              []domain.WorkoutLog
}

// Progress summarizes logs as of now. "This month" means since the same
// calendar day one month earlier. Logs come back newest first; the user's
// own slice is left untouched.
func Progress(user *domain.User, now time.Time) ProgressSummary {
	if user == nil || len(user.Progress) == 0 {
		return ProgressSummary{Logs: []domain.WorkoutLog{}}
	}

	monthAgo := now.AddDate(0, -1, 0)
	logs := append([]domain.WorkoutLog(nil), user.Progress...)
	var recent, minutes int
	for i := range logs {
		if !logs[i].Date.Before(monthAgo) {
			recent++
		}
		minutes += logs[i].DurationMinutes
	}
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Date.After(logs[j].Date)
	})

	return ProgressSummary{
		WorkoutsThisMonth: recent,
		TotalHours:        math.Round(float64(minutes)/60*10) / 10,
		Logs:              logs,
	}
}
