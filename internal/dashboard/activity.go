package dashboard

import (
	"alcyxob/gym-admin/internal/domain"
	"sort"
	"time"
)

type ActivityKind string

const (
	ActivityNewUser     ActivityKind = "new_user"
	ActivityNewContent  ActivityKind = "new_content"
	ActivityPlanUpgrade ActivityKind = "upgraded_plan"
)

// demoUpgradePlan is the plan name shown on the synthetic upgrade entry.
const demoUpgradePlan = "Premium"

// Activity is one entry in the recent-activity feed.
type Activity struct {
	Kind    ActivityKind
	RefID   string // User or content id; empty for synthetic entries
	Subject string // User name or content title
	Detail  string // Content type or upgraded plan name
	Date    time.Time
}

// RecentActivity merges member sign-ups and content uploads (plus any extra
// entries), orders them newest first and keeps the first limit. Entries with
// equal timestamps keep their input order: users, then content, then extra.
func RecentActivity(users []domain.User, content []domain.FitnessContent, limit int, extra ...Activity) []Activity {
	feed := make([]Activity, 0, len(users)+len(content)+len(extra))
	for i := range users {
		feed = append(feed, Activity{
			Kind:    ActivityNewUser,
			RefID:   users[i].ID,
			Subject: users[i].Name,
			Date:    users[i].JoinDate,
		})
	}
	for i := range content {
		feed = append(feed, Activity{
			Kind:    ActivityNewContent,
			RefID:   content[i].ID,
			Subject: content[i].Title,
			Detail:  string(content[i].Type),
			Date:    content[i].UploadDate,
		})
	}
	feed = append(feed, extra...)

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Date.After(feed[j].Date)
	})

	if limit >= 0 && len(feed) > limit {
		feed = feed[:limit]
	}
	return feed
}

// DemoUpgradeActivity fabricates a "plan upgrade" entry for the first user,
// dated 24 hours before now. It exists for demo data only.
func DemoUpgradeActivity(users []domain.User, now time.Time) (Activity, bool) {
	if len(users) == 0 {
		return Activity{}, false
	}
	return Activity{
		Kind:    ActivityPlanUpgrade,
		Subject: users[0].Name,
		Detail:  demoUpgradePlan,
		Date:    now.Add(-24 * time.Hour),
	}, true
}
