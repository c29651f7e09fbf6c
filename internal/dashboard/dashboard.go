// Package dashboard derives the admin overview from point-in-time snapshots
// of the member, plan, content and meeting collections. Everything here is a
// pure function of its inputs: no I/O, no mutation of the snapshot.
package dashboard

import (
	"alcyxob/gym-admin/internal/domain"
	"time"
)

const (
	DefaultActivityLimit = 5
	DefaultUpcomingLimit = 3
)

// Snapshot is a read-only copy of the collections the overview is built from.
type Snapshot struct {
	Users    []domain.User
	Plans    []domain.SubscriptionPlan
	Content  []domain.FitnessContent
	Meetings []domain.ZoomMeeting
}

// Options tune the overview. Zero limits fall back to the defaults.
type Options struct {
	ActivityLimit int
	UpcomingLimit int
	// DemoActivity adds a synthetic "plan upgrade" entry for the first user.
	// Only meant for demo data sets.
	DemoActivity bool
}

// Overview is the dashboard view-model.
type Overview struct {
	TotalUsers          int
	ActiveSubscriptions int
	MonthlyRevenue      float64
	RecentActivity      []Activity
	UpcomingMeetings    []domain.ZoomMeeting // Widget slice, at most UpcomingLimit
	ScheduledMeetings   []domain.ZoomMeeting // Every upcoming meeting, ascending
}

// Build computes the full overview as of now.
func Build(s Snapshot, now time.Time, opts Options) Overview {
	activityLimit := opts.ActivityLimit
	if activityLimit <= 0 {
		activityLimit = DefaultActivityLimit
	}
	upcomingLimit := opts.UpcomingLimit
	if upcomingLimit <= 0 {
		upcomingLimit = DefaultUpcomingLimit
	}

	var extra []Activity
	if opts.DemoActivity {
		if a, ok := DemoUpgradeActivity(s.Users, now); ok {
			extra = append(extra, a)
		}
	}

	scheduled := UpcomingMeetings(s.Meetings, now)
	widget := scheduled
	if len(widget) > upcomingLimit {
		widget = widget[:upcomingLimit]
	}

	return Overview{
		TotalUsers:          TotalUsers(s.Users),
		ActiveSubscriptions: ActiveSubscriptions(s.Users),
		MonthlyRevenue:      MonthlyRevenue(s.Users, s.Plans),
		RecentActivity:      RecentActivity(s.Users, s.Content, activityLimit, extra...),
		UpcomingMeetings:    widget,
		ScheduledMeetings:   scheduled,
	}
}

// TotalUsers counts members regardless of subscription status.
func TotalUsers(users []domain.User) int {
	return len(users)
}

// ActiveSubscriptions counts members whose subscription is Active.
func ActiveSubscriptions(users []domain.User) int {
	n := 0
	for i := range users {
		if users[i].IsActive() {
			n++
		}
	}
	return n
}

// MonthlyRevenue estimates recurring monthly income from active members.
// Yearly plans contribute price/12. A member whose plan name does not match
// an existing plan exactly contributes nothing. With duplicate plan names the
// first one in the snapshot wins.
func MonthlyRevenue(users []domain.User, plans []domain.SubscriptionPlan) float64 {
	byName := make(map[string]*domain.SubscriptionPlan, len(plans))
	for i := range plans {
		if _, seen := byName[plans[i].Name]; !seen {
			byName[plans[i].Name] = &plans[i]
		}
	}

	var total float64
	for i := range users {
		if !users[i].IsActive() {
			continue
		}
		plan, ok := byName[users[i].SubscriptionPlan]
		if !ok {
			continue
		}
		if price := plan.MonthlyPrice(); price > 0 {
			total += price
		}
	}
	return total
}
