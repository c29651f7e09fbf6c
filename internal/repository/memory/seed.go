package memory

import (
	"alcyxob/gym-admin/internal/domain"
	"alcyxob/gym-admin/internal/repository"
	"context"
	"fmt"
	"time"
)

// SeedDemoData fills repos with a small demo gym: four plans, four members,
// a content library, three upcoming meetings and three payment requests, one
// in each state. Relative timestamps are computed from now.
func SeedDemoData(ctx context.Context, repos *repository.Store, now time.Time) error {
	day := 24 * time.Hour
	mustDate := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}

	plans := []domain.SubscriptionPlan{
		{Name: "Free Trial", Price: 0, Duration: domain.DurationMonthly, Features: []string{"Access to basic workouts", "Community access"}},
		{Name: "Basic", Price: 19.99, Duration: domain.DurationMonthly, Features: []string{"All Free features", "Access to all workouts", "Personalized plans"}},
		{Name: "Premium", Price: 49.99, Duration: domain.DurationMonthly, Features: []string{"All Basic features", "1-on-1 coaching", "Live classes via Zoom"}},
		{Name: "Premium Yearly", Price: 499.99, Duration: domain.DurationYearly, Features: []string{"All Premium features", "2 months free"}},
	}
	for i := range plans {
		if _, err := repos.Plans.Create(ctx, &plans[i]); err != nil {
			return fmt.Errorf("seed plan %q: %w", plans[i].Name, err)
		}
	}

	users := []domain.User{
		{Name: "John Doe", Email: "john.doe@example.com", Mobile: "123-456-7890", JoinDate: mustDate("2023-01-15"), SubscriptionPlan: "Premium", SubscriptionStatus: domain.SubscriptionActive,
			Progress: []domain.WorkoutLog{
				{ID: newID(), WorkoutName: "Full Body HIIT", Date: now.Add(-2 * day), DurationMinutes: 30},
				{ID: newID(), WorkoutName: "Advanced Abs", Date: now.Add(-5 * day), DurationMinutes: 20, Notes: "Felt strong today."},
				{ID: newID(), WorkoutName: "Morning Yoga Flow", Date: now.Add(-7 * day), DurationMinutes: 45},
			}},
		{Name: "Jane Smith", Email: "jane.smith@example.com", Mobile: "234-567-8901", JoinDate: mustDate("2023-02-20"), SubscriptionPlan: "Basic", SubscriptionStatus: domain.SubscriptionActive,
			Progress: []domain.WorkoutLog{
				{ID: newID(), WorkoutName: "Full Body HIIT", Date: now.Add(-1 * day), DurationMinutes: 30},
			}},
		{Name: "Mike Johnson", Email: "mike.j@example.com", Mobile: "345-678-9012", JoinDate: mustDate("2023-03-10"), SubscriptionPlan: "Premium", SubscriptionStatus: domain.SubscriptionInactive},
		{Name: "Emily Davis", Email: "emily.d@example.com", Mobile: "456-789-0123", JoinDate: mustDate("2023-04-05"), SubscriptionPlan: "Free Trial", SubscriptionStatus: domain.SubscriptionCancelled},
	}
	for i := range users {
		if _, err := repos.Users.Create(ctx, &users[i]); err != nil {
			return fmt.Errorf("seed user %q: %w", users[i].Email, err)
		}
	}

	content := []domain.FitnessContent{
		{Title: "Full Body HIIT", Type: domain.ContentVideo, Description: "A 30-minute high-intensity interval training session.", UploadDate: mustDate("2023-05-01")},
		{Title: "Morning Yoga Flow", Type: domain.ContentVideo, Description: "Start your day with this refreshing yoga routine.", UploadDate: mustDate("2023-05-02")},
		{Title: "Healthy Meal Prep", Type: domain.ContentImage, Description: "Ideas for a week of healthy meals.", UploadDate: mustDate("2023-05-03")},
		{Title: "Advanced Abs", Type: domain.ContentVideo, Description: "Challenge your core with these advanced exercises.", UploadDate: mustDate("2023-05-04")},
	}
	for i := range content {
		if _, err := repos.Content.Create(ctx, &content[i]); err != nil {
			return fmt.Errorf("seed content %q: %w", content[i].Title, err)
		}
	}

	meetings := []domain.ZoomMeeting{
		{Topic: "HIIT Live Session", StartTime: now.Add(2 * time.Hour), Duration: 45, Host: "Coach Sarah"},
		{Topic: "Advanced Yoga Workshop", StartTime: now.Add(day), Duration: 90, Host: "Coach David"},
		{Topic: "Nutrition Q&A", StartTime: now.Add(2 * day), Duration: 60, Host: "Dr. Evans"},
	}
	for i := range meetings {
		meetings[i].MeetingURL = "#"
		if _, err := repos.Meetings.Create(ctx, &meetings[i]); err != nil {
			return fmt.Errorf("seed meeting %q: %w", meetings[i].Topic, err)
		}
	}

	john, jane, mike := users[0], users[1], users[2]
	processed := now.Add(-12 * time.Hour)
	payments := []domain.PaymentRequest{
		{UserID: mike.ID, UserName: mike.Name, UserEmail: mike.Email, Amount: 49.99, Currency: "USD", ScreenshotURL: "https://picsum.photos/seed/pay1/300/600",
			Date: now.Add(-2 * time.Hour), Status: domain.PaymentPending, PlanName: "Premium", Notes: "Transaction ID: TXN12345"},
		{UserID: jane.ID, UserName: jane.Name, UserEmail: jane.Email, Amount: 19.99, Currency: "USD", ScreenshotURL: "https://picsum.photos/seed/pay2/300/600",
			Date: now.Add(-day), Status: domain.PaymentApproved, PlanName: "Basic", ProcessedAt: &processed},
		{UserID: john.ID, UserName: john.Name, UserEmail: john.Email, Amount: 499.99, Currency: "USD", ScreenshotURL: "https://picsum.photos/seed/pay3/300/600",
			Date: now.Add(-2 * day), Status: domain.PaymentRejected, PlanName: "Premium Yearly", Notes: "Screenshot blurry, please re-upload", ProcessedAt: &processed},
	}
	for i := range payments {
		if _, err := repos.Payments.Create(ctx, &payments[i]); err != nil {
			return fmt.Errorf("seed payment for %q: %w", payments[i].UserEmail, err)
		}
	}
	return nil
}
