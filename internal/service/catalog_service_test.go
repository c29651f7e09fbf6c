package service

import (
	"alcyxob/gym-admin/internal/dashboard"
	"alcyxob/gym-admin/internal/domain"
	"alcyxob/gym-admin/internal/repository/memory"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	deleted []string
}

func (f *fakeStorage) GeneratePresignedUploadURL(ctx context.Context, key, contentType string, expires time.Duration) (string, error) {
	return "https://bucket.example.com/" + key + "?upload", nil
}

func (f *fakeStorage) GeneratePresignedDownloadURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	return "https://bucket.example.com/" + key + "?signed", nil
}

func (f *fakeStorage) DeleteObject(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func TestPlanValidation(t *testing.T) {
	svc := NewPlanService(memory.NewStore().Repositories().Plans)
	ctx := context.Background()

	_, err := svc.CreatePlan(ctx, PlanInput{Name: "Basic", Price: -1, Duration: domain.DurationMonthly})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.CreatePlan(ctx, PlanInput{Name: "Basic", Price: 10, Duration: "weekly"})
	assert.ErrorIs(t, err, ErrValidation)

	plan, err := svc.CreatePlan(ctx, PlanInput{Name: "Free", Price: 0, Duration: domain.DurationMonthly, Features: []string{"Gym access", " "}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Gym access"}, plan.Features)

	updated, err := svc.UpdatePlan(ctx, plan.ID, PlanInput{Name: "Free", Price: 0, Duration: domain.DurationYearly})
	require.NoError(t, err)
	assert.Equal(t, domain.DurationYearly, updated.Duration)

	require.NoError(t, svc.DeletePlan(ctx, plan.ID))
	assert.ErrorIs(t, svc.DeletePlan(ctx, plan.ID), ErrPlanNotFound)
}

func TestContentThumbnails(t *testing.T) {
	fs := &fakeStorage{}
	svc := NewContentService(memory.NewStore().Repositories().Content, fs, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.RequestThumbnailUpload(ctx, "video/mp4")
	assert.ErrorIs(t, err, ErrValidation)

	upload, err := svc.RequestThumbnailUpload(ctx, "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(upload.ObjectKey, "thumbnails/"))
	assert.True(t, strings.HasSuffix(upload.ObjectKey, ".png"))
	assert.Contains(t, upload.UploadURL, upload.ObjectKey)

	item, err := svc.CreateContent(ctx, ContentInput{Title: "Core", Type: domain.ContentImage, ThumbnailURL: upload.ObjectKey})
	require.NoError(t, err)
	url, err := svc.ThumbnailURL(ctx, item)
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.example.com/"+upload.ObjectKey+"?signed", url)

	require.NoError(t, svc.DeleteContent(ctx, item.ID))
	assert.Equal(t, []string{upload.ObjectKey}, fs.deleted)
	assert.ErrorIs(t, svc.DeleteContent(ctx, item.ID), ErrContentNotFound)

	_, err = svc.CreateContent(ctx, ContentInput{Title: "Bad", Type: "Audio"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestContentWithoutStorage(t *testing.T) {
	svc := NewContentService(memory.NewStore().Repositories().Content, nil, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.RequestThumbnailUpload(ctx, "image/png")
	assert.ErrorIs(t, err, ErrStorageDisabled)

	item, err := svc.CreateContent(ctx, ContentInput{Title: "HIIT", Type: domain.ContentVideo, ThumbnailURL: "https://cdn.example.com/hiit.jpg"})
	require.NoError(t, err)
	url, err := svc.ThumbnailURL(ctx, item)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/hiit.jpg", url)
}

func TestMeetings(t *testing.T) {
	svc := NewMeetingService(memory.NewStore().Repositories().Meetings, "").(*meetingService)
	svc.now = func() time.Time { return fixedNow }
	ctx := context.Background()

	late, err := svc.CreateMeeting(ctx, MeetingInput{Topic: "Nutrition Q&A", StartTime: fixedNow.Add(48 * time.Hour), Duration: 30, Host: "Sarah"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(late.MeetingURL, DefaultMeetingBaseURL))
	past, err := svc.CreateMeeting(ctx, MeetingInput{Topic: "Yoga", StartTime: fixedNow.Add(-time.Hour), Duration: 60, Host: "Emma"})
	require.NoError(t, err)
	soon, err := svc.CreateMeeting(ctx, MeetingInput{Topic: "HIIT", StartTime: fixedNow.Add(time.Hour), Duration: 45, Host: "Mike"})
	require.NoError(t, err)

	page, err := svc.ListMeetings(ctx, ListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, []string{past.ID, soon.ID, late.ID}, []string{page.Items[0].ID, page.Items[1].ID, page.Items[2].ID})

	upcoming, err := svc.UpcomingMeetings(ctx)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, soon.ID, upcoming[0].ID)

	_, err = svc.CreateMeeting(ctx, MeetingInput{Topic: "x", StartTime: fixedNow, Duration: 0, Host: "h"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, svc.DeleteMeeting(ctx, "missing"), ErrMeetingNotFound)
}

func TestDashboardOverviewFromSeed(t *testing.T) {
	store := memory.NewStore().Repositories()
	require.NoError(t, memory.SeedDemoData(context.Background(), store, fixedNow))

	svc := NewDashboardService(store, dashboard.Options{}).(*dashboardService)
	svc.now = func() time.Time { return fixedNow }

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)

	users, err := store.Users.List(context.Background())
	require.NoError(t, err)
	plans, err := store.Plans.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, len(users), overview.TotalUsers)
	assert.Equal(t, dashboard.ActiveSubscriptions(users), overview.ActiveSubscriptions)
	assert.InDelta(t, dashboard.MonthlyRevenue(users, plans), overview.MonthlyRevenue, 0.001)
	assert.LessOrEqual(t, len(overview.RecentActivity), dashboard.DefaultActivityLimit)
	assert.LessOrEqual(t, len(overview.UpcomingMeetings), dashboard.DefaultUpcomingLimit)
	for _, m := range overview.ScheduledMeetings {
		assert.True(t, m.StartTime.After(fixedNow))
	}
}
