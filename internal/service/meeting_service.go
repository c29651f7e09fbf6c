package service

import (
	"alcyxob/gym-admin/internal/dashboard"
	"alcyxob/gym-admin/internal/domain"
	"alcyxob/gym-admin/internal/repository"
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultMeetingBaseURL prefixes generated join links.
const DefaultMeetingBaseURL = "https://zoom.us/j/"

type MeetingInput struct {
	Topic     string
	StartTime time.Time
	Duration  int // Minutes
	Host      string
}

type MeetingService interface {
	// ListMeetings returns every meeting, earliest start first.
	ListMeetings(ctx context.Context, q ListQuery) (Page[domain.ZoomMeeting], error)
	// UpcomingMeetings returns meetings starting strictly after now.
	UpcomingMeetings(ctx context.Context) ([]domain.ZoomMeeting, error)
	GetMeeting(ctx context.Context, id string) (*domain.ZoomMeeting, error)
	CreateMeeting(ctx context.Context, in MeetingInput) (*domain.ZoomMeeting, error)
	DeleteMeeting(ctx context.Context, id string) error
}

type meetingService struct {
	meetings repository.MeetingRepository
	baseURL  string
	now      func() time.Time
}

func NewMeetingService(meetings repository.MeetingRepository, baseURL string) MeetingService {
	if baseURL == "" {
		baseURL = DefaultMeetingBaseURL
	}
	return &meetingService{meetings: meetings, baseURL: baseURL, now: time.Now}
}

func (s *meetingService) ListMeetings(ctx context.Context, q ListQuery) (Page[domain.ZoomMeeting], error) {
	meetings, err := s.meetings.List(ctx)
	if err != nil {
		return Page[domain.ZoomMeeting]{}, err
	}
	sort.SliceStable(meetings, func(i, j int) bool {
		return meetings[i].StartTime.Before(meetings[j].StartTime)
	})
	return paginate(meetings, q), nil
}

func (s *meetingService) UpcomingMeetings(ctx context.Context) ([]domain.ZoomMeeting, error) {
	meetings, err := s.meetings.List(ctx)
	if err != nil {
		return nil, err
	}
	return dashboard.UpcomingMeetings(meetings, s.now()), nil
}

func (s *meetingService) GetMeeting(ctx context.Context, id string) (*domain.ZoomMeeting, error) {
	m, err := s.meetings.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, ErrMeetingNotFound)
	}
	return m, nil
}

func (s *meetingService) CreateMeeting(ctx context.Context, in MeetingInput) (*domain.ZoomMeeting, error) {
	topic := strings.TrimSpace(in.Topic)
	if topic == "" {
		return nil, validationError("topic is required")
	}
	if in.StartTime.IsZero() {
		return nil, validationError("start time is required")
	}
	if in.Duration <= 0 {
		return nil, validationError("duration must be positive")
	}
	host := strings.TrimSpace(in.Host)
	if host == "" {
		return nil, validationError("host is required")
	}

	meeting := &domain.ZoomMeeting{
		Topic:      topic,
		StartTime:  in.StartTime.UTC(),
		Duration:   in.Duration,
		Host:       host,
		MeetingURL: s.baseURL + strings.ReplaceAll(uuid.NewString(), "-", ""),
	}
	if _, err := s.meetings.Create(ctx, meeting); err != nil {
		return nil, err
	}
	return meeting, nil
}

func (s *meetingService) DeleteMeeting(ctx context.Context, id string) error {
	return mapRepoErr(s.meetings.Delete(ctx, id), ErrMeetingNotFound)
}
