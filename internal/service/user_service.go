package service

import (
	"alcyxob/gym-admin/internal/dashboard"
	"alcyxob/gym-admin/internal/domain"
	"alcyxob/gym-admin/internal/repository"
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// UserInput carries the editable member fields. A zero JoinDate on create
// means "today"; an empty status means Inactive.
type UserInput struct {
	Name               string
	Email              string
	Mobile             string
	JoinDate           time.Time
	SubscriptionPlan   string
	SubscriptionStatus domain.SubscriptionStatus
	AvatarURL          string
}

// WorkoutInput is one session logged against a member.
type WorkoutInput struct {
	WorkoutName     string
	Date            time.Time
	DurationMinutes int
	Notes           string
}

// UserProfile is a member plus their progress summary.
type UserProfile struct {
	User     *domain.User
	Progress dashboard.ProgressSummary
}

type UserService interface {
	ListUsers(ctx context.Context, q ListQuery) (Page[domain.User], error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserProfile(ctx context.Context, id string) (*UserProfile, error)
	CreateUser(ctx context.Context, in UserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, in UserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
	LogWorkout(ctx context.Context, userID string, in WorkoutInput) (*domain.WorkoutLog, error)
}

type userService struct {
	users  repository.UserRepository
	locks  *KeyedMutex
	logger zerolog.Logger
	now    func() time.Time
}

// NewUserService creates the member service. locks is shared with the
// payment service.
func NewUserService(users repository.UserRepository, locks *KeyedMutex, logger zerolog.Logger) UserService {
	return &userService{
		users:  users,
		locks:  locks,
		logger: logger.With().Str("component", "users").Logger(),
		now:    time.Now,
	}
}

var validate = validator.New()

var userSorts = map[string]func(a, b *domain.User) bool{
	"name":               func(a, b *domain.User) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) },
	"email":              func(a, b *domain.User) bool { return strings.ToLower(a.Email) < strings.ToLower(b.Email) },
	"joinDate":           func(a, b *domain.User) bool { return a.JoinDate.Before(b.JoinDate) },
	"subscriptionStatus": func(a, b *domain.User) bool { return a.SubscriptionStatus < b.SubscriptionStatus },
}

func (s *userService) ListUsers(ctx context.Context, q ListQuery) (Page[domain.User], error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return Page[domain.User]{}, err
	}
	if err := sortItems(users, q, userSorts); err != nil {
		return Page[domain.User]{}, err
	}
	return paginate(users, q), nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, ErrUserNotFound)
	}
	return user, nil
}

func (s *userService) GetUserProfile(ctx context.Context, id string) (*UserProfile, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return &UserProfile{User: user, Progress: dashboard.Progress(user, s.now())}, nil
}

func (s *userService) CreateUser(ctx context.Context, in UserInput) (*domain.User, error) {
	in, err := s.normalize(in)
	if err != nil {
		return nil, err
	}
	if in.JoinDate.IsZero() {
		y, m, d := s.now().UTC().Date()
		in.JoinDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	user := &domain.User{
		Name:               in.Name,
		Email:              in.Email,
		Mobile:             in.Mobile,
		JoinDate:           in.JoinDate,
		SubscriptionPlan:   in.SubscriptionPlan,
		SubscriptionStatus: in.SubscriptionStatus,
		AvatarURL:          in.AvatarURL,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, mapRepoErr(err, ErrUserNotFound)
	}

	s.logger.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("user created")
	return user, nil
}

// UpdateUser replaces the editable fields. Progress history and creation
// time are kept. Holds the member lock so it cannot interleave with an
// approval cascade on the same user.
func (s *userService) UpdateUser(ctx context.Context, id string, in UserInput) (*domain.User, error) {
	in, err := s.normalize(in)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(userKey(id))
	defer unlock()

	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Name = in.Name
	user.Email = in.Email
	user.Mobile = in.Mobile
	if !in.JoinDate.IsZero() {
		user.JoinDate = in.JoinDate
	}
	user.SubscriptionPlan = in.SubscriptionPlan
	user.SubscriptionStatus = in.SubscriptionStatus
	user.AvatarURL = in.AvatarURL

	if err := s.users.Update(ctx, user); err != nil {
		return nil, mapRepoErr(err, ErrUserNotFound)
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	unlock := s.locks.Lock(userKey(id))
	defer unlock()

	if err := s.users.Delete(ctx, id); err != nil {
		return mapRepoErr(err, ErrUserNotFound)
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func (s *userService) LogWorkout(ctx context.Context, userID string, in WorkoutInput) (*domain.WorkoutLog, error) {
	name := strings.TrimSpace(in.WorkoutName)
	if name == "" {
		return nil, validationError("workout name is required")
	}
	if in.DurationMinutes <= 0 {
		return nil, validationError("duration must be positive")
	}
	date := in.Date
	if date.IsZero() {
		date = s.now().UTC()
	}

	log := domain.WorkoutLog{
		ID:              uuid.NewString(),
		WorkoutName:     name,
		Date:            date,
		DurationMinutes: in.DurationMinutes,
		Notes:           in.Notes,
	}
	if err := s.users.AppendWorkoutLog(ctx, userID, log); err != nil {
		return nil, mapRepoErr(err, ErrUserNotFound)
	}
	return &log, nil
}

func (s *userService) normalize(in UserInput) (UserInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.SubscriptionPlan = strings.TrimSpace(in.SubscriptionPlan)

	if in.Name == "" {
		return in, validationError("name is required")
	}
	if in.Email == "" {
		return in, validationError("email is required")
	}
	if err := validate.Var(in.Email, "email"); err != nil {
		return in, validationError("invalid email %q", in.Email)
	}
	if in.SubscriptionStatus == "" {
		in.SubscriptionStatus = domain.SubscriptionInactive
	}
	if !in.SubscriptionStatus.Valid() {
		return in, validationError("unknown subscription status %q", in.SubscriptionStatus)
	}
	return in, nil
}
