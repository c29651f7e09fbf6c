package repository

import (
	"alcyxob/gym-admin/internal/domain"
	"context"
)

// Error constants for repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with member data.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (string, error) // Assigns user.ID
	Update(ctx context.Context, user *domain.User) error           // Full replace
	Delete(ctx context.Context, id string) error
	AppendWorkoutLog(ctx context.Context, userID string, log domain.WorkoutLog) error
}

// PlanRepository defines the interface for subscription plans.
type PlanRepository interface {
	List(ctx context.Context) ([]domain.SubscriptionPlan, error)
	GetByID(ctx context.Context, id string) (*domain.SubscriptionPlan, error)
	Create(ctx context.Context, plan *domain.SubscriptionPlan) (string, error)
	Update(ctx context.Context, plan *domain.SubscriptionPlan) error
	Delete(ctx context.Context, id string) error
}

// ContentRepository defines the interface for the content library.
type ContentRepository interface {
	List(ctx context.Context) ([]domain.FitnessContent, error)
	GetByID(ctx context.Context, id string) (*domain.FitnessContent, error)
	Create(ctx context.Context, item *domain.FitnessContent) (string, error)
	Update(ctx context.Context, item *domain.FitnessContent) error
	Delete(ctx context.Context, id string) error
}

// MeetingRepository defines the interface for scheduled meetings.
type MeetingRepository interface {
	List(ctx context.Context) ([]domain.ZoomMeeting, error)
	GetByID(ctx context.Context, id string) (*domain.ZoomMeeting, error)
	Create(ctx context.Context, meeting *domain.ZoomMeeting) (string, error)
	Update(ctx context.Context, meeting *domain.ZoomMeeting) error
	Delete(ctx context.Context, id string) error
}

// PaymentRepository defines the interface for manual payment requests.
type PaymentRepository interface {
	List(ctx context.Context) ([]domain.PaymentRequest, error)
	GetByID(ctx context.Context, id string) (*domain.PaymentRequest, error)
	Create(ctx context.Context, payment *domain.PaymentRequest) (string, error)
	Update(ctx context.Context, payment *domain.PaymentRequest) error
	Delete(ctx context.Context, id string) error
}

// TxManager runs a function as a single unit of work. Repository calls made
// with the context passed to fn take part in the unit; if fn returns an error
// none of its writes are kept.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Store bundles every repository plus the transaction manager for wiring.
type Store struct {
	Users    UserRepository
	Plans    PlanRepository
	Content  ContentRepository
	Meetings MeetingRepository
	Payments PaymentRepository
	Tx       TxManager
}
