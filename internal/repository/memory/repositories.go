package memory

import (
	"alcyxob/gym-admin/internal/domain"
	"alcyxob/gym-admin/internal/repository"
	"context"
	"errors"
	"strings"
	"time"
)

func cloneUser(u domain.User) domain.User {
	if u.Progress != nil {
		u.Progress = append([]domain.WorkoutLog(nil), u.Progress...)
	}
	return u
}

func clonePlan(p domain.SubscriptionPlan) domain.SubscriptionPlan {
	if p.Features != nil {
		p.Features = append([]string(nil), p.Features...)
	}
	return p
}

func clonePayment(p domain.PaymentRequest) domain.PaymentRequest {
	if p.ProcessedAt != nil {
		at := *p.ProcessedAt
		p.ProcessedAt = &at
	}
	return p
}

// --- Users ---

type userRepository struct{ s *Store }

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.s.read(ctx, func(t *tables) error {
		for _, u := range t.users.list() {
			users = append(users, cloneUser(u))
		}
		return nil
	})
	return users, err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := r.s.read(ctx, func(t *tables) error {
		u, ok := t.users.get(id)
		if !ok {
			return repository.ErrNotFound
		}
		user = cloneUser(u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// emailTaken mirrors the unique email index of the Mongo collection.
func emailTaken(t *tables, email, exceptID string) bool {
	for _, u := range t.users.rows {
		if u.ID != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	if user.Email == "" || user.Name == "" {
		return "", errors.New("user name and email are required")
	}
	err := r.s.write(ctx, func(t *tables) error {
		if emailTaken(t, user.Email, "") {
			return repository.ErrDuplicate
		}
		user.ID = newID()
		now := time.Now().UTC()
		user.CreatedAt = now
		user.UpdatedAt = now
		t.users.put(user.ID, cloneUser(*user))
		return nil
	})
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.users.get(user.ID); !ok {
			return repository.ErrNotFound
		}
		if emailTaken(t, user.Email, user.ID) {
			return repository.ErrDuplicate
		}
		user.UpdatedAt = time.Now().UTC()
		t.users.put(user.ID, cloneUser(*user))
		return nil
	})
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	return r.s.write(ctx, func(t *tables) error {
		if !t.users.remove(id) {
			return repository.ErrNotFound
		}
		return nil
	})
}

func (r *userRepository) AppendWorkoutLog(ctx context.Context, userID string, log domain.WorkoutLog) error {
	return r.s.write(ctx, func(t *tables) error {
		u, ok := t.users.get(userID)
		if !ok {
			return repository.ErrNotFound
		}
		u = cloneUser(u)
		u.Progress = append(u.Progress, log)
		u.UpdatedAt = time.Now().UTC()
		t.users.put(userID, u)
		return nil
	})
}

// --- Plans ---

type planRepository struct{ s *Store }

func (r *planRepository) List(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	var plans []domain.SubscriptionPlan
	err := r.s.read(ctx, func(t *tables) error {
		for _, p := range t.plans.list() {
			plans = append(plans, clonePlan(p))
		}
		return nil
	})
	return plans, err
}

func (r *planRepository) GetByID(ctx context.Context, id string) (*domain.SubscriptionPlan, error) {
	var plan domain.SubscriptionPlan
	err := r.s.read(ctx, func(t *tables) error {
		p, ok := t.plans.get(id)
		if !ok {
			return repository.ErrNotFound
		}
		plan = clonePlan(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) Create(ctx context.Context, plan *domain.SubscriptionPlan) (string, error) {
	if plan.Name == "" {
		return "", errors.New("plan name is required")
	}
	err := r.s.write(ctx, func(t *tables) error {
		plan.ID = newID()
		now := time.Now().UTC()
		plan.CreatedAt = now
		plan.UpdatedAt = now
		t.plans.put(plan.ID, clonePlan(*plan))
		return nil
	})
	if err != nil {
		return "", err
	}
	return plan.ID, nil
}

func (r *planRepository) Update(ctx context.Context, plan *domain.SubscriptionPlan) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.plans.get(plan.ID); !ok {
			return repository.ErrNotFound
		}
		plan.UpdatedAt = time.Now().UTC()
		t.plans.put(plan.ID, clonePlan(*plan))
		return nil
	})
}

func (r *planRepository) Delete(ctx context.Context, id string) error {
	return r.s.write(ctx, func(t *tables) error {
		if !t.plans.remove(id) {
			return repository.ErrNotFound
		}
		return nil
	})
}

// --- Content ---

type contentRepository struct{ s *Store }

func (r *contentRepository) List(ctx context.Context) ([]domain.FitnessContent, error) {
	var items []domain.FitnessContent
	err := r.s.read(ctx, func(t *tables) error {
		items = t.content.list()
		return nil
	})
	return items, err
}

func (r *contentRepository) GetByID(ctx context.Context, id string) (*domain.FitnessContent, error) {
	var item domain.FitnessContent
	err := r.s.read(ctx, func(t *tables) error {
		c, ok := t.content.get(id)
		if !ok {
			return repository.ErrNotFound
		}
		item = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *contentRepository) Create(ctx context.Context, item *domain.FitnessContent) (string, error) {
	if item.Title == "" {
		return "", errors.New("content title is required")
	}
	err := r.s.write(ctx, func(t *tables) error {
		item.ID = newID()
		t.content.put(item.ID, *item)
		return nil
	})
	if err != nil {
		return "", err
	}
	return item.ID, nil
}

func (r *contentRepository) Update(ctx context.Context, item *domain.FitnessContent) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.content.get(item.ID); !ok {
			return repository.ErrNotFound
		}
		t.content.put(item.ID, *item)
		return nil
	})
}

func (r *contentRepository) Delete(ctx context.Context, id string) error {
	return r.s.write(ctx, func(t *tables) error {
		if !t.content.remove(id) {
			return repository.ErrNotFound
		}
		return nil
	})
}

// --- Meetings ---

type meetingRepository struct{ s *Store }

func (r *meetingRepository) List(ctx context.Context) ([]domain.ZoomMeeting, error) {
	var meetings []domain.ZoomMeeting
	err := r.s.read(ctx, func(t *tables) error {
		meetings = t.meetings.list()
		return nil
	})
	return meetings, err
}

func (r *meetingRepository) GetByID(ctx context.Context, id string) (*domain.ZoomMeeting, error) {
	var meeting domain.ZoomMeeting
	err := r.s.read(ctx, func(t *tables) error {
		m, ok := t.meetings.get(id)
		if !ok {
			return repository.ErrNotFound
		}
		meeting = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

func (r *meetingRepository) Create(ctx context.Context, meeting *domain.ZoomMeeting) (string, error) {
	if meeting.Topic == "" || meeting.StartTime.IsZero() {
		return "", errors.New("meeting topic and start time are required")
	}
	err := r.s.write(ctx, func(t *tables) error {
		meeting.ID = newID()
		t.meetings.put(meeting.ID, *meeting)
		return nil
	})
	if err != nil {
		return "", err
	}
	return meeting.ID, nil
}

func (r *meetingRepository) Update(ctx context.Context, meeting *domain.ZoomMeeting) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.meetings.get(meeting.ID); !ok {
			return repository.ErrNotFound
		}
		t.meetings.put(meeting.ID, *meeting)
		return nil
	})
}

func (r *meetingRepository) Delete(ctx context.Context, id string) error {
	return r.s.write(ctx, func(t *tables) error {
		if !t.meetings.remove(id) {
			return repository.ErrNotFound
		}
		return nil
	})
}

// --- Payments ---

type paymentRepository struct{ s *Store }

func (r *paymentRepository) List(ctx context.Context) ([]domain.PaymentRequest, error) {
	var payments []domain.PaymentRequest
	err := r.s.read(ctx, func(t *tables) error {
		for _, p := range t.payments.list() {
			payments = append(payments, clonePayment(p))
		}
		return nil
	})
	return payments, err
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.PaymentRequest, error) {
	var payment domain.PaymentRequest
	err := r.s.read(ctx, func(t *tables) error {
		p, ok := t.payments.get(id)
		if !ok {
			return repository.ErrNotFound
		}
		payment = clonePayment(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.PaymentRequest) (string, error) {
	if payment.UserID == "" || payment.PlanName == "" {
		return "", errors.New("payment user ID and plan name are required")
	}
	err := r.s.write(ctx, func(t *tables) error {
		payment.ID = newID()
		t.payments.put(payment.ID, clonePayment(*payment))
		return nil
	})
	if err != nil {
		return "", err
	}
	return payment.ID, nil
}

func (r *paymentRepository) Update(ctx context.Context, payment *domain.PaymentRequest) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.payments.get(payment.ID); !ok {
			return repository.ErrNotFound
		}
		t.payments.put(payment.ID, clonePayment(*payment))
		return nil
	})
}

func (r *paymentRepository) Delete(ctx context.Context, id string) error {
	return r.s.write(ctx, func(t *tables) error {
		if !t.payments.remove(id) {
			return repository.ErrNotFound
		}
		return nil
	})
}
