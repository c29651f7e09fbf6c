package service

import (
	"alcyxob/gym-admin/internal/domain"
	"alcyxob/gym-admin/internal/metrics"
	"alcyxob/gym-admin/internal/repository"
	"alcyxob/gym-admin/internal/repository/memory"
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	store    *repository.Store
	locks    *KeyedMutex
	metrics  *metrics.Metrics
	payments *paymentService
	users    *userService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore().Repositories()
	locks := NewKeyedMutex()
	m := metrics.New(prometheus.NewRegistry())

	payments := NewPaymentService(store, locks, nil, m, zerolog.Nop()).(*paymentService)
	payments.now = func() time.Time { return fixedNow }
	users := NewUserService(store.Users, locks, zerolog.Nop()).(*userService)
	users.now = func() time.Time { return fixedNow }

	return &testEnv{store: store, locks: locks, metrics: m, payments: payments, users: users}
}

func (e *testEnv) addUser(t *testing.T, name, email, plan string, status domain.SubscriptionStatus) *domain.User {
	t.Helper()
	u := &domain.User{
		Name:               name,
		Email:              email,
		JoinDate:           fixedNow.AddDate(0, -2, 0),
		SubscriptionPlan:   plan,
		SubscriptionStatus: status,
	}
	_, err := e.store.Users.Create(context.Background(), u)
	require.NoError(t, err)
	return u
}

func (e *testEnv) addPayment(t *testing.T, user *domain.User, plan string, status domain.PaymentStatus, date time.Time) *domain.PaymentRequest {
	t.Helper()
	p := &domain.PaymentRequest{
		UserID:    user.ID,
		UserName:  user.Name,
		UserEmail: user.Email,
		Amount:    49.99,
		Currency:  "USD",
		Date:      date,
		Status:    status,
		PlanName:  plan,
	}
	_, err := e.store.Payments.Create(context.Background(), p)
	require.NoError(t, err)
	return p
}

// failingUserUpdates makes every user update fail, for rollback tests.
type failingUserUpdates struct {
	repository.UserRepository
	err error
}

func (f failingUserUpdates) Update(ctx context.Context, user *domain.User) error {
	return f.err
}

// pausingUserUpdates parks every user update until release is closed.
type pausingUserUpdates struct {
	repository.UserRepository
	entered chan struct{}
	release chan struct{}
}

func (p pausingUserUpdates) Update(ctx context.Context, user *domain.User) error {
	close(p.entered)
	<-p.release
	return p.UserRepository.Update(ctx, user)
}
