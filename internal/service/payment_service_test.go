package service

import (
	"alcyxob/gym-admin/internal/domain"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApproveActivatesSubscription(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mike := env.addUser(t, "Mike Johnson", "mike@example.com", "Basic", domain.SubscriptionInactive)
	p := env.addPayment(t, mike, "Premium Monthly", domain.PaymentPending, fixedNow)

	approved, err := env.payments.Approve(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentApproved, approved.Status)
	require.NotNil(t, approved.ProcessedAt)
	assert.Equal(t, fixedNow, *approved.ProcessedAt)

	stored, err := env.store.Payments.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentApproved, stored.Status)

	user, err := env.store.Users.GetByID(ctx, mike.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionActive, user.SubscriptionStatus)
	assert.Equal(t, "Premium Monthly", user.SubscriptionPlan)

	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.PaymentTransitions.WithLabelValues("Approved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.SubscriptionCascades.WithLabelValues("applied")))
}

func TestApproveUnknownPayment(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.payments.Approve(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestApproveWithDeletedUserStillApproves(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ghost := env.addUser(t, "Ghost", "ghost@example.com", "", domain.SubscriptionInactive)
	p := env.addPayment(t, ghost, "Basic", domain.PaymentPending, fixedNow)
	require.NoError(t, env.store.Users.Delete(ctx, ghost.ID))

	approved, err := env.payments.Approve(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentApproved, approved.Status)

	users, err := env.store.Users.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.SubscriptionCascades.WithLabelValues("user_missing")))
}

func TestRejectRequiresReason(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.addUser(t, "Sarah", "sarah@example.com", "Basic", domain.SubscriptionActive)
	p := env.addPayment(t, u, "Premium", domain.PaymentPending, fixedNow)

	for _, reason := range []string{"", "   "} {
		_, err := env.payments.Reject(ctx, p.ID, reason)
		assert.ErrorIs(t, err, ErrValidation)
		assert.ErrorIs(t, err, ErrRejectReasonRequired)
	}

	// Validation wins over lookup.
	_, err := env.payments.Reject(ctx, "missing", "")
	assert.ErrorIs(t, err, ErrValidation)

	stored, err := env.store.Payments.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, stored.Status)
}

func TestRejectLeavesUserUntouched(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.addUser(t, "Sarah", "sarah@example.com", "Basic", domain.SubscriptionInactive)
	p := env.addPayment(t, u, "Premium", domain.PaymentPending, fixedNow)
	p.Notes = "first attempt"
	require.NoError(t, env.store.Payments.Update(ctx, p))

	rejected, err := env.payments.Reject(ctx, p.ID, "  blurry  ")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentRejected, rejected.Status)
	assert.Equal(t, "blurry", rejected.Notes)
	assert.NotNil(t, rejected.ProcessedAt)

	user, err := env.store.Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionInactive, user.SubscriptionStatus)
	assert.Equal(t, "Basic", user.SubscriptionPlan)
}

func TestTerminalPaymentsCannotTransition(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.addUser(t, "Emma", "emma@example.com", "Basic", domain.SubscriptionActive)
	approved := env.addPayment(t, u, "Premium", domain.PaymentApproved, fixedNow)
	rejected := env.addPayment(t, u, "Premium", domain.PaymentRejected, fixedNow)

	for _, id := range []string{approved.ID, rejected.ID} {
		_, err := env.payments.Approve(ctx, id)
		assert.ErrorIs(t, err, ErrInvalidState)
		_, err = env.payments.Reject(ctx, id, "late")
		assert.ErrorIs(t, err, ErrInvalidState)
	}

	user, err := env.store.Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Basic", user.SubscriptionPlan)
	assert.Equal(t, 4.0, testutil.ToFloat64(env.metrics.PaymentTransitionErrors.WithLabelValues("invalid_state")))
}

func TestUpdateStatusDispatches(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.addUser(t, "Emma", "emma@example.com", "Basic", domain.SubscriptionInactive)
	a := env.addPayment(t, u, "Elite", domain.PaymentPending, fixedNow)
	r := env.addPayment(t, u, "Elite", domain.PaymentPending, fixedNow)
	x := env.addPayment(t, u, "Elite", domain.PaymentPending, fixedNow)

	got, err := env.payments.UpdateStatus(ctx, a.ID, domain.PaymentApproved, "verified by phone")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentApproved, got.Status)
	assert.Equal(t, "verified by phone", got.Notes)

	_, err = env.payments.UpdateStatus(ctx, r.ID, domain.PaymentRejected, "")
	assert.ErrorIs(t, err, ErrRejectReasonRequired)

	got, err = env.payments.UpdateStatus(ctx, r.ID, domain.PaymentRejected, "wrong amount")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentRejected, got.Status)

	_, err = env.payments.UpdateStatus(ctx, x.ID, domain.PaymentPending, "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = env.payments.UpdateStatus(ctx, x.ID, "Refunded", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestConcurrentApproveSucceedsOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.addUser(t, "Mike", "mike@example.com", "Basic", domain.SubscriptionInactive)
	p := env.addPayment(t, u, "Premium", domain.PaymentPending, fixedNow)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		invalid   int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var err error
			if i%2 == 0 {
				_, err = env.payments.Approve(ctx, p.ID)
			} else {
				_, err = env.payments.Reject(ctx, p.ID, "duplicate")
			}
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrInvalidState):
				invalid++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, invalid)
}

func TestListPaymentsReviewOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.addUser(t, "Mike", "mike@example.com", "Basic", domain.SubscriptionActive)

	oldApproved := env.addPayment(t, u, "A", domain.PaymentApproved, fixedNow.AddDate(0, 0, -10))
	oldPending := env.addPayment(t, u, "B", domain.PaymentPending, fixedNow.AddDate(0, 0, -5))
	newRejected := env.addPayment(t, u, "C", domain.PaymentRejected, fixedNow.AddDate(0, 0, -1))
	newPending := env.addPayment(t, u, "D", domain.PaymentPending, fixedNow)

	page, err := env.payments.ListPayments(ctx, ListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 4)

	var ids []string
	for _, p := range page.Items {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{newPending.ID, oldPending.ID, newRejected.ID, oldApproved.ID}, ids)
}

func TestSubmitPaymentSnapshotsUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.addUser(t, "Emma Wilson", "emma@example.com", "Basic", domain.SubscriptionInactive)

	p, err := env.payments.SubmitPayment(ctx, PaymentInput{UserID: u.ID, Amount: 99, PlanName: " Elite "})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, p.Status)
	assert.Equal(t, "USD", p.Currency)
	assert.Equal(t, "Elite", p.PlanName)
	assert.Equal(t, fixedNow, p.Date)

	// Renaming the member does not rewrite the snapshot.
	u.Name = "Emma Stone"
	require.NoError(t, env.store.Users.Update(ctx, u))
	stored, err := env.payments.GetPayment(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Emma Wilson", stored.UserName)
	assert.Equal(t, "emma@example.com", stored.UserEmail)

	_, err = env.payments.SubmitPayment(ctx, PaymentInput{UserID: "nobody", Amount: 10, PlanName: "Basic"})
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = env.payments.SubmitPayment(ctx, PaymentInput{UserID: u.ID, Amount: 0, PlanName: "Basic"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestApproveCascadeRollsBackOnUserWriteFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.addUser(t, "Mike", "mike@example.com", "Basic", domain.SubscriptionInactive)
	p := env.addPayment(t, u, "Premium", domain.PaymentPending, fixedNow)

	boom := errors.New("write failed")
	env.payments.users = failingUserUpdates{UserRepository: env.store.Users, err: boom}

	_, err := env.payments.Approve(ctx, p.ID)
	assert.ErrorIs(t, err, boom)

	stored, err := env.store.Payments.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, stored.Status)
	assert.Nil(t, stored.ProcessedAt)
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.PaymentTransitionErrors.WithLabelValues("internal")))
}

func TestApproveIsInvisibleUntilCommitted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.addUser(t, "Mike", "mike@example.com", "Basic", domain.SubscriptionInactive)
	p := env.addPayment(t, u, "Premium", domain.PaymentPending, fixedNow)

	pause := pausingUserUpdates{UserRepository: env.store.Users, entered: make(chan struct{}), release: make(chan struct{})}
	env.payments.users = pause

	done := make(chan error, 1)
	go func() {
		_, err := env.payments.Approve(ctx, p.ID)
		done <- err
	}()
	<-pause.entered

	// The payment is already written inside the transaction at this point.
	midPayment, err := env.store.Payments.GetByID(ctx, p.ID)
	require.NoError(t, err)
	midUser, err := env.store.Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, midPayment.Status)
	assert.Equal(t, domain.SubscriptionInactive, midUser.SubscriptionStatus)
	assert.Equal(t, "Basic", midUser.SubscriptionPlan)

	close(pause.release)
	require.NoError(t, <-done)

	gotPayment, err := env.store.Payments.GetByID(ctx, p.ID)
	require.NoError(t, err)
	gotUser, err := env.store.Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentApproved, gotPayment.Status)
	assert.Equal(t, domain.SubscriptionActive, gotUser.SubscriptionStatus)
	assert.Equal(t, "Premium", gotUser.SubscriptionPlan)
}
