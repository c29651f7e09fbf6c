package mongo

import (
	"alcyxob/gym-admin/internal/domain"
	"alcyxob/gym-admin/internal/repository"
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStore connects to MONGO_TEST_URI (a replica set, for transactions) and
// returns a store over a throwaway database.
func testStore(t *testing.T) *repository.Store {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	client, err := ConnectDB(context.Background(), uri)
	require.NoError(t, err)
	db := client.Database("gym_admin_test_" + uuid.NewString()[:8])

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, EnsureIndexes(ctx, db))

	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = DisconnectDB(client)
	})
	return NewStore(client, db)
}

func TestUserRepository(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	u := &domain.User{Name: "John", Email: "john@example.com", SubscriptionStatus: domain.SubscriptionActive, JoinDate: time.Now().UTC()}
	id, err := store.Users.Create(ctx, u)
	require.NoError(t, err)

	_, err = store.Users.Create(ctx, &domain.User{Name: "Other", Email: "john@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	require.NoError(t, store.Users.AppendWorkoutLog(ctx, id, domain.WorkoutLog{ID: "w1", WorkoutName: "Run", DurationMinutes: 20, Date: time.Now().UTC()}))
	got, err := store.Users.GetByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, got.Progress, 1)

	require.NoError(t, store.Users.Delete(ctx, id))
	_, err = store.Users.GetByID(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, store.Users.Update(ctx, got), repository.ErrNotFound)
}

func TestTransactionRollback(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	p := &domain.PaymentRequest{UserID: "u1", PlanName: "Basic", Status: domain.PaymentPending, Date: time.Now().UTC()}
	_, err := store.Payments.Create(ctx, p)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = store.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		p.Status = domain.PaymentApproved
		if err := store.Payments.Update(ctx, p); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := store.Payments.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, got.Status)
}
