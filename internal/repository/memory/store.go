// Package memory is an in-process implementation of the repository contract.
// It backs local development (database.driver=memory) and the service tests.
package memory

import (
	"alcyxob/gym-admin/internal/domain"
	"alcyxob/gym-admin/internal/repository"
	"context"
	"sync"

	"github.com/google/uuid"
)

type txKey struct{}

// tables is one version of every collection.
type tables struct {
	users    *table[domain.User]
	plans    *table[domain.SubscriptionPlan]
	content  *table[domain.FitnessContent]
	meetings *table[domain.ZoomMeeting]
	payments *table[domain.PaymentRequest]
}

func newTables() *tables {
	return &tables{
		users:    newTable[domain.User](),
		plans:    newTable[domain.SubscriptionPlan](),
		content:  newTable[domain.FitnessContent](),
		meetings: newTable[domain.ZoomMeeting](),
		payments: newTable[domain.PaymentRequest](),
	}
}

func (t *tables) clone() *tables {
	return &tables{
		users:    t.users.clone(),
		plans:    t.plans.clone(),
		content:  t.content.clone(),
		meetings: t.meetings.clone(),
		payments: t.payments.clone(),
	}
}

// Store holds the committed tables. Writers are serialized through txMu: a
// transaction holds it for its whole duration, a standalone write only for
// the write itself. mu guards the committed pointer against readers.
//
// A transaction works on a private staging copy carried in its context.
// Readers outside it keep seeing the committed tables until the staging copy
// is swapped in on success.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	committed *tables
}

func NewStore() *Store {
	return &Store{committed: newTables()}
}

// Repositories exposes the store through the repository interfaces.
func (s *Store) Repositories() *repository.Store {
	return &repository.Store{
		Users:    &userRepository{s: s},
		Plans:    &planRepository{s: s},
		Content:  &contentRepository{s: s},
		Meetings: &meetingRepository{s: s},
		Payments: &paymentRepository{s: s},
		Tx:       s,
	}
}

// WithinTransaction runs fn with exclusive write access against a staging
// copy. The copy replaces the committed tables only if fn succeeds. Nested
// calls join the outer transaction.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if staged(ctx) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	staging := s.committed.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, staging)); err != nil {
		return err
	}

	s.mu.Lock()
	s.committed = staging
	s.mu.Unlock()
	return nil
}

func staged(ctx context.Context) *tables {
	t, _ := ctx.Value(txKey{}).(*tables)
	return t
}

// write applies fn to the staging copy when ctx belongs to a transaction,
// otherwise to the committed tables under both locks.
func (s *Store) write(ctx context.Context, fn func(t *tables) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t := staged(ctx); t != nil {
		return fn(t)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.committed)
}

func (s *Store) read(ctx context.Context, fn func(t *tables) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t := staged(ctx); t != nil {
		return fn(t)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.committed)
}

func newID() string {
	return uuid.NewString()
}
