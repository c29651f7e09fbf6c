package service

import (
	"alcyxob/gym-admin/internal/domain"
	"alcyxob/gym-admin/internal/metrics"
	"alcyxob/gym-admin/internal/repository"
	"alcyxob/gym-admin/internal/storage"
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// PaymentInput is what a member submits as proof of a manual payment.
type PaymentInput struct {
	UserID        string
	Amount        float64
	Currency      string
	ScreenshotURL string
	PlanName      string
	Notes         string
}

type PaymentService interface {
	// ListPayments returns requests in review order: pending first, then
	// newest submission first.
	ListPayments(ctx context.Context, q ListQuery) (Page[domain.PaymentRequest], error)
	GetPayment(ctx context.Context, id string) (*domain.PaymentRequest, error)
	SubmitPayment(ctx context.Context, in PaymentInput) (*domain.PaymentRequest, error)

	// Approve moves a pending request to Approved and, in the same unit of
	// work, activates the member's subscription on the purchased plan.
	Approve(ctx context.Context, id string) (*domain.PaymentRequest, error)
	// Reject moves a pending request to Rejected, storing reason as notes.
	Reject(ctx context.Context, id, reason string) (*domain.PaymentRequest, error)
	// UpdateStatus dispatches to Approve or Reject. Notes given with an
	// approval replace the request's notes.
	UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus, notes string) (*domain.PaymentRequest, error)

	// ScreenshotURL resolves the stored screenshot reference for display.
	ScreenshotURL(ctx context.Context, p *domain.PaymentRequest) (string, error)
}

type paymentService struct {
	payments    repository.PaymentRepository
	users       repository.UserRepository
	tx          repository.TxManager
	locks       *KeyedMutex
	fileStorage storage.FileStorage
	metrics     *metrics.Metrics
	logger      zerolog.Logger
	now         func() time.Time
}

// NewPaymentService creates the approval workflow. locks must be shared with
// the user service so admin edits and approval cascades on the same member
// do not interleave. fileStorage and m may be nil.
func NewPaymentService(
	store *repository.Store,
	locks *KeyedMutex,
	fileStorage storage.FileStorage,
	m *metrics.Metrics,
	logger zerolog.Logger,
) PaymentService {
	return &paymentService{
		payments:    store.Payments,
		users:       store.Users,
		tx:          store.Tx,
		locks:       locks,
		fileStorage: fileStorage,
		metrics:     m,
		logger:      logger.With().Str("component", "payments").Logger(),
		now:         time.Now,
	}
}

func (s *paymentService) ListPayments(ctx context.Context, q ListQuery) (Page[domain.PaymentRequest], error) {
	payments, err := s.payments.List(ctx)
	if err != nil {
		return Page[domain.PaymentRequest]{}, err
	}
	SortForReview(payments)
	return paginate(payments, q), nil
}

// SortForReview orders requests pending first, then by submission date,
// newest first.
func SortForReview(payments []domain.PaymentRequest) {
	sort.SliceStable(payments, func(i, j int) bool {
		pi, pj := payments[i].IsPending(), payments[j].IsPending()
		if pi != pj {
			return pi
		}
		return payments[i].Date.After(payments[j].Date)
	})
}

func (s *paymentService) GetPayment(ctx context.Context, id string) (*domain.PaymentRequest, error) {
	p, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, ErrPaymentNotFound)
	}
	return p, nil
}

func (s *paymentService) SubmitPayment(ctx context.Context, in PaymentInput) (*domain.PaymentRequest, error) {
	if in.UserID == "" {
		return nil, validationError("user ID is required")
	}
	if in.Amount <= 0 {
		return nil, validationError("amount must be positive")
	}
	if strings.TrimSpace(in.PlanName) == "" {
		return nil, validationError("plan name is required")
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "USD"
	}

	user, err := s.users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, mapRepoErr(err, ErrUserNotFound)
	}

	payment := &domain.PaymentRequest{
		UserID:        user.ID,
		UserName:      user.Name, // Snapshot, never re-synced
		UserEmail:     user.Email,
		Amount:        in.Amount,
		Currency:      currency,
		ScreenshotURL: in.ScreenshotURL,
		Date:          s.now().UTC(),
		Status:        domain.PaymentPending,
		PlanName:      strings.TrimSpace(in.PlanName),
		Notes:         in.Notes,
	}
	if _, err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.Info().Str("payment_id", payment.ID).Str("user_id", user.ID).Str("plan", payment.PlanName).Msg("payment request submitted")
	return payment, nil
}

func (s *paymentService) Approve(ctx context.Context, id string) (*domain.PaymentRequest, error) {
	return s.approve(ctx, id, "")
}

func (s *paymentService) approve(ctx context.Context, id, notes string) (*domain.PaymentRequest, error) {
	unlock := s.locks.Lock(paymentKey(id))
	defer unlock()

	current, err := s.GetPayment(ctx, id)
	if err != nil {
		s.transitionFailed(id, err)
		return nil, err
	}
	if !current.IsPending() {
		s.transitionFailed(id, ErrPaymentNotPending)
		return nil, ErrPaymentNotPending
	}

	// The user id on a request never changes, so it is safe to take the
	// member lock before re-reading inside the transaction.
	unlockUser := s.locks.Lock(userKey(current.UserID))
	defer unlockUser()

	var (
		approved     *domain.PaymentRequest
		userAffected bool
	)
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		approved, userAffected = nil, false

		p, err := s.GetPayment(ctx, id)
		if err != nil {
			return err
		}
		if !p.IsPending() {
			return ErrPaymentNotPending
		}

		processedAt := s.now().UTC()
		p.Status = domain.PaymentApproved
		p.ProcessedAt = &processedAt
		if notes != "" {
			p.Notes = notes
		}
		if err := s.payments.Update(ctx, p); err != nil {
			return mapRepoErr(err, ErrPaymentNotFound)
		}

		user, err := s.users.GetByID(ctx, p.UserID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			// Member deleted since submitting; the approval still stands.
		case err != nil:
			return err
		default:
			user.SubscriptionStatus = domain.SubscriptionActive
			user.SubscriptionPlan = p.PlanName
			if err := s.users.Update(ctx, user); err != nil {
				return err
			}
			userAffected = true
		}

		approved = p
		return nil
	})
	if err != nil {
		s.transitionFailed(id, err)
		return nil, err
	}

	s.metrics.PaymentTransitioned(domain.PaymentApproved)
	event := s.logger.Info().Str("payment_id", id).Str("user_id", approved.UserID).Str("plan", approved.PlanName)
	if userAffected {
		s.metrics.SubscriptionCascaded("applied")
		event.Msg("payment approved, subscription activated")
	} else {
		s.metrics.SubscriptionCascaded("user_missing")
		event.Msg("payment approved, user no longer exists")
	}
	return approved, nil
}

func (s *paymentService) Reject(ctx context.Context, id, reason string) (*domain.PaymentRequest, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		s.transitionFailed(id, ErrRejectReasonRequired)
		return nil, ErrRejectReasonRequired
	}

	unlock := s.locks.Lock(paymentKey(id))
	defer unlock()

	p, err := s.GetPayment(ctx, id)
	if err != nil {
		s.transitionFailed(id, err)
		return nil, err
	}
	if !p.IsPending() {
		s.transitionFailed(id, ErrPaymentNotPending)
		return nil, ErrPaymentNotPending
	}

	processedAt := s.now().UTC()
	p.Status = domain.PaymentRejected
	p.Notes = reason
	p.ProcessedAt = &processedAt
	if err := s.payments.Update(ctx, p); err != nil {
		err = mapRepoErr(err, ErrPaymentNotFound)
		s.transitionFailed(id, err)
		return nil, err
	}

	s.metrics.PaymentTransitioned(domain.PaymentRejected)
	s.logger.Info().Str("payment_id", id).Str("reason", reason).Msg("payment rejected")
	return p, nil
}

func (s *paymentService) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus, notes string) (*domain.PaymentRequest, error) {
	switch status {
	case domain.PaymentApproved:
		return s.approve(ctx, id, strings.TrimSpace(notes))
	case domain.PaymentRejected:
		return s.Reject(ctx, id, notes)
	case domain.PaymentPending:
		return nil, validationError("a payment request cannot be moved back to Pending")
	}
	return nil, validationError("unknown payment status %q", status)
}

func (s *paymentService) ScreenshotURL(ctx context.Context, p *domain.PaymentRequest) (string, error) {
	return storage.ResolveReference(ctx, s.fileStorage, p.ScreenshotURL)
}

func (s *paymentService) transitionFailed(id string, err error) {
	kind := "internal"
	switch {
	case errors.Is(err, ErrNotFound):
		kind = "not_found"
	case errors.Is(err, ErrValidation):
		kind = "validation"
	case errors.Is(err, ErrInvalidState):
		kind = "invalid_state"
	}
	s.metrics.PaymentTransitionFailed(kind)

	event := s.logger.Warn()
	if kind == "internal" {
		event = s.logger.Error()
	}
	event.Err(err).Str("payment_id", id).Str("error_type", kind).Msg("payment transition failed")
}
