package service

import (
	"alcyxob/gym-admin/internal/repository"
	"errors"
	"fmt"
)

// Error roots. Every error a service returns on bad input wraps one of these,
// so callers can branch with errors.Is and still show the specific message.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrInvalidState = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
)

var (
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrPlanNotFound    = fmt.Errorf("subscription plan %w", ErrNotFound)
	ErrContentNotFound = fmt.Errorf("content %w", ErrNotFound)
	ErrMeetingNotFound = fmt.Errorf("meeting %w", ErrNotFound)
	ErrPaymentNotFound = fmt.Errorf("payment request %w", ErrNotFound)

	ErrUserAlreadyExists    = fmt.Errorf("%w: user with this email already exists", ErrConflict)
	ErrRejectReasonRequired = fmt.Errorf("%w: reason required to reject", ErrValidation)
	ErrPaymentNotPending    = fmt.Errorf("%w: payment request has already been processed", ErrInvalidState)
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// mapRepoErr translates repository sentinels into service errors.
func mapRepoErr(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return notFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrUserAlreadyExists
	}
	return err
}
