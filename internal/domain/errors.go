package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the settlement and wallet paths. All are
// terminal for the caller; none are retried internally.
var (
	// ErrUserNotFound indicates an unknown user id or username
	ErrUserNotFound = errors.New("user not found")

	// ErrTradeNotFound indicates an unknown trade id
	ErrTradeNotFound = errors.New("trade not found")

	// ErrTransferNotFound indicates an unknown transfer request id
	ErrTransferNotFound = errors.New("transfer request not found")

	// ErrInsufficientBalance indicates a debit larger than the current balance
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrTradeAlreadyResolved indicates a resolve attempt on a non-PENDING
	// trade. Raised by the conditional status update, so exactly one of two
	// concurrent resolutions can succeed.
	ErrTradeAlreadyResolved = errors.New("trade already resolved")

	// ErrTransferAlreadyReviewed indicates an approve/reject attempt on a
	// non-PENDING transfer request
	ErrTransferAlreadyReviewed = errors.New("transfer request already reviewed")
)

// ValidationError describes malformed input on a single field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for the given field
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidationError reports whether err is a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
