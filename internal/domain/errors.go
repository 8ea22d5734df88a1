package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation            = errors.New("validation failed")
	ErrNotFound              = errors.New("not found")
	ErrFlightUnavailable     = errors.New("flight is not available for booking")
	ErrInsufficientInventory = errors.New("insufficient seat inventory")
	ErrSeatConflict          = errors.New("seat already taken")
	ErrReferenceCollision    = errors.New("booking reference collision")
	ErrReferenceExhausted    = errors.New("could not allocate a unique booking reference")
	ErrTransaction           = errors.New("transaction failed")
	ErrInvalidTransition     = errors.New("invalid booking status transition")
	ErrAlreadyPaid           = errors.New("booking already paid")
)

// ValidationError describes a rejected request field. Index is the
// passenger position for passenger-level errors and -1 otherwise.
type ValidationError struct {
	Field  string
	Index  int
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Index: -1, Reason: reason}
}

func NewPassengerError(index int, field, reason string) *ValidationError {
	return &ValidationError{Field: field, Index: index, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("passenger %d: %s: %s", e.Index, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

type SeatConflictError struct {
	Seat string
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seat %s already taken", e.Seat)
}

func (e *SeatConflictError) Unwrap() error { return ErrSeatConflict }

// TransactionError is a commit-time failure. The transaction was rolled
// back and the request may be retried.
type TransactionError struct {
	Op  string
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransactionError) Is(target error) bool { return target == ErrTransaction }

func (e *TransactionError) Unwrap() error { return e.Err }

// IsDomainError reports whether err already belongs to the booking error
// taxonomy and should be surfaced as-is.
func IsDomainError(err error) bool {
	for _, target := range []error{
		ErrValidation, ErrNotFound, ErrFlightUnavailable, ErrInsufficientInventory,
		ErrSeatConflict, ErrReferenceCollision, ErrReferenceExhausted, ErrTransaction,
		ErrInvalidTransition, ErrAlreadyPaid,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
