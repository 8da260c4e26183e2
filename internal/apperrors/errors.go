package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists,
// e.g. registering a member with a phone or email already present in the branch.
var ErrDuplicate = errors.New("resource already exists")

// ErrResourceUnavailable indicates that a locker or seat is currently held by
// an active or expiring member and cannot be assigned.
var ErrResourceUnavailable = errors.New("resource unavailable")

// ErrSplitMismatch indicates that the cash and UPI portions of a split payment
// do not sum to the transaction total.
var ErrSplitMismatch = errors.New("split payment does not sum to total")

// ErrNoCardIssued indicates a card return was requested for a member who has
// no outstanding card.
var ErrNoCardIssued = errors.New("no card issued")

// ErrInsufficientStock indicates a card or locker grant was requested while
// the branch has none left to issue.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrPersistence indicates a transient failure talking to the data store.
// Callers may retry.
var ErrPersistence = errors.New("persistence failure")

// ErrInconsistency indicates a multi-write transition failed partway and the
// compensating rollback also failed. It must be surfaced, never swallowed.
var ErrInconsistency = errors.New("fatal inconsistency")

// AppError wraps an underlying error with an HTTP-ish status code and message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given error.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
