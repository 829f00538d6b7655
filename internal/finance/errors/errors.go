package errors

import (
	"errors"
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	ok := errors.As(err, &validationError)
	return ok
}

var (
	ErrInvalidAccount      = NewValidationError("Invalid account for this user")
	ErrInvalidCategory     = NewValidationError("Invalid category for this user")
	ErrTransactionNotFound = errors.New("transaction not found for this user")
	ErrCategoryNotFound    = errors.New("category not found for this user")
)
