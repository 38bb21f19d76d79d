package domain

import (
	"errors"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation error")
	ErrDuplicateBooking   = errors.New("already booked")
	ErrDuplicateSlug      = errors.New("slug already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("invalid or expired session")
	ErrConnection         = errors.New("store unreachable")
)

// ValidationError lists every problem found in a submission.
// errors.Is(err, ErrValidation) holds for it.
type ValidationError struct {
	Problems []string
}

// NewValidationError returns a ValidationError, or nil when problems is empty.
func NewValidationError(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
