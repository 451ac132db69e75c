// Package apperr defines the error categories surfaced by the submission workflow.
// Errors are wrapped with fmt.Errorf("%w: ...") and matched with errors.Is.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation marks missing or out-of-range user input. No side effects were performed.
	ErrValidation = errors.New("validation error")
	// ErrPersistence marks a failed or unusable data store call.
	ErrPersistence = errors.New("persistence error")
	// ErrTransport marks a failed notification delivery.
	ErrTransport = errors.New("transport error")
	// ErrMissingConfiguration marks absent notification provider credentials.
	ErrMissingConfiguration = errors.New("missing configuration")
	// ErrNotFound marks a lookup of a record or draft that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidPhoneNumber marks a phone number outside the local mobile numbering scheme.
	ErrInvalidPhoneNumber = errors.New("please enter a valid Portuguese mobile number (9 digits starting with 9)")
)

// Validation returns an ErrValidation carrying a user facing message.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Persistence wraps err as ErrPersistence with a short description of the failed step.
func Persistence(step string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s", ErrPersistence, step)
	}

	return fmt.Errorf("%w: %s: %w", ErrPersistence, step, err)
}

// IsClientError reports whether err was caused by the caller's input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrInvalidPhoneNumber)
}

// Message returns the text shown to the user for err: the message without its category
// prefix for validation errors, the full failure reason otherwise.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return strings.TrimPrefix(err.Error(), ErrValidation.Error()+": ")
	case errors.Is(err, ErrInvalidPhoneNumber):
		s := ErrInvalidPhoneNumber.Error()

		return strings.ToUpper(s[:1]) + s[1:]
	default:
		return err.Error()
	}
}
