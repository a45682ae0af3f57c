package errors

import (
	"errors"
	"fmt"
)

// ValidationError describes a malformed field definition or record payload.
// The caller must correct the input; the request is not retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a new ValidationError with a formatted message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// OptionNotAllowedError is returned when a select-typed attribute holds a
// value outside the field's options.
type OptionNotAllowedError struct {
	Field   string
	Value   string
	Options []string
}

func (e *OptionNotAllowedError) Error() string {
	return fmt.Sprintf("value %q is not an allowed option for field %q", e.Value, e.Field)
}

// IsValidation reports whether err is a validation failure of either kind.
func IsValidation(err error) bool {
	var ve *ValidationError
	var oe *OptionNotAllowedError
	return errors.As(err, &ve) || errors.As(err, &oe)
}
