package types

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is.
var (
	ErrValidation = errors.New("validation")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
)

// CustomError is a business-rule error raised by the services.
// Kind is one of ErrValidation, ErrConflict or ErrNotFound.
type CustomError struct {
	Kind    error  `json:"-"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%s: %s [type: %s]", e.Kind, e.Message, e.Type)
}

func (e *CustomError) Unwrap() error {
	return e.Kind
}

// NewValidationError reports caller input that breaks a business rule.
func NewValidationError(errorType, format string, args ...any) *CustomError {
	return &CustomError{Kind: ErrValidation, Message: fmt.Sprintf(format, args...), Type: errorType}
}

// NewConflictError reports a scoped uniqueness violation.
func NewConflictError(errorType, format string, args ...any) *CustomError {
	return &CustomError{Kind: ErrConflict, Message: fmt.Sprintf(format, args...), Type: errorType}
}

// NewNotFoundError reports a referenced entity that does not exist.
func NewNotFoundError(errorType, format string, args ...any) *CustomError {
	return &CustomError{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...), Type: errorType}
}

// AsCustomError unwraps err into a *CustomError if it carries one.
func AsCustomError(err error) (*CustomError, bool) {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
