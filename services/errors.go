package services

import "errors"

var (
	// ErrNotFound means the referenced record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrNotOwner means the acting user does not own the referenced
	// restaurant. Returned for both "wrong owner" and "no such restaurant"
	// so callers cannot probe for existence.
	ErrNotOwner = errors.New("not the owner")
	// ErrConflict means a unique constraint was violated
	ErrConflict = errors.New("conflict")
)

// ValidationError carries field-level detail for a rejected payload.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
