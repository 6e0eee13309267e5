package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a DomainError for transport mapping.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindConflict
	KindInvalidState
)

// Generic error codes shared by every aggregate.
const (
	CodeNotFound   = "NOT_FOUND"
	CodeValidation = "VALIDATION_ERROR"
	CodeConflict   = "CONFLICT"
)

// DomainError is a business rule failure carrying a stable code.
type DomainError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New creates a DomainError with an explicit kind and code.
func New(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{Kind: kind, Code: code, Message: message}
}

// Wrap attaches a cause to a new DomainError.
func Wrap(err error, kind ErrorKind, code, message string) *DomainError {
	return &DomainError{Kind: kind, Code: code, Message: message, Err: err}
}

// NewNotFoundError reports a missing entity.
func NewNotFoundError(entity, id string) *DomainError {
	return New(KindNotFound, CodeNotFound, fmt.Sprintf("%s with id %s not found", entity, id))
}

// NewValidationError reports input that breaks a business rule.
func NewValidationError(message string) *DomainError {
	return New(KindValidation, CodeValidation, message)
}

// NewConflictError reports a write that lost against a concurrent change or a uniqueness rule.
func NewConflictError(message string) *DomainError {
	return New(KindConflict, CodeConflict, message)
}

// AsDomainError extracts the first DomainError in the chain.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsNotFound reports whether err is a not-found DomainError of any entity.
func IsNotFound(err error) bool {
	de, ok := AsDomainError(err)
	return ok && de.Kind == KindNotFound
}
