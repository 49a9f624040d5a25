package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the request/response boundary. Handlers map these to
// HTTP status classes via the response package.
var (
	// ErrNotFound is returned when a team, player, or user does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden is returned when a team does not belong to the caller.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict is returned when a write loses an optimistic-concurrency
	// race; the caller may safely resubmit the whole request.
	ErrConflict = errors.New("conflict")

	// ErrWildcardUsed is returned when a team's one-time wildcard has
	// already been consumed. Terminal: no retry will ever succeed.
	ErrWildcardUsed = errors.New("wildcard already used")
)

// DomainError wraps a base error with additional context.
type DomainError struct {
	// Base is the underlying error type (e.g., ErrNotFound)
	Base error

	// Message provides human-readable context
	Message string

	// Field indicates which field caused the error (for validation errors)
	Field string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field: %s)", e.Base.Error(), e.Message, e.Field)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Base.Error(), e.Message)
	}
	return e.Base.Error()
}

// Unwrap returns the base error for errors.Is/As support.
func (e *DomainError) Unwrap() error {
	return e.Base
}

// RuleViolationError carries every rule a proposed squad or swap violated.
// Callers surface the full list, never just the first entry, and no
// mutation is ever applied alongside one.
type RuleViolationError struct {
	Violations []string
}

func (e *RuleViolationError) Error() string {
	return "rule violation: " + strings.Join(e.Violations, "; ")
}

// Unwrap maps rule violations onto the bad-request class.
func (e *RuleViolationError) Unwrap() error {
	return ErrInvalidInput
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(resource string) *DomainError {
	return &DomainError{Base: ErrNotFound, Message: resource}
}

// NewValidationError creates a validation error for a specific field.
func NewValidationError(field, message string) *DomainError {
	return &DomainError{Base: ErrInvalidInput, Message: message, Field: field}
}

// NewForbiddenError creates a forbidden error with context.
func NewForbiddenError(message string) *DomainError {
	return &DomainError{Base: ErrForbidden, Message: message}
}

// NewConflictError creates a conflict error with context.
func NewConflictError(message string) *DomainError {
	return &DomainError{Base: ErrConflict, Message: message}
}

// NewRuleViolationError wraps the validator's findings in an error.
func NewRuleViolationError(violations []string) *RuleViolationError {
	return &RuleViolationError{Violations: violations}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsForbidden checks if an error is a forbidden error.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsConflict checks if an error is a conflict error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsWildcardUsed checks if an error is a spent-wildcard error.
func IsWildcardUsed(err error) bool {
	return errors.Is(err, ErrWildcardUsed)
}
