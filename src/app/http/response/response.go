// Package response defines consistent HTTP response structures.
// All API responses should use these types for consistency.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fantasyhub/src/core/domain"
)

// Success represents a successful response with data.
type Success struct {
	Data any `json:"data"`
}

// Error represents an error response.
type Error struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	// Code is a machine-readable error code (e.g., "NOT_FOUND", "RULE_VIOLATION")
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Errors lists every violated rule for RULE_VIOLATION responses
	Errors []string `json:"errors,omitempty"`

	// Field is the field that caused the error (for validation errors)
	Field string `json:"field,omitempty"`

	// RequestID is the request ID for debugging
	RequestID string `json:"request_id,omitempty"`
}

// OK sends a 200 response with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Success{Data: data})
}

// BadRequest sends a 400 response.
func BadRequest(c *gin.Context, message string, requestID string) {
	c.JSON(http.StatusBadRequest, Error{
		Error: ErrorDetail{
			Code:      "BAD_REQUEST",
			Message:   message,
			RequestID: requestID,
		},
	})
}

// ValidationError sends a 400 response for validation failures.
func ValidationError(c *gin.Context, field, message, requestID string) {
	c.JSON(http.StatusBadRequest, Error{
		Error: ErrorDetail{
			Code:      "VALIDATION_ERROR",
			Message:   message,
			Field:     field,
			RequestID: requestID,
		},
	})
}

// RuleViolation sends a 400 response carrying every violated roster rule.
// Nothing was mutated; the caller may correct the payload and resubmit.
func RuleViolation(c *gin.Context, violations []string, requestID string) {
	c.JSON(http.StatusBadRequest, Error{
		Error: ErrorDetail{
			Code:      "RULE_VIOLATION",
			Message:   "one or more roster rules were violated",
			Errors:    violations,
			RequestID: requestID,
		},
	})
}

// NotFound sends a 404 response.
func NotFound(c *gin.Context, message, requestID string) {
	c.JSON(http.StatusNotFound, Error{
		Error: ErrorDetail{
			Code:      "NOT_FOUND",
			Message:   message,
			RequestID: requestID,
		},
	})
}

// Forbidden sends a 403 response.
func Forbidden(c *gin.Context, message, requestID string) {
	c.JSON(http.StatusForbidden, Error{
		Error: ErrorDetail{
			Code:      "FORBIDDEN",
			Message:   message,
			RequestID: requestID,
		},
	})
}

// Conflict sends a 409 response.
func Conflict(c *gin.Context, message, requestID string) {
	c.JSON(http.StatusConflict, Error{
		Error: ErrorDetail{
			Code:      "CONFLICT",
			Message:   message,
			RequestID: requestID,
		},
	})
}

// InternalError sends a 500 response.
func InternalError(c *gin.Context, requestID string) {
	c.JSON(http.StatusInternalServerError, Error{
		Error: ErrorDetail{
			Code:      "INTERNAL_ERROR",
			Message:   "An unexpected error occurred",
			RequestID: requestID,
		},
	})
}

// FromDomainError converts a domain error to an appropriate HTTP response.
// This centralizes error handling and ensures consistent error responses.
func FromDomainError(c *gin.Context, err error, requestID string) {
	var ruleErr *domain.RuleViolationError
	switch {
	case errors.As(err, &ruleErr):
		RuleViolation(c, ruleErr.Violations, requestID)
	case domain.IsWildcardUsed(err):
		// Terminal for the team, but still a rule violation at the
		// request boundary.
		RuleViolation(c, []string{err.Error()}, requestID)
	case domain.IsNotFound(err):
		NotFound(c, err.Error(), requestID)
	case domain.IsValidationError(err):
		if domainErr, ok := err.(*domain.DomainError); ok {
			ValidationError(c, domainErr.Field, domainErr.Message, requestID)
		} else {
			BadRequest(c, err.Error(), requestID)
		}
	case domain.IsForbidden(err):
		Forbidden(c, err.Error(), requestID)
	case domain.IsConflict(err):
		Conflict(c, err.Error(), requestID)
	default:
		InternalError(c, requestID)
	}
}
