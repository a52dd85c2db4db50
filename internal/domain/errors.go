package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrEmptyCart indicates a checkout was attempted against a cart with no items.
	ErrEmptyCart = errors.New("cart is empty")
)

// ValidationError reports invalid caller input. Safe to retry after correction.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ComplianceError reports a denied compliance check (age, ID verification,
// purchase limit). The denial itself is an auditable event; callers log it
// before returning the error.
type ComplianceError struct {
	Code   string
	Reason string
}

func (e *ComplianceError) Error() string {
	return e.Reason
}

// NewComplianceError builds a ComplianceError with a machine-readable code.
func NewComplianceError(code, reason string) *ComplianceError {
	return &ComplianceError{Code: code, Reason: reason}
}

// InvalidTransitionError reports a status change rejected by the order or
// delivery state machine. Carries both states for diagnostics.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %q to %q", e.From, e.To)
}
