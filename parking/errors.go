/*
errors.go - Centralized error types for the parking domain

PURPOSE:
  All operation failures are typed values from this file. Callers branch on
  the kind (errors.Is) and surface the message carried by the structured
  error; the API layer maps kinds to HTTP status codes.

ERROR KINDS:
  1. ErrInvalidPayload     - malformed, missing or out-of-range input
  2. ErrNotFound           - referenced entity absent, or empty query result
  3. ErrInsufficientBalance - business rule: balance cannot go negative
  4. ErrForbidden          - rejected by the Authorizer hook

SEE ALSO:
  - service.go: returns these errors
  - api/handlers.go: maps kinds to HTTP statuses
*/
package parking

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidPayload is returned for malformed or incomplete input.
	ErrInvalidPayload = errors.New("invalid payload")

	// ErrNotFound is returned when a referenced entity is absent or a
	// query yields no results.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientBalance is returned when a withdrawal or settlement
	// would drive a user balance negative.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrForbidden is returned when the Authorizer rejects an action.
	ErrForbidden = errors.New("forbidden")
)

// =============================================================================
// STRUCTURED ERRORS - Carry the caller-facing message
// =============================================================================

// NotFoundError names the entity that was missing.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

func notFound(message string) error { return &NotFoundError{Message: message} }

// InvalidPayloadError explains which rule the input violated.
type InvalidPayloadError struct {
	Message string
}

func (e *InvalidPayloadError) Error() string { return e.Message }
func (e *InvalidPayloadError) Unwrap() error { return ErrInvalidPayload }

func invalidPayload(message string) error { return &InvalidPayloadError{Message: message} }

// InsufficientBalanceError provides details about a balance shortage.
// Its message stays "Insufficient balance" for API compatibility; the
// amounts are for logging and diagnostics.
type InsufficientBalanceError struct {
	UserID    string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string { return "Insufficient balance" }
func (e *InsufficientBalanceError) Unwrap() error { return ErrInsufficientBalance }

// ForbiddenError reports an action rejected by the Authorizer.
type ForbiddenError struct {
	ActorID string
	Action  Action
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("action %s not permitted for actor %q", e.Action, e.ActorID)
}

func (e *ForbiddenError) Unwrap() error { return ErrForbidden }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound reports whether err indicates a missing entity or empty result.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsInvalidPayload reports whether err indicates bad input.
func IsInvalidPayload(err error) bool { return errors.Is(err, ErrInvalidPayload) }

// IsClientError reports whether the failure is the caller's fault rather
// than an internal one.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidPayload) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrForbidden)
}
