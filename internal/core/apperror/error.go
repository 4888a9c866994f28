// Package apperror defines the structured error type every layer of
// the application returns. Handlers render an AppError as a JSON body
// with a machine-readable code; anything else becomes a generic 500.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes, grouped by the HTTP status they map to.
const (
	CodeInternal = "INTERNAL_ERROR"

	// External rate sources failing map to 502.
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"

	CodeValidation = "VALIDATION_ERROR"

	// Business rule violations map to 422.
	CodeBusinessRule           = "BUSINESS_RULE_VIOLATION"
	CodeChargeInactive         = "LABOUR_CHARGE_INACTIVE"
	CodeNoActiveRate           = "NO_ACTIVE_RATE"
	CodeConcurrentModification = "CONCURRENT_MODIFICATION"

	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"

	CodeNotFound = "NOT_FOUND"

	CodeConflict    = "CONFLICT"
	CodeIdempotency = "IDEMPOTENCY_CONFLICT"
)

// AppError carries a stable code, a message safe to show the caller
// and the HTTP status the handlers should answer with.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`

	// Details holds structured context such as the offending field or
	// the metal and purity a rate lookup missed.
	Details map[string]any `json:"details,omitempty"`

	HTTPStatus int `json:"-"`

	// Err is the wrapped cause. It reaches logs, never the client.
	Err error `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail attaches one key of structured context.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause wraps the underlying error.
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// NewValidation answers 400 for malformed input.
func NewValidation(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFound answers 404, naming the entity that was looked up.
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewBusinessRule answers 422 with a caller-chosen code.
func NewBusinessRule(code, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// NewNoActiveRate is returned when pricing requires a rate that has no
// active record for the requested (metal, purity) pair. The caller must
// not fall back to a zero or stale price.
func NewNoActiveRate(metalType, purity string) *AppError {
	return &AppError{
		Code:       CodeNoActiveRate,
		Message:    "No active rate for metal and purity",
		HTTPStatus: http.StatusNotFound,
		Details: map[string]any{
			"metal_type": metalType,
			"purity":     purity,
		},
	}
}

// NewChargeInactive is returned when a new invoice references a labour
// charge that has been soft-deleted.
func NewChargeInactive(chargeID string) *AppError {
	return &AppError{
		Code:       CodeChargeInactive,
		Message:    "Labour charge is no longer active",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"labour_charge_id": chargeID},
	}
}

// NewUpstreamUnavailable answers 502 when an external rate source
// cannot be reached.
func NewUpstreamUnavailable(source string, err error) *AppError {
	return &AppError{
		Code:       CodeUpstreamUnavailable,
		Message:    fmt.Sprintf("Upstream %s is unavailable", source),
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"source": source},
		Err:        err,
	}
}

// NewConcurrentModification answers 409 when an optimistic version
// check loses the race.
func NewConcurrentModification(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeConcurrentModification,
		Message:    "Record was modified by another user. Please refresh and try again.",
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewInternal answers 500. The cause stays server-side.
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewUnauthorized answers 401.
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewForbidden answers 403.
func NewForbidden(message string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewIdempotencyConflict is returned while the original request holding
// the key is still in flight.
func NewIdempotencyConflict(key string) *AppError {
	return &AppError{
		Code:       CodeIdempotency,
		Message:    "Operation already in progress or completed",
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"idempotency_key": key},
	}
}

// NewIdempotencyMismatch is returned when the same idempotency key is
// reused for a different request body, user or operation.
func NewIdempotencyMismatch(key string) *AppError {
	return &AppError{
		Code:       CodeIdempotency,
		Message:    "Idempotency key mismatch",
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"idempotency_key": key},
	}
}

// NewConflict answers 409 for constraint violations.
func NewConflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// IsAppError reports whether the chain contains an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError extracts the AppError from the chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsValidation reports a CodeValidation error.
func IsValidation(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeValidation
	}
	return false
}

// IsNotFound reports a missing entity. A missing active rate counts;
// callers treat both as "nothing to price against".
func IsNotFound(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeNotFound || appErr.Code == CodeNoActiveRate
	}
	return false
}

// IsUpstreamUnavailable reports a failed external source call.
func IsUpstreamUnavailable(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeUpstreamUnavailable
	}
	return false
}
