// Package apperr defines the error taxonomy shared by every module.
// Handlers translate these into HTTP status codes with Status; anything
// outside the taxonomy is treated as a persistence failure (500).
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ValidationError reports malformed or missing client input.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

// NotFoundError reports a referenced entity that is absent or not owned by
// the caller. The two cases are deliberately indistinguishable.
type NotFoundError struct{ Msg string }

func (e *NotFoundError) Error() string { return e.Msg }

// PreconditionError reports required prior state that is missing, such as an
// uninitialised capital ledger.
type PreconditionError struct{ Msg string }

func (e *PreconditionError) Error() string { return e.Msg }

// AuthError reports a missing or invalid session.
type AuthError struct{ Msg string }

func (e *AuthError) Error() string { return e.Msg }

// ConflictError reports a request that clashes with current state, such as a
// duplicate active subscription.
type ConflictError struct{ Msg string }

func (e *ConflictError) Error() string { return e.Msg }

// StoreError wraps an underlying persistence failure. It is never retried
// automatically; the message surfaces to the caller as a 500.
type StoreError struct{ Err error }

func (e *StoreError) Error() string { return "store: " + e.Err.Error() }
func (e *StoreError) Unwrap() error { return e.Err }

// StockShortage describes one overdrawn product in a rejected order.
type StockShortage struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Requested int       `json:"requested"`
	Available int       `json:"available"`
}

// InsufficientStockError carries every overdrawn product of a rejected
// order, not just the first.
type InsufficientStockError struct {
	Shortages []StockShortage
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s: requested %d, available %d", s.Name, s.Requested, s.Available))
	}
	return "not enough stock available: " + strings.Join(parts, "; ")
}

// Validationf builds a ValidationError.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundf builds a NotFoundError.
func NotFoundf(format string, args ...interface{}) error {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

// Preconditionf builds a PreconditionError.
func Preconditionf(format string, args ...interface{}) error {
	return &PreconditionError{Msg: fmt.Sprintf(format, args...)}
}

// Authf builds an AuthError.
func Authf(format string, args ...interface{}) error {
	return &AuthError{Msg: fmt.Sprintf(format, args...)}
}

// Conflictf builds a ConflictError.
func Conflictf(format string, args ...interface{}) error {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

// Store wraps err as a StoreError. Errors already in the taxonomy pass
// through unchanged so transaction helpers can wrap indiscriminately.
func Store(err error) error {
	if err == nil || IsDomain(err) {
		return err
	}
	return &StoreError{Err: err}
}

// IsDomain reports whether err belongs to the taxonomy (excluding StoreError).
func IsDomain(err error) bool {
	var (
		ve *ValidationError
		nf *NotFoundError
		pe *PreconditionError
		ae *AuthError
		ce *ConflictError
		se *InsufficientStockError
	)
	return errors.As(err, &ve) || errors.As(err, &nf) || errors.As(err, &pe) ||
		errors.As(err, &ae) || errors.As(err, &ce) || errors.As(err, &se)
}

// Status maps an error to its HTTP status code.
func Status(err error) int {
	var (
		ve *ValidationError
		nf *NotFoundError
		pe *PreconditionError
		ae *AuthError
		ce *ConflictError
		se *InsufficientStockError
	)
	switch {
	case errors.As(err, &ve), errors.As(err, &pe), errors.As(err, &se):
		return http.StatusBadRequest
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &ae):
		return http.StatusUnauthorized
	case errors.As(err, &ce):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Shortages extracts the structured detail from an InsufficientStockError,
// or nil if err is anything else.
func Shortages(err error) []StockShortage {
	var se *InsufficientStockError
	if errors.As(err, &se) {
		return se.Shortages
	}
	return nil
}
