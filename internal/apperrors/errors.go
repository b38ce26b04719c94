package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the actor lacks the capability for the attempted action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates a lost update was detected; the caller must retry the
// whole transition rather than resume partial state.
var ErrConflict = errors.New("concurrency conflict")

// ErrNotPosted indicates a void was attempted on an entry that is not posted.
var ErrNotPosted = errors.New("entry is not posted")

// ErrAlreadyVoided indicates a void was attempted on an already voided entry.
var ErrAlreadyVoided = errors.New("entry already voided")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ConversionError is a fatal conversion failure: a missing or invalid rate,
// or a violated base-currency invariant. The transition that triggered the
// conversion aborts and the entry stays in its prior state.
type ConversionError struct {
	CurrencyID string
	Reason     string
}

func (e *ConversionError) Error() string {
	if e.CurrencyID == "" {
		return fmt.Sprintf("conversion error: %s", e.Reason)
	}
	return fmt.Sprintf("conversion error for currency %s: %s", e.CurrencyID, e.Reason)
}

// NewConversionError builds a ConversionError for the given currency.
func NewConversionError(currencyID, reason string) *ConversionError {
	return &ConversionError{CurrencyID: currencyID, Reason: reason}
}

// InsufficientBalanceError carries the computed amounts so the caller can
// explain the failure without the core leaking storage internals.
type InsufficientBalanceError struct {
	AccountID string
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance on account %s: required %s, available %s",
		e.AccountID, e.Required.StringFixed(2), e.Available.StringFixed(2))
}

// AppError wraps an underlying error with an HTTP-ish status code and message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
