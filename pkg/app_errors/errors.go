package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// kind sentinels, matched with errors.Is
var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("not found")
	ErrGateway       = errors.New("gateway error")
	ErrConfiguration = errors.New("configuration error")
	ErrExhausted     = errors.New("retries exhausted")
)

var (
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
	ErrShowtimeNotFound = fmt.Errorf("showtime %w", ErrNotFound)
	ErrBookingNotFound  = fmt.Errorf("booking %w", ErrNotFound)

	ErrInvalidInput         = fmt.Errorf("invalid input: %w", ErrValidation)
	ErrInvalidPaymentStatus = fmt.Errorf("invalid payment status: %w", ErrValidation)
	ErrInvalidSignature     = fmt.Errorf("invalid gateway signature: %w", ErrValidation)
	ErrAmountMismatch       = fmt.Errorf("notified amount does not match booking total: %w", ErrValidation)
	ErrGatewayMismatch      = fmt.Errorf("gateway does not match booking payment method: %w", ErrValidation)
	ErrDuplicateOrderID     = fmt.Errorf("order id already used, mint a new one: %w", ErrValidation)
	ErrUnverifiedPayment    = fmt.Errorf("gateway booking status requires verified gateway evidence: %w", ErrValidation)
	ErrEmailTaken           = fmt.Errorf("email already registered: %w", ErrValidation)
	ErrBookingMismatch      = fmt.Errorf("payment belongs to another booking: %w", ErrValidation)

	// ErrBookingNotPending is returned by the ledger when a conditional
	// update found no pending row.
	ErrBookingNotPending    = errors.New("booking is not pending")
	ErrDuplicateBookingCode = errors.New("booking code already taken")
	ErrInternalServerError  = errors.New("internal server error")
)

type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// GatewayError relays a non-success answer from a payment gateway.
type GatewayError struct {
	Gateway    string
	StatusCode int
	ResultCode int
	Message    string
	Err        error
}

func (e *GatewayError) Error() string {
	msg := fmt.Sprintf("%s gateway error (status %d, result %d): %s", e.Gateway, e.StatusCode, e.ResultCode, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *GatewayError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrGateway, e.Err}
	}
	return []error{ErrGateway}
}

// ConfigurationError means gateway credentials are absent from both the
// environment and the request.
type ConfigurationError struct {
	Gateway string
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s gateway is not configured: missing %s", e.Gateway, strings.Join(e.Missing, ", "))
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

type ExhaustedError struct {
	Operation string
	Attempts  int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s: gave up after %d attempts", e.Operation, e.Attempts)
}

func (e *ExhaustedError) Unwrap() error { return ErrExhausted }
