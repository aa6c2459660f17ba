package domain

import (
	"errors"
	"fmt"
)

// Application errors
var (
	// ErrInvalidInput invalid request data
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidPrice the caller-supplied price did not yield a payment
	// intent on subscription creation (e.g. a zero-amount price)
	ErrInvalidPrice = errors.New("price yields no payment intent")

	// ErrProcessorTimeout the processor did not respond within the bounded
	// interval; retrying may duplicate side effects
	ErrProcessorTimeout = errors.New("processor timeout")
)

// ProcessorError is any failure signaled by the remote payment processor.
// The remote status and code are attached uninterpreted; it is never
// retried locally.
type ProcessorError struct {
	Type       string
	Code       string
	Message    string
	RequestID  string
	HTTPStatus int
}

func (e *ProcessorError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("processor error: %s (type=%s code=%s status=%d)", e.Message, e.Type, e.Code, e.HTTPStatus)
	}
	return fmt.Sprintf("processor error: %s", e.Message)
}

// ErrorKind maps an error to its machine-readable kind for responses,
// metrics and logs.
func ErrorKind(err error) string {
	var pErr *ProcessorError
	switch {
	case errors.Is(err, ErrProcessorTimeout):
		return "processor_timeout"
	case errors.Is(err, ErrInvalidPrice):
		return "invalid_price"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_request"
	case errors.As(err, &pErr):
		return "processor_error"
	default:
		return "internal"
	}
}
