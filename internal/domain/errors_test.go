package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "timeout", err: fmt.Errorf("%w: create payment intent", ErrProcessorTimeout), want: "processor_timeout"},
		{name: "invalid price", err: fmt.Errorf("%w: price %q", ErrInvalidPrice, "price_123"), want: "invalid_price"},
		{name: "invalid input", err: fmt.Errorf("%w: email is required", ErrInvalidInput), want: "invalid_request"},
		{name: "processor error", err: &ProcessorError{Type: "invalid_request_error", Code: "resource_missing", Message: "no such price"}, want: "processor_error"},
		{name: "wrapped processor error", err: fmt.Errorf("create subscription: %w", &ProcessorError{Message: "boom"}), want: "processor_error"},
		{name: "anything else", err: errors.New("disk on fire"), want: "internal"},
		{name: "nil", err: nil, want: "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorKind(tt.err))
		})
	}
}

func TestProcessorErrorString(t *testing.T) {
	err := &ProcessorError{Type: "api_error", Code: "rate_limit", Message: "slow down", HTTPStatus: 429}
	assert.Contains(t, err.Error(), "slow down")
	assert.Contains(t, err.Error(), "rate_limit")

	bare := &ProcessorError{Message: "connection reset"}
	assert.Equal(t, "processor error: connection reset", bare.Error())
}
