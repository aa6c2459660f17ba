package stripe

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cswni/stripe-server/internal/domain"
	"github.com/cswni/stripe-server/pkg/logger"

	stripego "github.com/stripe/stripe-go/v78"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyErrorDeadline(t *testing.T) {
	log := logger.New(logger.ERROR)

	err := classifyError(log, "create payment intent", context.DeadlineExceeded)
	assert.ErrorIs(t, err, domain.ErrProcessorTimeout)

	wrapped := fmt.Errorf("request failed: %w", context.DeadlineExceeded)
	err = classifyError(log, "create payment intent", wrapped)
	assert.ErrorIs(t, err, domain.ErrProcessorTimeout)
}

func TestClassifyErrorStripeError(t *testing.T) {
	log := logger.New(logger.ERROR)

	sdkErr := &stripego.Error{
		Type:           stripego.ErrorTypeInvalidRequest,
		Code:           stripego.ErrorCodeResourceMissing,
		Msg:            "No such price: price_gone",
		RequestID:      "req_abc123",
		HTTPStatusCode: 404,
	}

	err := classifyError(log, "create subscription", sdkErr)
	var pErr *domain.ProcessorError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, string(stripego.ErrorTypeInvalidRequest), pErr.Type)
	assert.Equal(t, string(stripego.ErrorCodeResourceMissing), pErr.Code)
	assert.Equal(t, "No such price: price_gone", pErr.Message)
	assert.Equal(t, "req_abc123", pErr.RequestID)
	assert.Equal(t, 404, pErr.HTTPStatus)
}

func TestClassifyErrorGeneric(t *testing.T) {
	log := logger.New(logger.ERROR)

	err := classifyError(log, "list customers", errors.New("connection reset by peer"))
	var pErr *domain.ProcessorError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, "connection reset by peer", pErr.Message)
	assert.Empty(t, pErr.Code)
	assert.NotErrorIs(t, err, domain.ErrProcessorTimeout)
}
