package stripe

import (
	"context"
	"errors"
	"fmt"

	"github.com/cswni/stripe-server/internal/domain"
	"github.com/cswni/stripe-server/pkg/logger"

	"github.com/stripe/stripe-go/v78"
)

// classify maps a failed SDK call onto the error taxonomy: deadline expiry
// becomes domain.ErrProcessorTimeout so callers can weigh duplicate
// side effects before retrying; everything else is a *domain.ProcessorError
// carrying the remote status and code uninterpreted.
func (c *stripeClient) classify(operation string, err error) error {
	return classifyError(c.log, operation, err)
}

func classifyError(log *logger.Logger, operation string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		log.Errorw("Stripe request timed out", "operation", operation)
		return fmt.Errorf("%w: %s", domain.ErrProcessorTimeout, operation)
	}

	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		log.Errorw("Stripe API error",
			"operation", operation,
			"type", string(stripeErr.Type),
			"code", string(stripeErr.Code),
			"param", stripeErr.Param,
			"message", stripeErr.Msg,
			"request_id", stripeErr.RequestID,
			"status_code", stripeErr.HTTPStatusCode,
		)
		return &domain.ProcessorError{
			Type:       string(stripeErr.Type),
			Code:       string(stripeErr.Code),
			Message:    stripeErr.Msg,
			RequestID:  stripeErr.RequestID,
			HTTPStatus: stripeErr.HTTPStatusCode,
		}
	}

	log.Errorw("Non-Stripe error during Stripe operation", "operation", operation, "error", err)
	return &domain.ProcessorError{Message: err.Error()}
}
