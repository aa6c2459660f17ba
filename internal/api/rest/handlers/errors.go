package handlers

import (
	"errors"
	"net/http"

	"github.com/cswni/stripe-server/internal/domain"
	"github.com/cswni/stripe-server/pkg/res"
	"github.com/gin-gonic/gin"
)

// writeError maps a flow error to a status and machine-readable kind.
// Validation and price problems are the caller's fault; processor failures
// and timeouts are reported as upstream conditions.
func writeError(c *gin.Context, err error) {
	kind := domain.ErrorKind(err)

	status := http.StatusInternalServerError
	message := "internal server error"

	var pErr *domain.ProcessorError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusUnprocessableEntity
		message = "invalid request data"
	case errors.Is(err, domain.ErrInvalidPrice):
		status = http.StatusUnprocessableEntity
		message = "price does not yield a payable invoice"
	case errors.Is(err, domain.ErrProcessorTimeout):
		status = http.StatusGatewayTimeout
		message = "payment processor timed out"
	case errors.As(err, &pErr):
		status = http.StatusBadGateway
		message = "payment processor rejected the request"
		if pErr.Message != "" {
			message = pErr.Message
		}
	}

	res.JsonResponse(c.Writer, res.ErrorResponse{Error: message, Kind: kind}, status)
	c.Abort()
}
