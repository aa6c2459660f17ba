package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cswni/stripe-server/internal/service"
	"github.com/cswni/stripe-server/pkg/logger"
	"github.com/cswni/stripe-server/pkg/req"
	"github.com/cswni/stripe-server/pkg/res"
)

// PaymentHandler handles one-off payment session requests.
type PaymentHandler struct {
	service *service.PaymentService
	log     *logger.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(service *service.PaymentService, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log,
	}
}

// --- DTO ---

type CreatePaymentSessionRequest struct {
	Email string `json:"email" validate:"required,email"`
	Price string `json:"price" validate:"omitempty"`
}

type CreatePaymentSessionResponse struct {
	PaymentIntent  string `json:"paymentIntent"`
	EphemeralKey   string `json:"ephemeralKey"`
	Customer       string `json:"customer"`
	PublishableKey string `json:"publishableKey"`
}

// CreatePaymentSession handles POST /payment
func (h *PaymentHandler) CreatePaymentSession(c *gin.Context) {
	ctx := c.Request.Context()

	requestBody, err := req.Decode[CreatePaymentSessionRequest](c.Request.Body)
	if err != nil {
		h.log.Errorw("Failed to decode request body", "error", err)
		res.JsonResponse(c.Writer, res.ErrorResponse{Error: "invalid request format", Kind: "invalid_request"}, http.StatusUnprocessableEntity)
		c.Abort()
		return
	}

	if err := req.IsValid(requestBody); err != nil {
		h.log.Warnw("Request body validation failed", "error", err)
		res.JsonResponse(c.Writer, res.ErrorResponse{Error: "invalid request data", Kind: "invalid_request", Details: err.Error()}, http.StatusUnprocessableEntity)
		c.Abort()
		return
	}

	session, err := h.service.CreateSession(ctx, service.PaymentSessionInput{
		Email: requestBody.Email,
		Price: requestBody.Price,
	})
	if err != nil {
		h.log.Errorw("Failed to create payment session", "error", err)
		writeError(c, err)
		return
	}

	res.JsonResponse(c.Writer, CreatePaymentSessionResponse{
		PaymentIntent:  session.ClientSecret,
		EphemeralKey:   session.EphemeralKeySecret,
		Customer:       session.CustomerID,
		PublishableKey: session.PublishableKey,
	}, http.StatusOK)
}
