package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cswni/stripe-server/internal/service"
	"github.com/cswni/stripe-server/pkg/logger"
	"github.com/cswni/stripe-server/pkg/req"
	"github.com/cswni/stripe-server/pkg/res"
)

// SubscriptionHandler handles subscription session requests.
type SubscriptionHandler struct {
	service *service.SubscriptionService
	log     *logger.Logger
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(service *service.SubscriptionService, log *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		service: service,
		log:     log,
	}
}

// --- DTO ---

type CreateSubscriptionSessionRequest struct {
	Email string `json:"email" validate:"required,email"`
	Price string `json:"price" validate:"required"`
}

type CreateSubscriptionSessionResponse struct {
	Customer       string `json:"customer"`
	SubscriptionID string `json:"subscriptionId"`
	ClientSecret   string `json:"clientSecret"`
}

// CreateSubscriptionSession handles POST /subscription
func (h *SubscriptionHandler) CreateSubscriptionSession(c *gin.Context) {
	ctx := c.Request.Context()

	requestBody, err := req.Decode[CreateSubscriptionSessionRequest](c.Request.Body)
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

	session, err := h.service.CreateSession(ctx, service.SubscriptionSessionInput{
		Email:   requestBody.Email,
		PriceID: requestBody.Price,
	})
	if err != nil {
		h.log.Errorw("Failed to create subscription session", "error", err)
		writeError(c, err)
		return
	}

	res.JsonResponse(c.Writer, CreateSubscriptionSessionResponse{
		Customer:       session.CustomerID,
		SubscriptionID: session.SubscriptionID,
		ClientSecret:   session.ClientSecret,
	}, http.StatusOK)
}
