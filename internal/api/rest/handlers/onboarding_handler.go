package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cswni/stripe-server/internal/service"
	"github.com/cswni/stripe-server/pkg/logger"
	"github.com/cswni/stripe-server/pkg/req"
	"github.com/cswni/stripe-server/pkg/res"
)

// OnboardingHandler handles connected-account onboarding requests.
type OnboardingHandler struct {
	service *service.OnboardingService
	log     *logger.Logger
}

// NewOnboardingHandler creates a new OnboardingHandler.
func NewOnboardingHandler(service *service.OnboardingService, log *logger.Logger) *OnboardingHandler {
	return &OnboardingHandler{
		service: service,
		log:     log,
	}
}

// --- DTO ---

type CreateOnboardingSessionRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type CreateOnboardingSessionResponse struct {
	URL string `json:"url"`
}

// CreateOnboardingSession handles POST /account-link
func (h *OnboardingHandler) CreateOnboardingSession(c *gin.Context) {
	ctx := c.Request.Context()

	requestBody, err := req.Decode[CreateOnboardingSessionRequest](c.Request.Body)
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

	session, err := h.service.CreateSession(ctx, service.OnboardingSessionInput{
		Email: requestBody.Email,
	})
	if err != nil {
		h.log.Errorw("Failed to create onboarding session", "error", err)
		writeError(c, err)
		return
	}

	res.JsonResponse(c.Writer, CreateOnboardingSessionResponse{URL: session.URL}, http.StatusOK)
}
