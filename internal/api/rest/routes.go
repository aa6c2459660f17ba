package rest

import (
	"github.com/cswni/stripe-server/config"
	"github.com/cswni/stripe-server/internal/api/rest/handlers"
	"github.com/cswni/stripe-server/internal/middleware"
	"github.com/cswni/stripe-server/internal/service"
	"github.com/cswni/stripe-server/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter wires the Gin router with middleware and every route.
func SetupRouter(
	cfg *config.Config,
	paymentService *service.PaymentService,
	subscriptionService *service.SubscriptionService,
	onboardingService *service.OnboardingService,
	registry *prometheus.Registry,
	log *logger.Logger,
) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(gin.Recovery())

	paymentHandler := handlers.NewPaymentHandler(paymentService, log)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService, log)
	onboardingHandler := handlers.NewOnboardingHandler(onboardingService, log)
	redirectHandler := handlers.NewRedirectHandler(cfg.App.DeepLink, log)

	// Liveness and redirect cannot fail under normal operation.
	r.GET("/", handlers.Liveness)
	r.GET("/health", handlers.HealthCheck)
	r.GET("/redirect", redirectHandler.Redirect)

	// Prometheus exposition
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Session flows
	r.POST("/payment", paymentHandler.CreatePaymentSession)
	r.POST("/subscription", subscriptionHandler.CreateSubscriptionSession)
	r.POST("/account-link", onboardingHandler.CreateOnboardingSession)

	log.Infow("API routes successfully configured")
	return r
}
