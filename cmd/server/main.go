package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cswni/stripe-server/config"
	"github.com/cswni/stripe-server/internal/api/rest"
	"github.com/cswni/stripe-server/internal/kafka"
	"github.com/cswni/stripe-server/internal/metrics"
	"github.com/cswni/stripe-server/internal/service"
	"github.com/cswni/stripe-server/internal/stripe"
	"github.com/cswni/stripe-server/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

var log *logger.Logger

func init() {
	// A missing .env file is fine; variables may come from the environment.
	_ = godotenv.Load()

	log = logger.New(logger.ParseLevel(os.Getenv("LOG_LEVEL")))
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		var missingErr *config.MissingEnvError
		if errors.As(err, &missingErr) {
			log.Fatalw("Configuration incomplete", "missing", missingErr.Vars)
		}
		log.Fatal("Failed to load configuration: %v", err)
	}

	// Prometheus registry and session metrics
	promRegistry := prometheus.NewRegistry()
	sessionMetrics := metrics.NewSessionMetrics(promRegistry, log)

	// Processor client
	stripeClient := stripe.NewClient(
		cfg.Stripe.SecretKey,
		time.Duration(cfg.Stripe.RequestTimeout)*time.Second,
		log,
	)

	// Kafka producer is optional; without brokers events are skipped.
	var sessionProducer kafka.SessionProducer
	if len(cfg.Kafka.Brokers) > 0 {
		sessionProducer, err = kafka.NewSessionProducer(cfg.Kafka.Brokers, log)
		if err != nil {
			log.Errorw("Failed to initialize Kafka producer, continuing without event publishing", "error", err)
			sessionProducer = nil
		} else {
			defer func() {
				if err := sessionProducer.Close(); err != nil {
					log.Errorw("Error closing Kafka producer", "error", err)
				}
			}()
		}
	}

	// Service layer
	customerResolver := service.NewCustomerService(stripeClient, log)
	paymentService := service.NewPaymentService(cfg, customerResolver, stripeClient, sessionMetrics, sessionProducer, log)
	subscriptionService := service.NewSubscriptionService(cfg, customerResolver, stripeClient, sessionMetrics, sessionProducer, log)
	onboardingService := service.NewOnboardingService(cfg, stripeClient, sessionMetrics, sessionProducer, log)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := rest.SetupRouter(cfg, paymentService, subscriptionService, onboardingService, promRegistry, log)
	server := rest.NewServer(router, cfg, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Infow("Shutdown signal received")

	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeout) * time.Second
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatal("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
