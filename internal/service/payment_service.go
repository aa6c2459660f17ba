package service

import (
	"context"
	"time"

	"github.com/cswni/stripe-server/config"
	"github.com/cswni/stripe-server/internal/domain"
	"github.com/cswni/stripe-server/internal/kafka"
	"github.com/cswni/stripe-server/internal/metrics"
	"github.com/cswni/stripe-server/internal/stripe"
	"github.com/cswni/stripe-server/pkg/logger"
)

// Flow labels used for metrics and events.
const (
	FlowPayment      = "payment"
	FlowSubscription = "subscription"
	FlowOnboarding   = "onboarding"
)

// PaymentSessionInput is the request for a one-off payment session. Price
// is a decimal string in major currency units; empty means one major unit.
type PaymentSessionInput struct {
	Email string
	Price string
}

// PaymentService orchestrates one-off payment sessions: resolve the
// customer, create a payment intent, then a customer-scoped ephemeral key.
type PaymentService struct {
	cfg       *config.Config
	resolver  CustomerResolver
	processor stripe.Client
	metrics   metrics.SessionMetrics
	producer  kafka.SessionProducer
	log       *logger.Logger
}

// NewPaymentService creates the one-off payment session orchestrator.
// producer may be nil; event publishing is then skipped.
func NewPaymentService(
	cfg *config.Config,
	resolver CustomerResolver,
	processor stripe.Client,
	sessionMetrics metrics.SessionMetrics,
	producer kafka.SessionProducer,
	log *logger.Logger,
) *PaymentService {
	if producer == nil {
		log.Warnw("Kafka producer is nil, session events will not be published")
	}
	return &PaymentService{
		cfg:       cfg,
		resolver:  resolver,
		processor: processor,
		metrics:   sessionMetrics,
		producer:  producer,
		log:       log,
	}
}

// CreateSession runs the one-off payment flow. The payment intent and the
// ephemeral key are a unit: if either call fails the whole request fails
// and no partial payload is returned.
func (s *PaymentService) CreateSession(ctx context.Context, input PaymentSessionInput) (*domain.PaymentSession, error) {
	customer, err := s.resolver.Resolve(ctx, input.Email)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	amount, err := domain.ParseMajorAmount(input.Price)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	intent, err := s.processor.CreatePaymentIntent(ctx, stripe.PaymentIntentInput{
		AmountMinor:             amount,
		Currency:                s.cfg.Stripe.Currency,
		CustomerID:              customer.ID,
		AutomaticPaymentMethods: true,
	})
	if err != nil {
		s.fail(err)
		return nil, err
	}

	keySecret, err := s.processor.CreateEphemeralKey(ctx, customer.ID, s.cfg.Stripe.APIVersion)
	if err != nil {
		// The intent already exists remotely, but a client secret without
		// its paired customer-scoped key is unusable; report the failure.
		s.fail(err)
		return nil, err
	}

	s.log.Infow("Payment session created",
		"customerID", customer.ID, "amount", intent.Amount, "currency", s.cfg.Stripe.Currency)
	s.metrics.IncSessionCreated(FlowPayment)
	s.metrics.ObservePaymentAmount(intent.Amount, s.cfg.Stripe.Currency)

	if s.producer != nil {
		go s.publishEvent(context.WithoutCancel(ctx), kafka.TopicPaymentSessionCreated, kafka.SessionEvent{
			Flow:        FlowPayment,
			CustomerID:  customer.ID,
			AmountMinor: intent.Amount,
			Currency:    s.cfg.Stripe.Currency,
		})
	}

	return &domain.PaymentSession{
		ClientSecret:       intent.ClientSecret,
		EphemeralKeySecret: keySecret,
		CustomerID:         customer.ID,
		PublishableKey:     s.cfg.Stripe.PublishableKey,
	}, nil
}

func (s *PaymentService) fail(err error) {
	s.metrics.IncSessionFailed(FlowPayment, domain.ErrorKind(err))
}

func (s *PaymentService) publishEvent(ctx context.Context, topic string, event kafka.SessionEvent) {
	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.producer.PublishSessionEvent(publishCtx, topic, event); err != nil {
		s.log.Errorw("Failed to publish session event", "topic", topic, "error", err)
	}
}
