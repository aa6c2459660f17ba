package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cswni/stripe-server/config"
	"github.com/cswni/stripe-server/internal/domain"
	"github.com/cswni/stripe-server/internal/kafka"
	"github.com/cswni/stripe-server/internal/metrics"
	"github.com/cswni/stripe-server/internal/stripe"
	"github.com/cswni/stripe-server/pkg/logger"
)

// paymentBehaviorDefaultIncomplete creates the subscription in an
// incomplete state pending client-side payment confirmation.
const paymentBehaviorDefaultIncomplete = "default_incomplete"

// SubscriptionSessionInput is the request for a subscription session.
// PriceID is a processor-side price identifier, not an amount.
type SubscriptionSessionInput struct {
	Email   string
	PriceID string
}

// SubscriptionService orchestrates subscription sessions.
type SubscriptionService struct {
	cfg       *config.Config
	resolver  CustomerResolver
	processor stripe.Client
	metrics   metrics.SessionMetrics
	producer  kafka.SessionProducer
	log       *logger.Logger
}

// NewSubscriptionService creates the subscription session orchestrator.
// producer may be nil; event publishing is then skipped.
func NewSubscriptionService(
	cfg *config.Config,
	resolver CustomerResolver,
	processor stripe.Client,
	sessionMetrics metrics.SessionMetrics,
	producer kafka.SessionProducer,
	log *logger.Logger,
) *SubscriptionService {
	return &SubscriptionService{
		cfg:       cfg,
		resolver:  resolver,
		processor: processor,
		metrics:   sessionMetrics,
		producer:  producer,
		log:       log,
	}
}

// CreateSession resolves the customer and creates an incomplete
// subscription whose first invoice's payment intent secret is handed to the
// client for confirmation.
func (s *SubscriptionService) CreateSession(ctx context.Context, input SubscriptionSessionInput) (*domain.SubscriptionSession, error) {
	if input.PriceID == "" {
		err := fmt.Errorf("%w: price identifier is empty", domain.ErrInvalidInput)
		s.fail(err)
		return nil, err
	}

	customer, err := s.resolver.Resolve(ctx, input.Email)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	result, err := s.processor.CreateSubscription(ctx, stripe.SubscriptionInput{
		CustomerID:                       customer.ID,
		PriceID:                          input.PriceID,
		Currency:                         s.cfg.Stripe.Currency,
		PaymentBehavior:                  paymentBehaviorDefaultIncomplete,
		SaveDefaultPaymentMethod:         true,
		ExpandLatestInvoicePaymentIntent: true,
	})
	if err != nil {
		s.fail(err)
		return nil, err
	}

	if result.PaymentIntentClientSecret == nil {
		// The expansion yielded no payment intent; the supplied price does
		// not produce a payable first invoice.
		err := fmt.Errorf("%w: price %q", domain.ErrInvalidPrice, input.PriceID)
		s.fail(err)
		return nil, err
	}

	s.log.Infow("Subscription session created",
		"customerID", customer.ID, "subscriptionID", result.ID, "priceID", input.PriceID)
	s.metrics.IncSessionCreated(FlowSubscription)

	if s.producer != nil {
		go s.publishEvent(context.WithoutCancel(ctx), kafka.SessionEvent{
			Flow:           FlowSubscription,
			CustomerID:     customer.ID,
			SubscriptionID: result.ID,
			Currency:       s.cfg.Stripe.Currency,
		})
	}

	return &domain.SubscriptionSession{
		CustomerID:     customer.ID,
		SubscriptionID: result.ID,
		ClientSecret:   *result.PaymentIntentClientSecret,
	}, nil
}

func (s *SubscriptionService) fail(err error) {
	s.metrics.IncSessionFailed(FlowSubscription, domain.ErrorKind(err))
}

func (s *SubscriptionService) publishEvent(ctx context.Context, event kafka.SessionEvent) {
	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.producer.PublishSessionEvent(publishCtx, kafka.TopicSubscriptionSessionCreated, event); err != nil {
		s.log.Errorw("Failed to publish session event", "topic", kafka.TopicSubscriptionSessionCreated, "error", err)
	}
}
