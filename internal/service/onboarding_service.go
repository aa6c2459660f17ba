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

const (
	accountTypeStandard       = "standard"
	linkTypeAccountOnboarding = "account_onboarding"
)

// OnboardingSessionInput is the request for a connected-account
// onboarding session.
type OnboardingSessionInput struct {
	Email string
}

// OnboardingService orchestrates connected-account onboarding. It
// deliberately does not use the customer resolver: onboarding accounts are
// a distinct namespace from paying customers, and every call mints a new
// account.
type OnboardingService struct {
	cfg       *config.Config
	processor stripe.Client
	metrics   metrics.SessionMetrics
	producer  kafka.SessionProducer
	log       *logger.Logger
}

// NewOnboardingService creates the onboarding session orchestrator.
// producer may be nil; event publishing is then skipped.
func NewOnboardingService(
	cfg *config.Config,
	processor stripe.Client,
	sessionMetrics metrics.SessionMetrics,
	producer kafka.SessionProducer,
	log *logger.Logger,
) *OnboardingService {
	return &OnboardingService{
		cfg:       cfg,
		processor: processor,
		metrics:   sessionMetrics,
		producer:  producer,
		log:       log,
	}
}

// CreateSession creates a standard connected account for the email and a
// single-use onboarding link for it.
func (s *OnboardingService) CreateSession(ctx context.Context, input OnboardingSessionInput) (*domain.OnboardingSession, error) {
	if input.Email == "" {
		err := fmt.Errorf("%w: email is empty", domain.ErrInvalidInput)
		s.fail(err)
		return nil, err
	}

	accountID, err := s.processor.CreateConnectedAccount(ctx, accountTypeStandard, input.Email)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	url, err := s.processor.CreateAccountLink(ctx, stripe.AccountLinkInput{
		AccountID:  accountID,
		RefreshURL: s.cfg.Onboarding.RefreshURL,
		ReturnURL:  s.cfg.Onboarding.ReturnURL,
		LinkType:   linkTypeAccountOnboarding,
	})
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.log.Infow("Onboarding session created", "accountID", accountID)
	s.metrics.IncSessionCreated(FlowOnboarding)

	if s.producer != nil {
		go s.publishEvent(context.WithoutCancel(ctx), kafka.SessionEvent{
			Flow:      FlowOnboarding,
			AccountID: accountID,
		})
	}

	return &domain.OnboardingSession{
		AccountID: accountID,
		URL:       url,
	}, nil
}

func (s *OnboardingService) fail(err error) {
	s.metrics.IncSessionFailed(FlowOnboarding, domain.ErrorKind(err))
}

func (s *OnboardingService) publishEvent(ctx context.Context, event kafka.SessionEvent) {
	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.producer.PublishSessionEvent(publishCtx, kafka.TopicOnboardingSessionCreated, event); err != nil {
		s.log.Errorw("Failed to publish session event", "topic", kafka.TopicOnboardingSessionCreated, "error", err)
	}
}
