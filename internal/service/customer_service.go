package service

import (
	"context"
	"fmt"

	"github.com/cswni/stripe-server/internal/domain"
	"github.com/cswni/stripe-server/internal/stripe"
	"github.com/cswni/stripe-server/pkg/logger"
)

// defaultCustomerName is the display name given to customers created lazily
// on first observation of an email.
const defaultCustomerName = "SDK Customer"

// CustomerResolver resolves an email to one canonical customer identity.
type CustomerResolver interface {
	// Resolve looks the email up at the processor and returns the first
	// match, creating the customer when none exists. Two concurrent
	// resolutions of the same unseen email may both observe an empty
	// lookup and both create, yielding two identities for one email;
	// remediation would need processor-side idempotency, so the race is
	// left in place rather than papered over with a process-local lock.
	Resolve(ctx context.Context, email string) (domain.CustomerIdentity, error)
}

type customerService struct {
	processor stripe.Client
	log       *logger.Logger
}

// NewCustomerService creates the find-or-create customer resolver.
func NewCustomerService(processor stripe.Client, log *logger.Logger) CustomerResolver {
	return &customerService{
		processor: processor,
		log:       log,
	}
}

func (s *customerService) Resolve(ctx context.Context, email string) (domain.CustomerIdentity, error) {
	if email == "" {
		return domain.CustomerIdentity{}, fmt.Errorf("%w: email is empty", domain.ErrInvalidInput)
	}

	customers, err := s.processor.ListCustomersByEmail(ctx, email, 1)
	if err != nil {
		return domain.CustomerIdentity{}, err
	}
	if len(customers) > 0 {
		s.log.Debugw("Found existing customer", "customerID", customers[0].ID)
		return customers[0], nil
	}

	s.log.Infow("Customer not found, creating a new one", "email", email)
	return s.processor.CreateCustomer(ctx, email, defaultCustomerName)
}
