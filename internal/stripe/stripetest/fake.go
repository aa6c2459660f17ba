// Package stripetest provides an in-memory implementation of the processor
// client contract for tests.
package stripetest

import (
	"context"
	"fmt"
	"sync"

	"github.com/cswni/stripe-server/internal/domain"
	"github.com/cswni/stripe-server/internal/stripe"
)

// EphemeralKeyCall records one CreateEphemeralKey invocation.
type EphemeralKeyCall struct {
	CustomerID string
	APIVersion string
}

// Fake is an in-memory processor. Zero value is ready to use; customers
// created through it are visible to subsequent lookups unless EmptyLookups
// is set.
type Fake struct {
	mu  sync.Mutex
	seq int

	customers []domain.CustomerIdentity

	// EmptyLookups makes ListCustomersByEmail always return nothing,
	// simulating a lookup racing ahead of a concurrent create.
	EmptyLookups bool

	// SubscriptionWithoutPaymentIntent makes CreateSubscription return a
	// result whose expanded invoice carried no payment intent.
	SubscriptionWithoutPaymentIntent bool

	// Per-operation error injection.
	ListErr           error
	CreateCustomerErr error
	EphemeralKeyErr   error
	PaymentIntentErr  error
	SubscriptionErr   error
	AccountErr        error
	AccountLinkErr    error

	// Recorded calls.
	PaymentIntents []stripe.PaymentIntentInput
	EphemeralKeys  []EphemeralKeyCall
	Subscriptions  []stripe.SubscriptionInput
	Accounts       []string
	AccountLinks   []stripe.AccountLinkInput
}

var _ stripe.Client = (*Fake)(nil)

func (f *Fake) next() int {
	f.seq++
	return f.seq
}

// Customers returns a copy of the customers created so far.
func (f *Fake) Customers() []domain.CustomerIdentity {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.CustomerIdentity, len(f.customers))
	copy(out, f.customers)
	return out
}

func (f *Fake) ListCustomersByEmail(ctx context.Context, email string, limit int64) ([]domain.CustomerIdentity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	if f.EmptyLookups {
		return nil, nil
	}
	var out []domain.CustomerIdentity
	for _, c := range f.customers {
		if c.Email == email {
			out = append(out, c)
			if int64(len(out)) >= limit {
				break
			}
		}
	}
	return out, nil
}

func (f *Fake) CreateCustomer(ctx context.Context, email, name string) (domain.CustomerIdentity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateCustomerErr != nil {
		return domain.CustomerIdentity{}, f.CreateCustomerErr
	}
	customer := domain.CustomerIdentity{
		ID:    fmt.Sprintf("cus_fake_%03d", f.next()),
		Email: email,
	}
	f.customers = append(f.customers, customer)
	return customer, nil
}

func (f *Fake) CreateEphemeralKey(ctx context.Context, customerID, apiVersion string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.EphemeralKeyErr != nil {
		return "", f.EphemeralKeyErr
	}
	f.EphemeralKeys = append(f.EphemeralKeys, EphemeralKeyCall{CustomerID: customerID, APIVersion: apiVersion})
	return fmt.Sprintf("ek_fake_secret_%03d", f.next()), nil
}

func (f *Fake) CreatePaymentIntent(ctx context.Context, in stripe.PaymentIntentInput) (stripe.PaymentIntentResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PaymentIntentErr != nil {
		return stripe.PaymentIntentResult{}, f.PaymentIntentErr
	}
	f.PaymentIntents = append(f.PaymentIntents, in)
	return stripe.PaymentIntentResult{
		ClientSecret: fmt.Sprintf("pi_fake_%03d_secret", f.next()),
		Amount:       in.AmountMinor,
	}, nil
}

func (f *Fake) CreateSubscription(ctx context.Context, in stripe.SubscriptionInput) (stripe.SubscriptionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SubscriptionErr != nil {
		return stripe.SubscriptionResult{}, f.SubscriptionErr
	}
	f.Subscriptions = append(f.Subscriptions, in)
	result := stripe.SubscriptionResult{ID: fmt.Sprintf("sub_fake_%03d", f.next())}
	if !f.SubscriptionWithoutPaymentIntent {
		secret := fmt.Sprintf("pi_%s_secret", result.ID)
		result.PaymentIntentClientSecret = &secret
	}
	return result, nil
}

func (f *Fake) CreateConnectedAccount(ctx context.Context, accountType, email string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.AccountErr != nil {
		return "", f.AccountErr
	}
	accountID := fmt.Sprintf("acct_fake_%03d", f.next())
	f.Accounts = append(f.Accounts, accountID)
	return accountID, nil
}

func (f *Fake) CreateAccountLink(ctx context.Context, in stripe.AccountLinkInput) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.AccountLinkErr != nil {
		return "", f.AccountLinkErr
	}
	f.AccountLinks = append(f.AccountLinks, in)
	return fmt.Sprintf("https://connect.stripe.example/setup/%s", in.AccountID), nil
}
