package stripe

import (
	"context"
	"time"

	"github.com/cswni/stripe-server/internal/domain"
	"github.com/cswni/stripe-server/pkg/logger"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

// PaymentIntentInput describes a payment intent to create.
type PaymentIntentInput struct {
	AmountMinor             int64
	Currency                string
	CustomerID              string
	AutomaticPaymentMethods bool
}

// PaymentIntentResult is the processor's answer to a payment intent request.
type PaymentIntentResult struct {
	ClientSecret string
	Amount       int64
}

// SubscriptionInput describes a subscription to create.
type SubscriptionInput struct {
	CustomerID                       string
	PriceID                          string
	Currency                         string
	PaymentBehavior                  string
	SaveDefaultPaymentMethod         bool
	ExpandLatestInvoicePaymentIntent bool
}

// SubscriptionResult is the processor's answer to a subscription request.
// PaymentIntentClientSecret is nil when the expanded invoice carried no
// payment intent; classifying that is the caller's job.
type SubscriptionResult struct {
	ID                        string
	PaymentIntentClientSecret *string
}

// AccountLinkInput describes an onboarding link to create.
type AccountLinkInput struct {
	AccountID  string
	RefreshURL string
	ReturnURL  string
	LinkType   string
}

// Client defines the operations this service requires from the remote
// payment processor. It is an injected capability: every call is a network
// request that may fail with a *domain.ProcessorError, or with
// domain.ErrProcessorTimeout when no response arrives in time. No call is
// retried locally.
type Client interface {
	ListCustomersByEmail(ctx context.Context, email string, limit int64) ([]domain.CustomerIdentity, error)
	CreateCustomer(ctx context.Context, email, name string) (domain.CustomerIdentity, error)
	CreateEphemeralKey(ctx context.Context, customerID, apiVersion string) (string, error)
	CreatePaymentIntent(ctx context.Context, in PaymentIntentInput) (PaymentIntentResult, error)
	CreateSubscription(ctx context.Context, in SubscriptionInput) (SubscriptionResult, error)
	CreateConnectedAccount(ctx context.Context, accountType, email string) (string, error)
	CreateAccountLink(ctx context.Context, in AccountLinkInput) (string, error)
}

// stripeClient implements Client on top of the Stripe SDK.
type stripeClient struct {
	client  *client.API
	timeout time.Duration
	log     *logger.Logger
}

// NewClient creates a new Stripe-backed processor client. Every remote call
// runs under the given per-call timeout.
func NewClient(apiKey string, timeout time.Duration, log *logger.Logger) Client {
	sc := &client.API{}
	sc.Init(apiKey, nil)
	return &stripeClient{
		client:  sc,
		timeout: timeout,
		log:     log,
	}
}

// ListCustomersByEmail returns at most limit customers matching email, in
// the processor's own order.
func (c *stripeClient) ListCustomersByEmail(ctx context.Context, email string, limit int64) ([]domain.CustomerIdentity, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := &stripe.CustomerListParams{
		Email: stripe.String(email),
	}
	params.Limit = stripe.Int64(limit)
	params.Context = ctx

	var customers []domain.CustomerIdentity
	iter := c.client.Customers.List(params)
	for iter.Next() {
		cus := iter.Customer()
		customers = append(customers, domain.CustomerIdentity{ID: cus.ID, Email: cus.Email})
		if int64(len(customers)) >= limit {
			break
		}
	}
	if err := iter.Err(); err != nil {
		return nil, c.classify("ListCustomersByEmail", err)
	}

	return customers, nil
}

// CreateCustomer creates a new customer with the given email and display name.
func (c *stripeClient) CreateCustomer(ctx context.Context, email, name string) (domain.CustomerIdentity, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := &stripe.CustomerParams{
		Email: stripe.String(email),
		Name:  stripe.String(name),
	}
	params.Context = ctx

	cus, err := c.client.Customers.New(params)
	if err != nil {
		return domain.CustomerIdentity{}, c.classify("CreateCustomer", err)
	}

	c.log.Infow("Stripe customer created", "customerID", cus.ID)
	return domain.CustomerIdentity{ID: cus.ID, Email: cus.Email}, nil
}

// CreateEphemeralKey issues a customer-scoped client credential pinned to
// the given API version.
func (c *stripeClient) CreateEphemeralKey(ctx context.Context, customerID, apiVersion string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := &stripe.EphemeralKeyParams{
		Customer:      stripe.String(customerID),
		StripeVersion: stripe.String(apiVersion),
	}
	params.Context = ctx

	key, err := c.client.EphemeralKeys.New(params)
	if err != nil {
		return "", c.classify("CreateEphemeralKey", err)
	}

	return key.Secret, nil
}

// CreatePaymentIntent creates a payment intent for the given amount,
// currency and customer.
func (c *stripeClient) CreatePaymentIntent(ctx context.Context, in PaymentIntentInput) (PaymentIntentResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(in.AmountMinor),
		Currency: stripe.String(in.Currency),
		Customer: stripe.String(in.CustomerID),
	}
	if in.AutomaticPaymentMethods {
		params.AutomaticPaymentMethods = &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		}
	}
	params.Context = ctx

	pi, err := c.client.PaymentIntents.New(params)
	if err != nil {
		return PaymentIntentResult{}, c.classify("CreatePaymentIntent", err)
	}

	c.log.Debugw("Stripe payment intent created", "amount", pi.Amount, "customerID", in.CustomerID)
	return PaymentIntentResult{ClientSecret: pi.ClientSecret, Amount: pi.Amount}, nil
}

// CreateSubscription creates a subscription and, when requested, expands
// the latest invoice's payment intent into the result.
func (c *stripeClient) CreateSubscription(ctx context.Context, in SubscriptionInput) (SubscriptionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := &stripe.SubscriptionParams{
		Customer: stripe.String(in.CustomerID),
		Items: []*stripe.SubscriptionItemsParams{
			{
				Price: stripe.String(in.PriceID),
			},
		},
		Currency:        stripe.String(in.Currency),
		PaymentBehavior: stripe.String(in.PaymentBehavior),
	}
	if in.SaveDefaultPaymentMethod {
		params.PaymentSettings = &stripe.SubscriptionPaymentSettingsParams{
			SaveDefaultPaymentMethod: stripe.String("on_subscription"),
		}
	}
	if in.ExpandLatestInvoicePaymentIntent {
		params.AddExpand("latest_invoice.payment_intent")
	}
	params.Context = ctx

	sub, err := c.client.Subscriptions.New(params)
	if err != nil {
		return SubscriptionResult{}, c.classify("CreateSubscription", err)
	}

	c.log.Infow("Stripe subscription created", "subscriptionID", sub.ID, "status", string(sub.Status))

	result := SubscriptionResult{ID: sub.ID}
	if sub.LatestInvoice != nil && sub.LatestInvoice.PaymentIntent != nil && sub.LatestInvoice.PaymentIntent.ClientSecret != "" {
		secret := sub.LatestInvoice.PaymentIntent.ClientSecret
		result.PaymentIntentClientSecret = &secret
	}

	return result, nil
}

// CreateConnectedAccount creates a new connected account. Accounts are a
// distinct namespace from customers; no dedup happens here or anywhere.
func (c *stripeClient) CreateConnectedAccount(ctx context.Context, accountType, email string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := &stripe.AccountParams{
		Type:  stripe.String(accountType),
		Email: stripe.String(email),
	}
	params.Context = ctx

	account, err := c.client.Accounts.New(params)
	if err != nil {
		return "", c.classify("CreateConnectedAccount", err)
	}

	c.log.Infow("Stripe connected account created", "accountID", account.ID)
	return account.ID, nil
}

// CreateAccountLink mints a single-use onboarding URL for an account.
func (c *stripeClient) CreateAccountLink(ctx context.Context, in AccountLinkInput) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := &stripe.AccountLinkParams{
		Account:    stripe.String(in.AccountID),
		RefreshURL: stripe.String(in.RefreshURL),
		ReturnURL:  stripe.String(in.ReturnURL),
		Type:       stripe.String(in.LinkType),
	}
	params.Context = ctx

	link, err := c.client.AccountLinks.New(params)
	if err != nil {
		return "", c.classify("CreateAccountLink", err)
	}

	return link.URL, nil
}
