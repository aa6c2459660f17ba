package service

import (
	"context"
	"testing"

	"github.com/cswni/stripe-server/internal/domain"
	"github.com/cswni/stripe-server/internal/stripe/stripetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPaymentService(fake *stripetest.Fake) *PaymentService {
	log := testLogger()
	return NewPaymentService(testConfig(), NewCustomerService(fake, log), fake, testMetrics(), nil, log)
}

func TestCreatePaymentSession(t *testing.T) {
	fake := &stripetest.Fake{}
	svc := newPaymentService(fake)

	session, err := svc.CreateSession(context.Background(), PaymentSessionInput{
		Email: "payer@example.com",
		Price: "25.00",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, session.ClientSecret)
	assert.NotEmpty(t, session.EphemeralKeySecret)
	assert.Equal(t, "pk_test_dummy", session.PublishableKey)

	customers := fake.Customers()
	require.Len(t, customers, 1)
	assert.Equal(t, customers[0].ID, session.CustomerID)

	require.Len(t, fake.PaymentIntents, 1)
	intent := fake.PaymentIntents[0]
	assert.Equal(t, int64(2500), intent.AmountMinor)
	assert.Equal(t, "eur", intent.Currency)
	assert.Equal(t, session.CustomerID, intent.CustomerID)
	assert.True(t, intent.AutomaticPaymentMethods)

	require.Len(t, fake.EphemeralKeys, 1)
	key := fake.EphemeralKeys[0]
	assert.Equal(t, session.CustomerID, key.CustomerID, "ephemeral key must be scoped to the session's customer")
	assert.Equal(t, "2025-02-24.acacia", key.APIVersion)
}

func TestCreatePaymentSessionDefaultsMissingPrice(t *testing.T) {
	fake := &stripetest.Fake{}
	svc := newPaymentService(fake)

	_, err := svc.CreateSession(context.Background(), PaymentSessionInput{Email: "payer@example.com"})
	require.NoError(t, err)

	require.Len(t, fake.PaymentIntents, 1)
	assert.Equal(t, domain.DefaultMinorAmount, fake.PaymentIntents[0].AmountMinor)
}

func TestCreatePaymentSessionRejectsNegativePrice(t *testing.T) {
	fake := &stripetest.Fake{}
	svc := newPaymentService(fake)

	session, err := svc.CreateSession(context.Background(), PaymentSessionInput{
		Email: "payer@example.com",
		Price: "-5",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, session)
	assert.Empty(t, fake.PaymentIntents, "no intent is created for a rejected price")
}

func TestCreatePaymentSessionEphemeralKeyFailure(t *testing.T) {
	fake := &stripetest.Fake{
		EphemeralKeyErr: &domain.ProcessorError{Message: "ephemeral keys unavailable"},
	}
	svc := newPaymentService(fake)

	session, err := svc.CreateSession(context.Background(), PaymentSessionInput{
		Email: "payer@example.com",
		Price: "10",
	})
	require.Error(t, err)
	assert.Nil(t, session, "a session without its ephemeral key must not be returned")
	assert.Len(t, fake.PaymentIntents, 1, "the intent was already created when the key call failed")
}

func TestCreatePaymentSessionIntentFailure(t *testing.T) {
	fake := &stripetest.Fake{
		PaymentIntentErr: &domain.ProcessorError{Type: "api_error", Message: "boom"},
	}
	svc := newPaymentService(fake)

	session, err := svc.CreateSession(context.Background(), PaymentSessionInput{
		Email: "payer@example.com",
		Price: "10",
	})
	require.Error(t, err)
	assert.Nil(t, session)
	assert.Empty(t, fake.EphemeralKeys, "no key is minted after a failed intent")
}
