package domain

// PaymentSession carries the tokens the client needs to complete a one-off
// payment locally. Created per request, single-use, never persisted.
type PaymentSession struct {
	ClientSecret       string
	EphemeralKeySecret string
	CustomerID         string
	PublishableKey     string
}

// SubscriptionSession carries the client secret of the first invoice's
// payment intent for a newly created, incomplete subscription.
type SubscriptionSession struct {
	CustomerID     string
	SubscriptionID string
	ClientSecret   string
}

// OnboardingSession points a freshly created connected account at its
// single-use, processor-expiring onboarding URL.
type OnboardingSession struct {
	AccountID string
	URL       string
}
