package service

import (
	"github.com/cswni/stripe-server/config"
	"github.com/cswni/stripe-server/internal/metrics"
	"github.com/cswni/stripe-server/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
)

func testConfig() *config.Config {
	return &config.Config{
		Stripe: config.StripeConfig{
			SecretKey:      "sk_test_dummy",
			PublishableKey: "pk_test_dummy",
			APIVersion:     "2025-02-24.acacia",
			Currency:       "eur",
			RequestTimeout: 15,
		},
		Onboarding: config.OnboardingConfig{
			RefreshURL: "https://example.com/refresh",
			ReturnURL:  "https://example.com/return",
		},
		App: config.AppConfig{
			DeepLink: "sdkapp://stripe-redirect",
		},
	}
}

func testMetrics() metrics.SessionMetrics {
	return metrics.NewSessionMetrics(prometheus.NewRegistry(), testLogger())
}

func testLogger() *logger.Logger {
	return logger.New(logger.ERROR)
}
