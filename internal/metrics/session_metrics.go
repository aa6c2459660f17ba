package metrics

import (
	"github.com/cswni/stripe-server/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SessionMetrics records the outcome of session-creation flows.
type SessionMetrics interface {
	IncSessionCreated(flow string)
	IncSessionFailed(flow, kind string)
	ObservePaymentAmount(amountMinor int64, currency string)
}

type sessionMetrics struct {
	log             *logger.Logger
	sessionsCreated *prometheus.CounterVec
	sessionsFailed  *prometheus.CounterVec
	paymentAmount   *prometheus.HistogramVec
}

// NewSessionMetrics creates session metrics on the given registry.
func NewSessionMetrics(registry *prometheus.Registry, log *logger.Logger) SessionMetrics {
	sessionsCreated := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sessions_created_total",
			Help: "The total number of successfully created sessions",
		},
		[]string{"flow"},
	)

	sessionsFailed := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sessions_failed_total",
			Help: "The total number of failed session requests by error kind",
		},
		[]string{"flow", "kind"},
	)

	paymentAmount := promauto.With(registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payment_session_amount_minor_units",
			Help:    "Distribution of one-off payment amounts in minor units",
			Buckets: prometheus.ExponentialBuckets(100, 10, 5), // 100, 1000, ..., 1000000
		},
		[]string{"currency"},
	)

	return &sessionMetrics{
		log:             log,
		sessionsCreated: sessionsCreated,
		sessionsFailed:  sessionsFailed,
		paymentAmount:   paymentAmount,
	}
}

// IncSessionCreated increments the created-sessions counter for a flow
func (m *sessionMetrics) IncSessionCreated(flow string) {
	m.sessionsCreated.WithLabelValues(flow).Inc()
}

// IncSessionFailed increments the failed-sessions counter for a flow
func (m *sessionMetrics) IncSessionFailed(flow, kind string) {
	m.sessionsFailed.WithLabelValues(flow, kind).Inc()
}

// ObservePaymentAmount records a one-off payment amount
func (m *sessionMetrics) ObservePaymentAmount(amountMinor int64, currency string) {
	m.paymentAmount.WithLabelValues(currency).Observe(float64(amountMinor))
}
