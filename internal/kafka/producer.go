package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cswni/stripe-server/pkg/logger"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// Topics for session lifecycle events.
const (
	TopicPaymentSessionCreated      = "payment_session.created"
	TopicSubscriptionSessionCreated = "subscription_session.created"
	TopicOnboardingSessionCreated   = "onboarding_session.created"
)

// SessionEvent is published after a session has been successfully created.
type SessionEvent struct {
	ID             string    `json:"id"`
	Flow           string    `json:"flow"`
	CustomerID     string    `json:"customer_id,omitempty"`
	SubscriptionID string    `json:"subscription_id,omitempty"`
	AccountID      string    `json:"account_id,omitempty"`
	AmountMinor    int64     `json:"amount_minor,omitempty"`
	Currency       string    `json:"currency,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// SessionProducer publishes session events. Publishing is best-effort and
// happens after the response has been decided; a publish failure never
// fails a request.
type SessionProducer interface {
	PublishSessionEvent(ctx context.Context, topic string, event SessionEvent) error
	Close() error
}

type kafkaSessionProducer struct {
	producer sarama.SyncProducer
	log      *logger.Logger
}

// NewSessionProducer creates a producer connected to the given brokers.
func NewSessionProducer(brokers []string, log *logger.Logger) (SessionProducer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are not configured")
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_3_0_0
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("kafka: failed to create producer: %w", err)
	}

	log.Infow("Kafka producer initialized", "brokers", brokers)
	return NewSessionProducerFromSync(producer, log), nil
}

// NewSessionProducerFromSync wraps an existing sarama producer. Used by
// tests with sarama mocks.
func NewSessionProducerFromSync(producer sarama.SyncProducer, log *logger.Logger) SessionProducer {
	return &kafkaSessionProducer{
		producer: producer,
		log:      log,
	}
}

// PublishSessionEvent marshals the event to JSON and sends it to the topic.
// The customer (or account) id keys the message so events for one identity
// land in one partition.
func (p *kafkaSessionProducer) PublishSessionEvent(ctx context.Context, topic string, event SessionEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	messageValue, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: failed to marshal session event: %w", err)
	}

	key := event.CustomerID
	if key == "" {
		key = event.AccountID
	}
	if key == "" {
		key = event.ID
	}

	message := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(messageValue),
		Headers: []sarama.RecordHeader{
			{
				Key:   []byte("event_type"),
				Value: []byte(topic),
			},
		},
		Timestamp: event.Timestamp,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("kafka: failed to publish session event: %w", err)
	}

	p.log.Infow("Published session event",
		"topic", topic, "flow", event.Flow, "partition", partition, "offset", offset)
	return nil
}

// Close closes the underlying producer.
func (p *kafkaSessionProducer) Close() error {
	return p.producer.Close()
}
