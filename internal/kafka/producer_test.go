package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/cswni/stripe-server/pkg/logger"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logger.Logger {
	return logger.New(logger.ERROR)
}

func TestPublishSessionEvent(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	mock.ExpectSendMessageWithCheckerFunctionAndSucceed(func(value []byte) error {
		var event SessionEvent
		if err := json.Unmarshal(value, &event); err != nil {
			return err
		}
		if event.Flow != "payment" {
			return errors.New("unexpected flow")
		}
		if event.ID == "" {
			return errors.New("event id was not filled in")
		}
		if event.Timestamp.IsZero() {
			return errors.New("event timestamp was not filled in")
		}
		return nil
	})

	producer := NewSessionProducerFromSync(mock, testLogger())
	err := producer.PublishSessionEvent(context.Background(), TopicPaymentSessionCreated, SessionEvent{
		Flow:        "payment",
		CustomerID:  "cus_123",
		AmountMinor: 2500,
		Currency:    "eur",
	})
	require.NoError(t, err)
	require.NoError(t, producer.Close())
}

func TestPublishSessionEventKeyedByIdentity(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)

	expectKey := func(want string) func(*sarama.ProducerMessage) error {
		return func(msg *sarama.ProducerMessage) error {
			key, err := msg.Key.Encode()
			if err != nil {
				return err
			}
			if string(key) != want {
				return fmt.Errorf("message key = %q, want %q", key, want)
			}
			return nil
		}
	}

	// The customer id keys the message when present, the account id
	// otherwise, so events for one identity land in one partition.
	mock.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(expectKey("cus_123"))
	mock.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(expectKey("acct_456"))

	producer := NewSessionProducerFromSync(mock, testLogger())

	err := producer.PublishSessionEvent(context.Background(), TopicPaymentSessionCreated, SessionEvent{
		Flow:       "payment",
		CustomerID: "cus_123",
	})
	require.NoError(t, err)

	err = producer.PublishSessionEvent(context.Background(), TopicOnboardingSessionCreated, SessionEvent{
		Flow:      "onboarding",
		AccountID: "acct_456",
	})
	require.NoError(t, err)
	require.NoError(t, producer.Close())
}

func TestPublishSessionEventSendFailure(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	mock.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	producer := NewSessionProducerFromSync(mock, testLogger())
	err := producer.PublishSessionEvent(context.Background(), TopicSubscriptionSessionCreated, SessionEvent{
		Flow:           "subscription",
		CustomerID:     "cus_123",
		SubscriptionID: "sub_789",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, producer.Close())
}

func TestNewSessionProducerRequiresBrokers(t *testing.T) {
	_, err := NewSessionProducer(nil, testLogger())
	require.Error(t, err)
}
