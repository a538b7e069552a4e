// Package kafka provides the Kafka-backed implementation of the outbound
// event publisher. Delivery lifecycle events are serialized as JSON and keyed
// by order ID so all events of one order land on the same partition in order.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"delivery/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// Publisher writes delivery lifecycle events to Kafka.
// It requires acknowledgement from all in-sync replicas before reporting
// success, and hashes the message key so per-order ordering is preserved.
type Publisher struct {
	writer         *kafka.Writer
	startedTopic   string
	completedTopic string
}

// NewPublisher creates a Kafka publisher for the given brokers and topics.
func NewPublisher(brokers []string, startedTopic, completedTopic string) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka publisher requires at least one broker")
	}
	if startedTopic == "" || completedTopic == "" {
		return nil, fmt.Errorf("kafka publisher requires both topic names")
	}

	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			RequiredAcks: kafka.RequireAll,
			Balancer:     &kafka.Hash{},
		},
		startedTopic:   startedTopic,
		completedTopic: completedTopic,
	}, nil
}

// PublishDeliveryStarted announces that a delivery transitioned to SHIPPED.
func (p *Publisher) PublishDeliveryStarted(ctx context.Context, event ports.DeliveryStartedEvent) error {
	return p.publish(ctx, p.startedTopic, event.OrderID, event)
}

// PublishDeliveryCompleted announces that a delivery transitioned to DELIVERED.
func (p *Publisher) PublishDeliveryCompleted(ctx context.Context, event ports.DeliveryCompletedEvent) error {
	return p.publish(ctx, p.completedTopic, event.OrderID, event)
}

func (p *Publisher) publish(ctx context.Context, topic string, orderID int64, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event for topic %s: %w", topic, err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(strconv.FormatInt(orderID, 10)),
		Value: payload,
		Time:  time.Now().UTC(),
	})
}

// Close flushes pending messages and releases writer resources.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
