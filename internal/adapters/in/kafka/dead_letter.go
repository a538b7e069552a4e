package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// DeadLetterSuffix is appended to the source topic to form its dead letter topic.
const DeadLetterSuffix = ".dlq"

// DeadLetterQueue copies poison messages onto a per-topic dead letter topic.
// The copy keeps the original key and payload and records the failure reason
// and source topic in headers, so operators can inspect and replay them.
type DeadLetterQueue struct {
	writer *kafka.Writer
}

// NewDeadLetterQueue creates a dead letter writer for the given brokers.
func NewDeadLetterQueue(brokers []string) (*DeadLetterQueue, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("dead letter queue requires at least one broker")
	}

	return &DeadLetterQueue{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			RequiredAcks: kafka.RequireAll,
			Balancer:     &kafka.Hash{},
		},
	}, nil
}

// Send writes the message to "<source topic>.dlq". The caller must only
// acknowledge the original message after Send succeeds.
func (q *DeadLetterQueue) Send(ctx context.Context, msg kafka.Message, cause error) error {
	headers := append(msg.Headers,
		kafka.Header{Key: "x-original-topic", Value: []byte(msg.Topic)},
		kafka.Header{Key: "x-dead-letter-reason", Value: []byte(cause.Error())},
	)

	return q.writer.WriteMessages(ctx, kafka.Message{
		Topic:   msg.Topic + DeadLetterSuffix,
		Key:     msg.Key,
		Value:   msg.Value,
		Headers: headers,
		Time:    time.Now().UTC(),
	})
}

// Close flushes pending messages and releases writer resources.
func (q *DeadLetterQueue) Close() error {
	return q.writer.Close()
}
