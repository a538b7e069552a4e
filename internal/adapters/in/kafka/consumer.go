// Package kafka provides the inbound Kafka adapter. Consumers fetch order and
// payment events, drive the application command handlers, and acknowledge a
// message only after it was fully processed or parked on the dead letter
// topic. A message that keeps failing never blocks the partition.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// MessageHandler processes one fetched message. Returning nil acknowledges
// the message. A plain error triggers a retry, an error wrapped via
// nonRetryable sends the message straight to the dead letter topic.
type MessageHandler func(ctx context.Context, msg kafka.Message) error

// errNonRetryable marks failures that redelivery cannot fix, such as
// malformed payloads or events referencing unknown orders.
var errNonRetryable = errors.New("non-retryable message failure")

func nonRetryable(err error) error {
	return fmt.Errorf("%w: %w", errNonRetryable, err)
}

// messageSource abstracts the subset of kafka.Reader the consumer needs,
// keeping the processing loop testable without a broker.
type messageSource interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// deadLetterSink parks messages that exhausted their processing budget.
type deadLetterSink interface {
	Send(ctx context.Context, msg kafka.Message, cause error) error
}

// Consumer runs the fetch-process-commit loop for a single topic.
// Offsets are committed explicitly, never before the message was handled.
type Consumer struct {
	source      messageSource
	handler     MessageHandler
	deadLetters deadLetterSink
	maxAttempts int
	retryDelay  time.Duration
	logger      *slog.Logger
}

// NewConsumer creates a consumer group member for the given topic.
// maxAttempts bounds how often a retryable failure is retried before the
// message is parked on the dead letter topic.
func NewConsumer(
	brokers []string,
	groupID string,
	topic string,
	handler MessageHandler,
	deadLetters deadLetterSink,
	maxAttempts int,
	logger *slog.Logger,
) (*Consumer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka consumer requires at least one broker")
	}
	if groupID == "" {
		return nil, fmt.Errorf("kafka consumer requires group id")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka consumer requires a topic")
	}
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  500 * time.Millisecond,
	})

	return &Consumer{
		source:      reader,
		handler:     handler,
		deadLetters: deadLetters,
		maxAttempts: maxAttempts,
		retryDelay:  time.Second,
		logger:      logger.With("component", "kafka_consumer", "topic", topic),
	}, nil
}

// Run fetches and processes messages until the context is cancelled.
// Returns nil on graceful shutdown. A fetch, commit, or dead letter failure
// stops the loop and is returned, so the group rebalances and redelivers
// from the last committed offset.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.source.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if err := c.process(ctx, msg); err != nil {
			return err
		}
	}
}

// process handles one message end to end. A message already handled when
// shutdown starts is still committed, so it is not replayed on restart.
func (c *Consumer) process(ctx context.Context, msg kafka.Message) error {
	err := c.handleWithRetries(ctx, msg)
	if err == nil {
		return c.commit(ctx, msg)
	}

	if ctx.Err() != nil && !errors.Is(err, errNonRetryable) {
		// Shutdown interrupted the retry budget. Leave the message
		// uncommitted for redelivery instead of parking it.
		return nil
	}

	drainCtx := context.WithoutCancel(ctx)
	if dlqErr := c.deadLetters.Send(drainCtx, msg, err); dlqErr != nil {
		// Stop consuming: committing any later offset on this partition
		// would implicitly acknowledge this message and lose it.
		c.logger.ErrorContext(ctx, "failed to park message, stopping consumer",
			"partition", msg.Partition, "offset", msg.Offset, "error", dlqErr)
		return fmt.Errorf("park offset %d on partition %d: %w", msg.Offset, msg.Partition, dlqErr)
	}

	c.logger.WarnContext(ctx, "message parked on dead letter topic",
		"partition", msg.Partition, "offset", msg.Offset, "error", err)
	return c.commit(ctx, msg)
}

func (c *Consumer) handleWithRetries(ctx context.Context, msg kafka.Message) error {
	for attempt := 1; ; attempt++ {
		err := c.handler(ctx, msg)
		if err == nil {
			return nil
		}
		if errors.Is(err, errNonRetryable) {
			return err
		}
		if attempt >= c.maxAttempts {
			return err
		}

		c.logger.WarnContext(ctx, "message processing failed, retrying",
			"partition", msg.Partition, "offset", msg.Offset,
			"attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return err
		case <-time.After(c.retryDelay):
		}
	}
}

func (c *Consumer) commit(ctx context.Context, msg kafka.Message) error {
	if err := c.source.CommitMessages(context.WithoutCancel(ctx), msg); err != nil {
		return fmt.Errorf("commit offset %d on partition %d: %w", msg.Offset, msg.Partition, err)
	}
	return nil
}

// Close releases the underlying reader and leaves the consumer group.
func (c *Consumer) Close() error {
	return c.source.Close()
}
