package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"delivery/internal/core/application/usecases/commands"
	"delivery/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

// orderCreatedMessage is the payload of order.created events.
type orderCreatedMessage struct {
	OrderID int64  `json:"orderId"`
	Address string `json:"address"`
	TraceID string `json:"traceId"`
}

// paymentCompletedMessage is the payload of payment.completed events.
type paymentCompletedMessage struct {
	OrderID int64  `json:"orderId"`
	TraceID string `json:"traceId"`
}

// paymentFailedMessage is the payload of payment.failed events.
type paymentFailedMessage struct {
	OrderID int64  `json:"orderId"`
	Reason  string `json:"reason"`
	TraceID string `json:"traceId"`
}

// NewOrderCreatedHandler reacts to order.created by registering a READY
// delivery. Creation is idempotent, so redelivered events succeed quietly.
func NewOrderCreatedHandler(
	createDelivery *commands.CreateDeliveryCommandHandler,
	logger *slog.Logger,
) MessageHandler {
	log := logger.With("component", "order_created_handler")

	return func(ctx context.Context, msg kafka.Message) error {
		var payload orderCreatedMessage
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			return nonRetryable(fmt.Errorf("malformed order.created payload: %w", err))
		}

		cmd, err := commands.NewCreateDeliveryCommand(payload.OrderID, payload.Address, payload.TraceID)
		if err != nil {
			return nonRetryable(err)
		}

		d, err := createDelivery.Handle(ctx, cmd)
		if err != nil {
			return err
		}

		log.InfoContext(ctx, "delivery registered for order",
			"orderId", payload.OrderID, "deliveryId", d.ID().String(), "traceId", payload.TraceID)
		return nil
	}
}

// NewPaymentCompletedHandler reacts to payment.completed by shipping the
// delivery. A delivery that already left READY means the event is late or
// duplicated, which is logged and acknowledged without changes.
func NewPaymentCompletedHandler(
	startDelivery *commands.StartDeliveryCommandHandler,
	logger *slog.Logger,
) MessageHandler {
	log := logger.With("component", "payment_completed_handler")

	return func(ctx context.Context, msg kafka.Message) error {
		var payload paymentCompletedMessage
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			return nonRetryable(fmt.Errorf("malformed payment.completed payload: %w", err))
		}

		cmd, err := commands.NewStartDeliveryCommand(payload.OrderID, "", "")
		if err != nil {
			return nonRetryable(err)
		}

		err = startDelivery.Handle(ctx, cmd)
		switch {
		case err == nil:
			log.InfoContext(ctx, "delivery shipped after payment",
				"orderId", payload.OrderID, "traceId", payload.TraceID)
			return nil
		case errors.Is(err, errs.ErrInvalidTransition):
			log.WarnContext(ctx, "payment.completed ignored, delivery already left READY",
				"orderId", payload.OrderID, "traceId", payload.TraceID, "error", err)
			return nil
		case errors.Is(err, errs.ErrObjectNotFound):
			return nonRetryable(err)
		default:
			return err
		}
	}
}

// NewPaymentFailedHandler reacts to payment.failed with the compensating
// cancellation. The command handler absorbs late and duplicate signals, so
// only unknown orders and infrastructure failures surface here.
func NewPaymentFailedHandler(
	cancelDelivery *commands.CancelDeliveryCommandHandler,
	logger *slog.Logger,
) MessageHandler {
	log := logger.With("component", "payment_failed_handler")

	return func(ctx context.Context, msg kafka.Message) error {
		var payload paymentFailedMessage
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			return nonRetryable(fmt.Errorf("malformed payment.failed payload: %w", err))
		}

		cmd, err := commands.NewCancelDeliveryCommand(payload.OrderID)
		if err != nil {
			return nonRetryable(err)
		}

		log.InfoContext(ctx, "compensating failed payment",
			"orderId", payload.OrderID, "reason", payload.Reason, "traceId", payload.TraceID)

		err = cancelDelivery.Handle(ctx, cmd)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nonRetryable(err)
		}
		return err
	}
}
