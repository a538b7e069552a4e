package commands

import (
	"context"
	"log/slog"

	"delivery/internal/core/ports"
)

// StartDeliveryCommandHandler transitions a delivery to SHIPPED and announces
// the transition on the bus.
//
// Publication happens strictly after the state mutation commits. A publish
// failure is logged and swallowed: delivery-state correctness must not be held
// hostage to the notification channel, so downstream consumers reconcile via
// query when an announcement is lost.
type StartDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewStartDeliveryCommandHandler creates a handler for shipment start operations.
func NewStartDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) StartDeliveryCommandHandler {
	return StartDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "start_delivery_handler"),
	}
}

// Handle processes the start command. Fails with an ObjectNotFoundError when
// the order has no delivery, or an InvalidTransitionError when the delivery is
// not READY; the event consumer downgrades the latter to an idempotent no-op.
func (h *StartDeliveryCommandHandler) Handle(ctx context.Context, cmd StartDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryRepository()
	d, err := repo.GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = d.Start(); err != nil {
		return err
	}

	if cmd.HasTracking() {
		if err = d.UpdateTracking(cmd.TrackingNumber(), cmd.Carrier()); err != nil {
			return err
		}
	}

	if err = repo.Update(ctx, d); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	event := ports.DeliveryStartedEvent{
		OrderID:        d.OrderID(),
		DeliveryID:     d.ID().String(),
		TrackingNumber: d.TrackingNumber(),
		Carrier:        d.Carrier(),
		StartedAt:      *d.StartedAt(),
		TraceID:        d.TraceID(),
	}
	if pubErr := h.publisher.PublishDeliveryStarted(ctx, event); pubErr != nil {
		h.logger.ErrorContext(ctx, "failed to publish delivery.started",
			"orderId", d.OrderID(), "error", pubErr)
	}

	return nil
}
