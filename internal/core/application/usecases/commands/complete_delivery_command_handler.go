package commands

import (
	"context"
	"log/slog"

	"delivery/internal/core/ports"
)

// CompleteDeliveryCommandHandler transitions a delivery to DELIVERED and
// announces the transition on the bus. Same publication contract as
// StartDeliveryCommandHandler: publish after commit, log and swallow failures.
type CompleteDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery completion.
func NewCompleteDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "complete_delivery_handler"),
	}
}

// Handle processes the completion command. Fails with an ObjectNotFoundError
// when the order has no delivery, or an InvalidTransitionError when the
// delivery has not shipped yet.
func (h *CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
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

	if err = d.Complete(); err != nil {
		return err
	}

	if err = repo.Update(ctx, d); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	event := ports.DeliveryCompletedEvent{
		OrderID:     d.OrderID(),
		DeliveryID:  d.ID().String(),
		CompletedAt: *d.CompletedAt(),
		TraceID:     d.TraceID(),
	}
	if pubErr := h.publisher.PublishDeliveryCompleted(ctx, event); pubErr != nil {
		h.logger.ErrorContext(ctx, "failed to publish delivery.completed",
			"orderId", d.OrderID(), "error", pubErr)
	}

	return nil
}
