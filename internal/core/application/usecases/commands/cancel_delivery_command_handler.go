package commands

import (
	"context"
	"log/slog"

	"delivery/internal/core/domain/model/delivery"
)

// CancelDeliveryCommandHandler applies the compensating transaction for a
// failed payment. Late and duplicate failure signals are expected: the handler
// never errors for a delivery that already shipped or was already cancelled,
// it logs and leaves the record untouched. Cancelling a shipment that left the
// warehouse requires a physical-logistics workflow that is out of scope here.
// Only a missing record is a hard failure.
type CancelDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	logger     *slog.Logger
}

// NewCancelDeliveryCommandHandler creates a handler for payment-failure compensation.
func NewCancelDeliveryCommandHandler(uowFactory DeliveryUoWFactory, logger *slog.Logger) CancelDeliveryCommandHandler {
	return CancelDeliveryCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "cancel_delivery_handler"),
	}
}

// Handle processes the compensation command.
func (h *CancelDeliveryCommandHandler) Handle(ctx context.Context, cmd CancelDeliveryCommand) error {
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

	switch d.Cancel() {
	case delivery.CancelApplied:
		if err = repo.Update(ctx, d); err != nil {
			return err
		}
		if err = uow.Commit(ctx); err != nil {
			return err
		}
		h.logger.InfoContext(ctx, "cancelled delivery after payment failure",
			"orderId", d.OrderID(), "traceId", d.TraceID())

	case delivery.CancelAlreadyCancelled:
		h.logger.InfoContext(ctx, "duplicate payment failure ignored, delivery already cancelled",
			"orderId", d.OrderID(), "traceId", d.TraceID())

	case delivery.CancelTooLate:
		h.logger.WarnContext(ctx, "cannot cancel delivery, shipment already underway",
			"orderId", d.OrderID(), "status", d.Status().String(), "traceId", d.TraceID())
	}

	return nil
}
