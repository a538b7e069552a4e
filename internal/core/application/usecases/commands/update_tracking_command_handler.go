package commands

import (
	"context"
)

// UpdateTrackingCommandHandler sets the tracking pair of a delivery.
// Like address updates, this carries no state-machine rules.
type UpdateTrackingCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewUpdateTrackingCommandHandler creates a handler for tracking updates.
func NewUpdateTrackingCommandHandler(uowFactory DeliveryUoWFactory) UpdateTrackingCommandHandler {
	return UpdateTrackingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the tracking update. Fails with an ObjectNotFoundError when
// the order has no delivery record.
func (h *UpdateTrackingCommandHandler) Handle(ctx context.Context, cmd UpdateTrackingCommand) error {
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

	if err = d.UpdateTracking(cmd.TrackingNumber(), cmd.Carrier()); err != nil {
		return err
	}

	if err = repo.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
