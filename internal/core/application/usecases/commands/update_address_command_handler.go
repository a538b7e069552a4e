package commands

import (
	"context"
)

// UpdateAddressCommandHandler changes the shipping destination of a delivery.
// No state-machine rules apply here; updates on terminal deliveries are
// deliberately permitted, matching the upstream service's behavior.
type UpdateAddressCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewUpdateAddressCommandHandler creates a handler for address updates.
func NewUpdateAddressCommandHandler(uowFactory DeliveryUoWFactory) UpdateAddressCommandHandler {
	return UpdateAddressCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the address update. Fails with an ObjectNotFoundError when
// the order has no delivery record.
func (h *UpdateAddressCommandHandler) Handle(ctx context.Context, cmd UpdateAddressCommand) error {
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

	if err = d.UpdateAddress(cmd.Address()); err != nil {
		return err
	}

	if err = repo.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
