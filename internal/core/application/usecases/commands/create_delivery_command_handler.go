package commands

import (
	"context"
	"errors"

	"delivery/internal/core/domain/model/delivery"
	"delivery/internal/pkg/errs"
)

// CreateDeliveryCommandHandler handles delivery record creation.
//
// Creation is idempotent per orderId: a duplicate create (most commonly a
// redelivered order.created event) returns the stored record unchanged rather
// than failing, so re-processing never blocks the event stream.
type CreateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewCreateDeliveryCommandHandler creates a handler for delivery creation.
func NewCreateDeliveryCommandHandler(uowFactory DeliveryUoWFactory) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the creation command and returns the delivery in READY
// status: the newly created record, or the existing one when the orderId
// already has a delivery.
func (h *CreateDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd CreateDeliveryCommand,
) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryRepository()

	existing, err := repo.GetByOrderID(ctx, cmd.OrderID())
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	created, err := delivery.NewDelivery(cmd.OrderID(), cmd.Address(), cmd.TraceID())
	if err != nil {
		return nil, err
	}

	if addErr := repo.Add(ctx, created); addErr != nil {
		if errors.Is(addErr, errs.ErrObjectAlreadyExists) {
			// Lost a race against a concurrent create for the same orderId.
			// The insert poisoned the transaction, so re-read in a fresh one.
			_ = uow.Rollback(ctx)
			return h.getExisting(ctx, cmd.OrderID())
		}
		return nil, addErr
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}

func (h *CreateDeliveryCommandHandler) getExisting(ctx context.Context, orderID int64) (*delivery.Delivery, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.DeliveryRepository().GetByOrderID(ctx, orderID)
}
