package commands

import (
	"errors"

	"delivery/internal/core/domain/model/kernel"
	"delivery/internal/pkg/errs"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand represents a request to mark a shipment as delivered.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID int64

	guard kernel.ConstructorGuard
}

// NewCompleteDeliveryCommand creates a command to complete a delivery.
func NewCompleteDeliveryCommand(orderID int64) (CompleteDeliveryCommand, error) {
	if orderID <= 0 {
		return CompleteDeliveryCommand{}, errs.NewValueIsInvalidError("orderId")
	}

	return CompleteDeliveryCommand{
		orderID: orderID,
		guard:   kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

// OrderID returns the external order identifier.
func (c CompleteDeliveryCommand) OrderID() int64 {
	return c.orderID
}
