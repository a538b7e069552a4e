package commands

import (
	"errors"

	"delivery/internal/core/domain/model/kernel"
	"delivery/internal/pkg/errs"
)

var ErrCancelDeliveryCommandIsNotConstructed = errors.New(
	"CancelDeliveryCommand must be created via NewCancelDeliveryCommand constructor",
)

// CancelDeliveryCommand represents the compensating reaction to a payment
// failure: cancel the delivery if it has not shipped yet.
type CancelDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID int64

	guard kernel.ConstructorGuard
}

// NewCancelDeliveryCommand creates a compensation command for an order.
func NewCancelDeliveryCommand(orderID int64) (CancelDeliveryCommand, error) {
	if orderID <= 0 {
		return CancelDeliveryCommand{}, errs.NewValueIsInvalidError("orderId")
	}

	return CancelDeliveryCommand{
		orderID: orderID,
		guard:   kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCancelDeliveryCommandIsNotConstructed)
}

// OrderID returns the external order identifier.
func (c CancelDeliveryCommand) OrderID() int64 {
	return c.orderID
}
