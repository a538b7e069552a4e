package commands

import (
	"errors"

	"delivery/internal/core/domain/model/kernel"
	"delivery/internal/pkg/errs"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand represents a request to register a delivery record for
// an order. It is issued both by the order.created consumer and by the direct
// API surface; in the consumer path the traceId carries the originating
// event's correlation token.
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	address string
	traceID string

	guard kernel.ConstructorGuard
}

// NewCreateDeliveryCommand creates a command to register a new delivery.
// Validates that the order identifier is positive and the address is not empty.
func NewCreateDeliveryCommand(orderID int64, address string, traceID string) (CreateDeliveryCommand, error) {
	cmd := CreateDeliveryCommand{
		traceID: traceID,
		guard:   kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAddress(address),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// OrderID returns the external order identifier.
func (c CreateDeliveryCommand) OrderID() int64 {
	return c.orderID
}

// Address returns the free-text shipping destination.
func (c CreateDeliveryCommand) Address() string {
	return c.address
}

// TraceID returns the correlation token propagated from the originating event.
func (c CreateDeliveryCommand) TraceID() string {
	return c.traceID
}

func (c *CreateDeliveryCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidError("orderId")
	}

	c.orderID = orderID
	return nil
}

func (c *CreateDeliveryCommand) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}

	c.address = address
	return nil
}
