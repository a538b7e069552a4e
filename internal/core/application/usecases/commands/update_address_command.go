package commands

import (
	"errors"

	"delivery/internal/core/domain/model/kernel"
	"delivery/internal/pkg/errs"
)

var ErrUpdateAddressCommandIsNotConstructed = errors.New(
	"UpdateAddressCommand must be created via NewUpdateAddressCommand constructor",
)

// UpdateAddressCommand represents a request to change the shipping destination.
type UpdateAddressCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	address string

	guard kernel.ConstructorGuard
}

// NewUpdateAddressCommand creates a command to update a delivery address.
func NewUpdateAddressCommand(orderID int64, address string) (UpdateAddressCommand, error) {
	cmd := UpdateAddressCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAddress(address),
	); err != nil {
		return UpdateAddressCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateAddressCommand) Validate() error {
	return c.guard.Validate(ErrUpdateAddressCommandIsNotConstructed)
}

// OrderID returns the external order identifier.
func (c UpdateAddressCommand) OrderID() int64 {
	return c.orderID
}

// Address returns the new shipping destination.
func (c UpdateAddressCommand) Address() string {
	return c.address
}

func (c *UpdateAddressCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidError("orderId")
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateAddressCommand) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}

	c.address = address
	return nil
}
