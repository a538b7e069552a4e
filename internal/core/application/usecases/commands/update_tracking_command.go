package commands

import (
	"errors"

	"delivery/internal/core/domain/model/kernel"
	"delivery/internal/pkg/errs"
)

var ErrUpdateTrackingCommandIsNotConstructed = errors.New(
	"UpdateTrackingCommand must be created via NewUpdateTrackingCommand constructor",
)

// UpdateTrackingCommand represents a request to set the tracking pair of a delivery.
type UpdateTrackingCommand struct { //nolint:recvcheck //using for validation
	orderID        int64
	trackingNumber string
	carrier        string

	guard kernel.ConstructorGuard
}

// NewUpdateTrackingCommand creates a command to update tracking info.
// Both trackingNumber and carrier are required.
func NewUpdateTrackingCommand(orderID int64, trackingNumber, carrier string) (UpdateTrackingCommand, error) {
	cmd := UpdateTrackingCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTracking(trackingNumber, carrier),
	); err != nil {
		return UpdateTrackingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateTrackingCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTrackingCommandIsNotConstructed)
}

// OrderID returns the external order identifier.
func (c UpdateTrackingCommand) OrderID() int64 {
	return c.orderID
}

// TrackingNumber returns the carrier tracking number.
func (c UpdateTrackingCommand) TrackingNumber() string {
	return c.trackingNumber
}

// Carrier returns the shipping carrier.
func (c UpdateTrackingCommand) Carrier() string {
	return c.carrier
}

func (c *UpdateTrackingCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidError("orderId")
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateTrackingCommand) setTracking(trackingNumber, carrier string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	if carrier == "" {
		return errs.NewValueIsRequiredError("carrier")
	}

	c.trackingNumber = trackingNumber
	c.carrier = carrier
	return nil
}
