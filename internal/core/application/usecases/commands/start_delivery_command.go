package commands

import (
	"errors"

	"delivery/internal/core/domain/model/kernel"
	"delivery/internal/pkg/errs"
)

var ErrStartDeliveryCommandIsNotConstructed = errors.New(
	"StartDeliveryCommand must be created via NewStartDeliveryCommand constructor",
)

// StartDeliveryCommand represents a request to ship a delivery. The tracking
// pair is optional: the payment.completed consumer issues the command without
// tracking info, while the API start operation may supply it.
type StartDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID        int64
	trackingNumber string
	carrier        string

	guard kernel.ConstructorGuard
}

// NewStartDeliveryCommand creates a command to start a delivery.
// trackingNumber and carrier must be supplied together or both left empty.
func NewStartDeliveryCommand(orderID int64, trackingNumber, carrier string) (StartDeliveryCommand, error) {
	cmd := StartDeliveryCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTracking(trackingNumber, carrier),
	); err != nil {
		return StartDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrStartDeliveryCommandIsNotConstructed)
}

// OrderID returns the external order identifier.
func (c StartDeliveryCommand) OrderID() int64 {
	return c.orderID
}

// TrackingNumber returns the optional carrier tracking number.
func (c StartDeliveryCommand) TrackingNumber() string {
	return c.trackingNumber
}

// Carrier returns the optional shipping carrier.
func (c StartDeliveryCommand) Carrier() string {
	return c.carrier
}

// HasTracking reports whether the command carries tracking info.
func (c StartDeliveryCommand) HasTracking() bool {
	return c.trackingNumber != ""
}

func (c *StartDeliveryCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidError("orderId")
	}

	c.orderID = orderID
	return nil
}

func (c *StartDeliveryCommand) setTracking(trackingNumber, carrier string) error {
	if (trackingNumber == "") != (carrier == "") {
		return errs.NewValueIsRequiredError("trackingNumber and carrier must be provided together")
	}

	c.trackingNumber = trackingNumber
	c.carrier = carrier
	return nil
}
