package delivery

import (
	"errors"
	"fmt"
	"time"

	"delivery/internal/core/domain/model/kernel"
	"delivery/internal/pkg/errs"
)

// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not created
// through NewDelivery or RestoreDelivery.
var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery")

// CancelOutcome describes the result of a cancellation attempt. Cancellation is
// a total operation: late or duplicate payment-failure signals yield a no-op
// outcome instead of an error, because redelivery and late compensation are
// expected, not exceptional.
type CancelOutcome int

const (
	// CancelApplied means the delivery moved from Ready to Cancelled.
	CancelApplied CancelOutcome = iota

	// CancelAlreadyCancelled means the delivery was already cancelled; a harmless duplicate.
	CancelAlreadyCancelled

	// CancelTooLate means the shipment already left (Shipped or Delivered);
	// the failure signal arrived too late to compensate physically.
	CancelTooLate
)

// Delivery is the aggregate root tracking the physical-shipment lifecycle of
// one order. There is exactly one Delivery per orderId; the orderId is the
// external correlation key for every inbound and outbound event, while the
// internal id identifies the record itself.
//
// Invariants:
//   - status changes only along the transition table in status.go
//   - trackingNumber and carrier are present together or absent together
//   - startedAt / completedAt are set exactly once, at the SHIPPED and
//     DELIVERED transitions respectively
//   - traceId is copied verbatim from the originating order event and never
//     generated here
type Delivery struct {
	id             kernel.UUID
	orderID        int64
	status         Status
	address        string
	trackingNumber string
	carrier        string
	startedAt      *time.Time
	completedAt    *time.Time
	traceID        string
	createdAt      time.Time
	updatedAt      time.Time

	guard kernel.ConstructorGuard
}

// NewDelivery creates a delivery in Ready status for the given order.
// The traceId is the correlation token of the originating order event and may
// be empty when the record is created directly through the API.
func NewDelivery(orderID int64, address string, traceID string) (*Delivery, error) {
	if orderID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("%d is not a positive identifier", orderID))
	}
	if address == "" {
		return nil, errs.NewValueIsRequiredError("address")
	}

	now := time.Now().UTC()
	return &Delivery{
		id:        kernel.NewUUID(),
		orderID:   orderID,
		status:    Ready,
		address:   address,
		traceID:   traceID,
		createdAt: now,
		updatedAt: now,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// RestoreDelivery rehydrates a delivery from persistence without re-running
// creation rules. The stored status must still be a valid one.
func RestoreDelivery(
	id kernel.UUID,
	orderID int64,
	status Status,
	address string,
	trackingNumber string,
	carrier string,
	startedAt *time.Time,
	completedAt *time.Time,
	traceID string,
	createdAt time.Time,
	updatedAt time.Time,
) (*Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if orderID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("%d is not a positive identifier", orderID))
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &Delivery{
		id:             id,
		orderID:        orderID,
		status:         status,
		address:        address,
		trackingNumber: trackingNumber,
		carrier:        carrier,
		startedAt:      startedAt,
		completedAt:    completedAt,
		traceID:        traceID,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		guard:          kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Delivery was built through a constructor.
// Called when reconstructing deliveries from persistence.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// IsEqual compares two deliveries by their internal identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the internal delivery identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// OrderID returns the external order identifier the delivery belongs to.
func (d *Delivery) OrderID() int64 {
	return d.orderID
}

// Status returns the current lifecycle status.
func (d *Delivery) Status() Status {
	return d.status
}

// Address returns the free-text shipping destination.
func (d *Delivery) Address() string {
	return d.address
}

// TrackingNumber returns the carrier tracking number, empty until tracking is set.
func (d *Delivery) TrackingNumber() string {
	return d.trackingNumber
}

// Carrier returns the shipping carrier, empty until tracking is set.
func (d *Delivery) Carrier() string {
	return d.carrier
}

// StartedAt returns the shipment start timestamp, nil while Ready.
func (d *Delivery) StartedAt() *time.Time {
	return d.startedAt
}

// CompletedAt returns the delivery completion timestamp, nil until Delivered.
func (d *Delivery) CompletedAt() *time.Time {
	return d.completedAt
}

// TraceID returns the correlation token propagated from the originating order event.
func (d *Delivery) TraceID() string {
	return d.traceID
}

// CreatedAt returns the record creation timestamp.
func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

// UpdatedAt returns the timestamp of the last mutation.
func (d *Delivery) UpdatedAt() time.Time {
	return d.updatedAt
}

// Start moves the delivery into Shipped and stamps startedAt exactly once.
// Only a Ready delivery can start; anything else returns an
// InvalidTransitionError and leaves the state unchanged.
func (d *Delivery) Start() error {
	next, err := d.status.Apply(TransitionStart)
	if err != nil {
		return err
	}

	d.status = next
	if d.startedAt == nil {
		now := time.Now().UTC()
		d.startedAt = &now
	}
	d.touch()
	return nil
}

// Complete moves the delivery into Delivered and stamps completedAt exactly once.
// Only a Shipped delivery can complete.
func (d *Delivery) Complete() error {
	next, err := d.status.Apply(TransitionComplete)
	if err != nil {
		return err
	}

	d.status = next
	if d.completedAt == nil {
		now := time.Now().UTC()
		d.completedAt = &now
	}
	d.touch()
	return nil
}

// Cancel attempts the compensating transition. It is total over all statuses:
// a Ready delivery is cancelled, a Shipped or Delivered one is left untouched
// (CancelTooLate), and an already-cancelled one reports a duplicate.
func (d *Delivery) Cancel() CancelOutcome {
	next, err := d.status.Apply(TransitionCancel)
	if err != nil {
		if d.status == Cancelled {
			return CancelAlreadyCancelled
		}
		return CancelTooLate
	}

	d.status = next
	d.touch()
	return CancelApplied
}

// UpdateAddress replaces the shipping destination. Updates on terminal
// deliveries are permitted, matching the upstream service's observed behavior;
// transition rules live only in the status machine.
func (d *Delivery) UpdateAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}

	d.address = address
	d.touch()
	return nil
}

// UpdateTracking sets the tracking pair. Both values are required together.
func (d *Delivery) UpdateTracking(trackingNumber, carrier string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	if carrier == "" {
		return errs.NewValueIsRequiredError("carrier")
	}

	d.trackingNumber = trackingNumber
	d.carrier = carrier
	d.touch()
	return nil
}

func (d *Delivery) touch() {
	d.updatedAt = time.Now().UTC()
}
