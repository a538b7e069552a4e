package ports

import (
	"context"

	"delivery/internal/core/domain/model/delivery"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
// Storage is keyed by the external order identifier: point lookup, filtered
// listing by status, insert, and in-place update.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate. Returns an ObjectAlreadyExistsError
	// when a record for the same orderId is already stored.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate as a single
	// atomic write. Returns an error if no record exists.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// GetByOrderID retrieves the delivery for an order. Returns an
	// ObjectNotFoundError when the order has no delivery record.
	GetByOrderID(ctx context.Context, orderID int64) (*delivery.Delivery, error)

	// GetAllByStatus retrieves all deliveries currently in the given status.
	GetAllByStatus(ctx context.Context, status delivery.Status) ([]*delivery.Delivery, error)
}
