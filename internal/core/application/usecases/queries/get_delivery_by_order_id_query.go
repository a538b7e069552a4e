package queries

import (
	"errors"
	"time"

	"delivery/internal/core/domain/model/kernel"
	"delivery/internal/pkg/errs"
)

var (
	ErrGetDeliveryByOrderIDQueryIsNotConstructed = errors.New(
		"GetDeliveryByOrderIDQuery must be created via NewGetDeliveryByOrderIDQuery constructor",
	)
)

// GetDeliveryByOrderIDQuery retrieves the delivery record for a single order.
//
// Example:
//
//	query, err := NewGetDeliveryByOrderIDQuery(1001)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetDeliveryByOrderIDQueryHandler(db)
//
//	delivery, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get delivery: %w", err)
//	}
//	fmt.Printf("Order %d is %s\n", delivery.OrderID, delivery.Status)
type GetDeliveryByOrderIDQuery struct {
	orderID int64

	guard kernel.ConstructorGuard
}

// NewGetDeliveryByOrderIDQuery creates a query for the given order identifier.
// Returns errs.ErrValueIsInvalid when orderID is not positive.
func NewGetDeliveryByOrderIDQuery(orderID int64) (GetDeliveryByOrderIDQuery, error) {
	if orderID <= 0 {
		return GetDeliveryByOrderIDQuery{}, errs.NewValueIsInvalidError("orderID")
	}

	return GetDeliveryByOrderIDQuery{
		orderID: orderID,
		guard:   kernel.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order identifier the query targets.
func (q GetDeliveryByOrderIDQuery) OrderID() int64 {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDeliveryByOrderIDQueryIsNotConstructed if validation fails.
func (q GetDeliveryByOrderIDQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryByOrderIDQueryIsNotConstructed)
}

// DeliveryResponse is the read model returned by delivery queries.
// It mirrors the persisted record without loading the full aggregate.
type DeliveryResponse struct {
	ID             kernel.UUID
	OrderID        int64
	Status         string
	Address        string
	TrackingNumber string
	Carrier        string
	StartedAt      *time.Time
	CompletedAt    *time.Time
	TraceID        string
}
