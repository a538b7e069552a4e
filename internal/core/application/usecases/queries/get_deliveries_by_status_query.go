package queries

import (
	"errors"

	"delivery/internal/core/domain/model/delivery"
	"delivery/internal/core/domain/model/kernel"
)

var (
	ErrGetDeliveriesByStatusQueryIsNotConstructed = errors.New(
		"GetDeliveriesByStatusQuery must be created via NewGetDeliveriesByStatusQuery constructor",
	)
)

// GetDeliveriesByStatusQuery retrieves all deliveries currently in one status.
// Used by operators to inspect active workload, for example everything SHIPPED.
//
// Example:
//
//	query, err := NewGetDeliveriesByStatusQuery(delivery.Shipped)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetDeliveriesByStatusQueryHandler(db)
//
//	inFlight, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list shipped deliveries: %w", err)
//	}
//	fmt.Printf("%d deliveries in flight\n", len(inFlight))
type GetDeliveriesByStatusQuery struct {
	status delivery.Status

	guard kernel.ConstructorGuard
}

// NewGetDeliveriesByStatusQuery creates a query for the given status.
// The status must be a valid lifecycle state.
func NewGetDeliveriesByStatusQuery(status delivery.Status) (GetDeliveriesByStatusQuery, error) {
	if err := status.Validate(); err != nil {
		return GetDeliveriesByStatusQuery{}, err
	}

	return GetDeliveriesByStatusQuery{
		status: status,
		guard:  kernel.NewConstructorGuard(),
	}, nil
}

// Status returns the lifecycle state the query filters on.
func (q GetDeliveriesByStatusQuery) Status() delivery.Status {
	return q.status
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDeliveriesByStatusQueryIsNotConstructed if validation fails.
func (q GetDeliveriesByStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveriesByStatusQueryIsNotConstructed)
}
