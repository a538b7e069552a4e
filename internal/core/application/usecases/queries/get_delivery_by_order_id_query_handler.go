package queries

import (
	"context"
	"database/sql"
	"errors"

	"delivery/internal/core/domain/model/kernel"
	"delivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveryByOrderIDQueryHandler reads a single delivery straight from the
// database, bypassing the aggregate for read performance in the CQRS pattern.
type GetDeliveryByOrderIDQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryByOrderIDQueryHandler creates a handler for single-delivery lookups.
// Requires a GORM database connection for query execution.
func NewGetDeliveryByOrderIDQueryHandler(db *gorm.DB) GetDeliveryByOrderIDQueryHandler {
	return GetDeliveryByOrderIDQueryHandler{db: db}
}

// Handle executes the lookup for the query's order identifier.
// Returns errs.ErrObjectNotFound when no delivery exists for the order.
func (h GetDeliveryByOrderIDQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryByOrderIDQuery,
) (DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return DeliveryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			status,
			address,
			tracking_number,
			carrier,
			started_at,
			completed_at,
			trace_id
		FROM deliveries
		WHERE order_id = ?
	`, query.OrderID()).Row()

	resp, err := scanDeliveryRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DeliveryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID())
		}
		return DeliveryResponse{}, err
	}

	return resp, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeliveryRow(row rowScanner) (DeliveryResponse, error) {
	var resp DeliveryResponse
	var id uuid.UUID
	var startedAt, completedAt sql.NullTime

	err := row.Scan(
		&id,
		&resp.OrderID,
		&resp.Status,
		&resp.Address,
		&resp.TrackingNumber,
		&resp.Carrier,
		&startedAt,
		&completedAt,
		&resp.TraceID,
	)
	if err != nil {
		return DeliveryResponse{}, err
	}

	deliveryID, idErr := kernel.UUIDFromBytes(id[:])
	if idErr != nil {
		return DeliveryResponse{}, idErr
	}
	resp.ID = deliveryID

	if startedAt.Valid {
		t := startedAt.Time
		resp.StartedAt = &t
	}
	if completedAt.Valid {
		t := completedAt.Time
		resp.CompletedAt = &t
	}

	return resp, nil
}
