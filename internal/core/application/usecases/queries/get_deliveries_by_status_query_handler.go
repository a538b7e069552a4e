package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetDeliveriesByStatusQueryHandler lists deliveries in a given lifecycle state.
// Uses direct SQL for optimal read performance in the CQRS pattern.
type GetDeliveriesByStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveriesByStatusQueryHandler creates a handler for status-filtered listings.
// Requires a GORM database connection for query execution.
func NewGetDeliveriesByStatusQueryHandler(db *gorm.DB) GetDeliveriesByStatusQueryHandler {
	return GetDeliveriesByStatusQueryHandler{db: db}
}

// Handle executes the query and returns matching deliveries sorted by order ID.
func (h GetDeliveriesByStatusQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveriesByStatusQuery,
) ([]DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]DeliveryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
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
		WHERE status = ?
		ORDER BY order_id
	`, query.Status().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		resp, scanErr := scanDeliveryRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
