// Package deliveryrepo provides data transfer objects and mapping functions for
// delivery persistence. It implements the repository pattern for the delivery
// aggregate, converting between domain entities and database rows.
package deliveryrepo

import (
	"time"

	"delivery/internal/core/domain/model/delivery"
	"delivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery aggregates.
// The order ID carries a unique index so each order has at most one delivery,
// and status is indexed for workload listings.
type DeliveryDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        int64     `gorm:"uniqueIndex"`
	Status         string    `gorm:"type:varchar(16);index"`
	Address        string    `gorm:"type:text"`
	TrackingNumber string
	Carrier        string
	StartedAt      *time.Time
	CompletedAt    *time.Time
	TraceID        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the database table name for delivery entities.
// Overrides GORM's default naming convention to use "deliveries".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// fromDomain converts a delivery domain aggregate to its database representation.
func fromDomain(d *delivery.Delivery) DeliveryDTO {
	return DeliveryDTO{
		ID:             d.ID().Bytes(),
		OrderID:        d.OrderID(),
		Status:         d.Status().String(),
		Address:        d.Address(),
		TrackingNumber: d.TrackingNumber(),
		Carrier:        d.Carrier(),
		StartedAt:      d.StartedAt(),
		CompletedAt:    d.CompletedAt(),
		TraceID:        d.TraceID(),
		CreatedAt:      d.CreatedAt(),
		UpdatedAt:      d.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a delivery domain aggregate.
// Reconstructs the complete aggregate using RestoreDelivery.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := delivery.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(
		id,
		dto.OrderID,
		status,
		dto.Address,
		dto.TrackingNumber,
		dto.Carrier,
		dto.StartedAt,
		dto.CompletedAt,
		dto.TraceID,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
