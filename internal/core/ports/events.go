package ports

import (
	"context"
	"time"
)

// DeliveryStartedEvent announces that a delivery transitioned to SHIPPED.
// The traceId is copied verbatim from the delivery record so downstream
// services can correlate it with the originating order event.
type DeliveryStartedEvent struct {
	OrderID        int64     `json:"orderId"`
	DeliveryID     string    `json:"deliveryId"`
	TrackingNumber string    `json:"trackingNumber"`
	Carrier        string    `json:"company"` // downstream consumers expect "company" on the wire
	StartedAt      time.Time `json:"startedAt"`
	TraceID        string    `json:"traceId"`
}

// DeliveryCompletedEvent announces that a delivery transitioned to DELIVERED.
type DeliveryCompletedEvent struct {
	OrderID     int64     `json:"orderId"`
	DeliveryID  string    `json:"deliveryId"`
	CompletedAt time.Time `json:"completedAt"`
	TraceID     string    `json:"traceId"`
}

// EventPublisher announces delivery state transitions to downstream consumers.
// Publication is fire-and-forget from the caller's point of view: it happens
// after the state mutation commits, and a returned error must be logged and
// swallowed rather than rolled into the mutation result.
type EventPublisher interface {
	PublishDeliveryStarted(ctx context.Context, event DeliveryStartedEvent) error
	PublishDeliveryCompleted(ctx context.Context, event DeliveryCompletedEvent) error
}
