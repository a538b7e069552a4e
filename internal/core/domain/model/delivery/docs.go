// Package delivery provides the domain entity and business rules for tracking
// the physical-delivery lifecycle of e-commerce orders. It implements the
// Delivery aggregate root together with an explicit status transition table.
//
// The package includes:
//   - Delivery: the aggregate root holding identity, shipment details, and lifecycle timestamps
//   - Status: a state machine with the transition table READY -> SHIPPED -> DELIVERED
//     and READY -> CANCELLED as the only legal paths
//   - CancelOutcome: the total result of a compensation attempt
//
// Key business rules:
//   - Exactly one delivery per orderId; the orderId is immutable once created
//   - startedAt and completedAt are stamped exactly once, at their transitions
//   - trackingNumber and carrier are present together or absent together
//   - cancellation never errors for late or duplicate payment-failure signals;
//     it reports a no-op outcome instead
//
// The aggregate is the unit of atomic mutation: all writes go through a unit of
// work so a delivery's read-modify-write cycle commits as one transaction.
package delivery
