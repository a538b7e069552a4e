// Package commands contains business operations that modify delivery state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// persistence, and (for state transitions) post-commit event publication.
package commands

import (
	"context"

	"delivery/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each delivery is an independent aggregate, so a single-repository unit of
// work is sufficient; no cross-aggregate transactions exist here.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DeliveryRepoFactory provides access to the delivery repository within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// DeliveryUoW manages the transaction around one delivery's read-modify-write cycle.
	DeliveryUoW interface {
		TxManager
		DeliveryRepoFactory
	}

	// DeliveryUoWFactory creates new delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}
)
