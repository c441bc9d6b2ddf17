// Package commands contains business operations that modify the courier's
// state. Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// in-memory mutation through the session store, reconciliation against the
// job service where applicable, and persistence.
package commands

import (
	"context"

	"courier/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// CourierStateRepoFactory provides access to the courier state repository
	// within a transaction.
	CourierStateRepoFactory interface {
		CourierStateRepository() ports.CourierStateRepository
	}

	// HistoryRepoFactory provides access to the history repository within a
	// transaction.
	HistoryRepoFactory interface {
		HistoryRepository() ports.HistoryRepository
	}

	// CourierUoW manages transactions for courier-state-only operations.
	CourierUoW interface {
		TxManager
		CourierStateRepoFactory
	}

	// CourierUoWFactory creates new courier-state unit of work instances.
	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// UoW manages transactions spanning courier state and order history.
	// Used by settlement, which must write both atomically.
	UoW interface {
		TxManager
		CourierStateRepoFactory
		HistoryRepoFactory
	}

	// UoWFactory creates new full unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)
