// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"agromarket/internal/core/ports"
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

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ListingRepoFactory provides access to listing repository within a transaction.
	ListingRepoFactory interface {
		ListingRepository() ports.ListingRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ListingUoW manages transactions for listing-only operations.
	// Used when commands only modify listing aggregates.
	ListingUoW interface {
		TxManager
		ListingRepoFactory
	}

	// ListingUoWFactory creates new listing unit of work instances.
	ListingUoWFactory interface {
		Create() ListingUoW
	}

	// UoW manages transactions across both order and listing aggregates.
	// Used for commands that coordinate changes between multiple aggregate types.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   listingRepo := uow.ListingRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ListingRepoFactory
		OrderRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
