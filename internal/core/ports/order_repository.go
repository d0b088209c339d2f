package ports

import (
	"context"
	"errors"
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
)

// ErrOrderConcurrentlyModified is returned by Update when the stored
// status no longer matches the status the caller read before mutating.
var ErrOrderConcurrentlyModified = errors.New("order was modified by another request")

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate with a
	// compare-and-swap guard: the write only applies while the stored
	// status still equals expectedStatus (the status the caller read
	// before mutating the aggregate). When another caller won the race,
	// ErrOrderConcurrentlyModified is returned and nothing is written.
	Update(ctx context.Context, aggregate *order.Order, expectedStatus order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetPendingOlderThan retrieves orders that have been sitting in
	// Pending status since before the cutoff. Used by the reminder job
	// to re-notify sellers of orders awaiting confirmation.
	GetPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
