// Package ports defines repository and collaborator interfaces for the
// marketplace core. These interfaces establish contracts between the
// domain layer and infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/listing"
)

// ListingRepository defines the persistence contract for listing
// aggregates.
type ListingRepository interface {
	// Add persists a new listing aggregate to storage.
	Add(ctx context.Context, aggregate *listing.Listing) error

	// Update persists changes to an existing listing aggregate, most
	// importantly its remaining availability.
	Update(ctx context.Context, aggregate *listing.Listing) error

	// Get retrieves a listing aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*listing.Listing, error)
}
