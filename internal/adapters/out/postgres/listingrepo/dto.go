// Package listingrepo provides data transfer objects and mapping functions
// for listing persistence. Handles conversion between the listing aggregate
// and its relational representation.
package listingrepo

import (
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/listing"

	"github.com/google/uuid"
)

// ListingDTO represents the database structure for persisting listings.
type ListingDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	SellerID        uuid.UUID `gorm:"type:uuid;index"`
	Kind            int
	Name            string
	Available       int
	UnitPriceAmount int64
	Currency        string `gorm:"type:varchar(3)"`
}

// TableName specifies the database table name for listing entities.
func (ListingDTO) TableName() string {
	return "listings"
}

// fromDomain converts a listing aggregate to its database representation.
func fromDomain(aggregate *listing.Listing) ListingDTO {
	return ListingDTO{
		ID:              aggregate.ID().Bytes(),
		SellerID:        aggregate.SellerID().Bytes(),
		Kind:            int(aggregate.Kind()),
		Name:            aggregate.Name(),
		Available:       aggregate.Available(),
		UnitPriceAmount: aggregate.UnitPrice().Amount(),
		Currency:        aggregate.UnitPrice().Currency(),
	}
}

// toDomain converts a database DTO to a listing aggregate.
func toDomain(dto ListingDTO) (*listing.Listing, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPriceAmount, dto.Currency)
	if err != nil {
		return nil, err
	}

	return listing.RestoreListing(id, sellerID, listing.Kind(dto.Kind), dto.Name, dto.Available, unitPrice)
}
