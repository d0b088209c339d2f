package commands

import (
	"errors"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/listing"
	"agromarket/internal/pkg/guard"
)

var ErrCreateListingCommandIsNotConstructed = errors.New(
	"CreateListingCommand must be created via NewCreateListingCommand constructor",
)

// CreateListingCommand represents a seller's request to publish a crop or
// product listing with an initial stock level and unit price.
type CreateListingCommand struct { //nolint:recvcheck //using for validation
	listingID kernel.UUID
	sellerID  kernel.UUID
	kind      listing.Kind
	name      string
	available int
	unitPrice kernel.Money

	guard guard.ConstructorGuard
}

// NewCreateListingCommand creates a command to publish a new listing.
// Field validation is delegated to the listing aggregate at handle time;
// here only the identifiers and the kind are checked.
func NewCreateListingCommand(
	listingID kernel.UUID,
	sellerID kernel.UUID,
	kind listing.Kind,
	name string,
	available int,
	unitPrice kernel.Money,
) (CreateListingCommand, error) {
	listingCommand := CreateListingCommand{
		name:      name,
		available: available,
		unitPrice: unitPrice,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		listingCommand.setListingID(listingID),
		listingCommand.setSellerID(sellerID),
		listingCommand.setKind(kind),
	); err != nil {
		return CreateListingCommand{}, err
	}

	return listingCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateListingCommand) Validate() error {
	return c.guard.Validate(ErrCreateListingCommandIsNotConstructed)
}

// ListingID returns the identifier for the new listing.
func (c CreateListingCommand) ListingID() kernel.UUID {
	return c.listingID
}

// SellerID returns the identifier of the seller publishing the listing.
func (c CreateListingCommand) SellerID() kernel.UUID {
	return c.sellerID
}

// Kind returns whether the listing is a crop or a product.
func (c CreateListingCommand) Kind() listing.Kind {
	return c.kind
}

// Name returns the display name of the listing.
func (c CreateListingCommand) Name() string {
	return c.name
}

// Available returns the initial stock level.
func (c CreateListingCommand) Available() int {
	return c.available
}

// UnitPrice returns the per-unit price.
func (c CreateListingCommand) UnitPrice() kernel.Money {
	return c.unitPrice
}

func (c *CreateListingCommand) setListingID(listingID kernel.UUID) error {
	if err := listingID.Validate(); err != nil {
		return err
	}

	c.listingID = listingID
	return nil
}

func (c *CreateListingCommand) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}

	c.sellerID = sellerID
	return nil
}

func (c *CreateListingCommand) setKind(kind listing.Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	c.kind = kind
	return nil
}
