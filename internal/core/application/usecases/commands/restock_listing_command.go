package commands

import (
	"errors"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/guard"
)

var ErrRestockListingCommandIsNotConstructed = errors.New(
	"RestockListingCommand must be created via NewRestockListingCommand constructor",
)

// RestockListingCommand represents a seller's request to add stock to an
// existing listing.
type RestockListingCommand struct { //nolint:recvcheck //using for validation
	listingID kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

// NewRestockListingCommand creates a command to add stock to a listing.
// Validates that the listing ID is valid and the quantity is positive.
func NewRestockListingCommand(listingID kernel.UUID, quantity int) (RestockListingCommand, error) {
	restockCommand := RestockListingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		restockCommand.setListingID(listingID),
		restockCommand.setQuantity(quantity),
	); err != nil {
		return RestockListingCommand{}, err
	}

	return restockCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RestockListingCommand) Validate() error {
	return c.guard.Validate(ErrRestockListingCommandIsNotConstructed)
}

// ListingID returns the identifier of the listing to restock.
func (c RestockListingCommand) ListingID() kernel.UUID {
	return c.listingID
}

// Quantity returns how many units to add.
func (c RestockListingCommand) Quantity() int {
	return c.quantity
}

func (c *RestockListingCommand) setListingID(listingID kernel.UUID) error {
	if err := listingID.Validate(); err != nil {
		return err
	}

	c.listingID = listingID
	return nil
}

func (c *RestockListingCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}

	c.quantity = quantity
	return nil
}
