package commands

import (
	"context"

	"agromarket/internal/core/domain/model/listing"
)

// CreateListingCommandHandler handles publishing new listings.
type CreateListingCommandHandler struct {
	uowFactory ListingUoWFactory
}

// NewCreateListingCommandHandler creates a handler for listing publication.
// Requires a ListingUoWFactory for transactional persistence.
func NewCreateListingCommandHandler(uowFactory ListingUoWFactory) CreateListingCommandHandler {
	return CreateListingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the listing publication command.
// Creates the listing aggregate, which enforces name, stock and price
// validity, and persists it within a transaction.
func (h *CreateListingCommandHandler) Handle(ctx context.Context, cmd CreateListingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := listing.NewListing(
		cmd.ListingID(),
		cmd.SellerID(),
		cmd.Kind(),
		cmd.Name(),
		cmd.Available(),
		cmd.UnitPrice(),
	)
	if err != nil {
		return err
	}

	listingRepo := uow.ListingRepository()
	if err = listingRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
