package commands

import (
	"context"
)

// RestockListingCommandHandler handles adding stock to existing listings.
type RestockListingCommandHandler struct {
	uowFactory ListingUoWFactory
}

// NewRestockListingCommandHandler creates a handler for restock operations.
func NewRestockListingCommandHandler(uowFactory ListingUoWFactory) RestockListingCommandHandler {
	return RestockListingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the restock command.
// Loads the listing, increases its stock and persists the change within a
// transaction.
func (h *RestockListingCommandHandler) Handle(ctx context.Context, cmd RestockListingCommand) error {
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

	listingRepo := uow.ListingRepository()
	aggregate, err := listingRepo.Get(ctx, cmd.ListingID())
	if err != nil {
		return err
	}

	if err = aggregate.Restock(cmd.Quantity()); err != nil {
		return err
	}

	if err = listingRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
