package commands

import (
	"context"
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
)

// UpdateOrderStatusResult is a snapshot of the order after the status
// change, shaped for response rendering and for composing the buyer's
// order-status notification.
type UpdateOrderStatusResult struct {
	OrderID          string
	BuyerID          string
	BuyerName        string
	BuyerEmail       string
	SellerID         string
	SellerName       string
	ItemName         string
	Quantity         int
	TotalAmount      kernel.Money
	OldStatus        string
	NewStatus        string
	TrackingID       string
	ExpectedDelivery *time.Time

	// Changed reports whether the aggregate actually moved. A repeated
	// identical request is answered with Changed=false and no write.
	Changed bool
}

// UpdateOrderStatusCommandHandler handles role-gated order status changes.
// The aggregate decides whether the transition is legal for the actor; the
// handler decides whether the result needs to be written, and guards the
// write against concurrent status changes.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateOrderStatusCommandHandler creates a handler for status changes.
// Requires an OrderUoWFactory for transactional persistence.
func NewUpdateOrderStatusCommandHandler(uowFactory OrderUoWFactory) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status change command.
// Loads the order, applies the transition through the aggregate and writes
// the result back with a compare-and-swap on the previously read status.
// When the request is an exact repeat of the current state, nothing is
// written and the result carries Changed=false.
func (h *UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (UpdateOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return UpdateOrderStatusResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UpdateOrderStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return UpdateOrderStatusResult{}, err
	}

	priorStatus := aggregate.Status()
	changed, err := aggregate.ChangeStatus(cmd.Actor(), cmd.Requested(), cmd.Options(), time.Now())
	if err != nil {
		return UpdateOrderStatusResult{}, err
	}

	if !changed {
		return newUpdateOrderStatusResult(aggregate, priorStatus, false), nil
	}

	if err = orderRepo.Update(ctx, aggregate, priorStatus); err != nil {
		return UpdateOrderStatusResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return UpdateOrderStatusResult{}, err
	}

	return newUpdateOrderStatusResult(aggregate, priorStatus, true), nil
}

func newUpdateOrderStatusResult(aggregate *order.Order, prior order.Status, changed bool) UpdateOrderStatusResult {
	return UpdateOrderStatusResult{
		OrderID:          aggregate.ID().String(),
		BuyerID:          aggregate.Buyer().ID().String(),
		BuyerName:        aggregate.Buyer().Name(),
		BuyerEmail:       aggregate.Buyer().Email(),
		SellerID:         aggregate.Seller().ID().String(),
		SellerName:       aggregate.Seller().Name(),
		ItemName:         aggregate.Item().Name(),
		Quantity:         aggregate.Quantity(),
		TotalAmount:      aggregate.TotalAmount(),
		OldStatus:        prior.String(),
		NewStatus:        aggregate.Status().String(),
		TrackingID:       aggregate.TrackingID(),
		ExpectedDelivery: aggregate.ExpectedDelivery(),
		Changed:          changed,
	}
}
