package commands

import (
	"context"
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/pkg/errs"
)

// CreateOrderResult is a snapshot of the freshly placed order, shaped for
// response rendering and for composing the new-order seller notification.
type CreateOrderResult struct {
	OrderID       string
	BuyerID       string
	BuyerName     string
	BuyerEmail    string
	SellerID      string
	SellerName    string
	SellerEmail   string
	ItemName      string
	Quantity      int
	TotalAmount   kernel.Money
	PaymentMethod string
	ShippingCity  string
	Status        string
	OrderDate     time.Time
}

// CreateOrderCommandHandler handles the business logic for placing an order.
// Resolves the listing, reserves stock and persists the order in a single
// transaction so a sold-out listing can never produce a dangling order.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	cmd, _ := NewCreateOrderCommand(orderID, buyer, seller, listingID, 15, address, order.OnlinePayment)
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order placement failed: %w", err)
//	}
//	// result carries everything the seller notification needs
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// Requires a UoWFactory spanning both order and listing repositories.
func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order placement command.
// Loads the listing, checks availability, decrements stock and creates the
// order in Pending status. The reservation and the order share one
// transaction, so either both are persisted or neither is.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	listingRepo := uow.ListingRepository()
	lst, err := listingRepo.Get(ctx, cmd.ListingID())
	if err != nil {
		return CreateOrderResult{}, err
	}

	if !lst.SellerID().IsEqual(cmd.Seller().ID()) {
		return CreateOrderResult{}, errs.NewValueIsInvalidError("sellerId")
	}

	if !lst.CanFulfill(cmd.Quantity()) {
		return CreateOrderResult{}, errs.NewValueIsOutOfRangeError("quantity", cmd.Quantity(), 1, lst.Available())
	}

	if err = lst.Reserve(cmd.Quantity()); err != nil {
		return CreateOrderResult{}, err
	}

	if err = listingRepo.Update(ctx, lst); err != nil {
		return CreateOrderResult{}, err
	}

	itemKind, err := order.ParseItemKind(lst.Kind().String())
	if err != nil {
		return CreateOrderResult{}, err
	}

	item, err := order.NewItemRef(lst.ID(), itemKind, lst.Name())
	if err != nil {
		return CreateOrderResult{}, err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.Buyer(),
		cmd.Seller(),
		item,
		cmd.Quantity(),
		lst.UnitPrice(),
		cmd.ShippingAddress(),
		cmd.PaymentMethod(),
		time.Now(),
	)
	if err != nil {
		return CreateOrderResult{}, err
	}

	orderRepo := uow.OrderRepository()
	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	return CreateOrderResult{
		OrderID:       aggregate.ID().String(),
		BuyerID:       aggregate.Buyer().ID().String(),
		BuyerName:     aggregate.Buyer().Name(),
		BuyerEmail:    aggregate.Buyer().Email(),
		SellerID:      aggregate.Seller().ID().String(),
		SellerName:    aggregate.Seller().Name(),
		SellerEmail:   aggregate.Seller().Email(),
		ItemName:      aggregate.Item().Name(),
		Quantity:      aggregate.Quantity(),
		TotalAmount:   aggregate.TotalAmount(),
		PaymentMethod: aggregate.PaymentMethod().String(),
		ShippingCity:  aggregate.ShippingAddress().City(),
		Status:        aggregate.Status().String(),
		OrderDate:     aggregate.OrderDate(),
	}, nil
}
