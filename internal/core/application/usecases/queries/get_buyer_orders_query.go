// Package queries contains read-side operations in the CQRS architecture.
// Query handlers go straight to the database and return plain response
// structs, bypassing the aggregates entirely.
package queries

import (
	"errors"
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/pkg/guard"
)

var ErrGetBuyerOrdersQueryIsNotConstructed = errors.New(
	"GetBuyerOrdersQuery must be created via NewGetBuyerOrdersQuery constructor",
)

// GetBuyerOrdersQuery retrieves a buyer's order history, newest first.
//
// Example:
//
//	query, err := NewGetBuyerOrdersQuery(buyerID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetBuyerOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get buyer orders: %w", err)
//	}
type GetBuyerOrdersQuery struct {
	buyerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetBuyerOrdersQuery creates a query for a buyer's order history.
// Validates that the buyer ID is a constructed UUID.
func NewGetBuyerOrdersQuery(buyerID kernel.UUID) (GetBuyerOrdersQuery, error) {
	if err := buyerID.Validate(); err != nil {
		return GetBuyerOrdersQuery{}, err
	}

	return GetBuyerOrdersQuery{
		buyerID: buyerID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetBuyerOrdersQueryIsNotConstructed if validation fails.
func (q GetBuyerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetBuyerOrdersQueryIsNotConstructed)
}

// BuyerID returns the buyer whose orders are requested.
func (q GetBuyerOrdersQuery) BuyerID() kernel.UUID {
	return q.buyerID
}

// GetBuyerOrdersQueryResponse is one row of a buyer's order history.
type GetBuyerOrdersQueryResponse struct {
	ID               kernel.UUID
	ItemName         string
	Quantity         int
	TotalAmount      kernel.Money
	Status           order.Status
	PaymentMethod    order.PaymentMethod
	SellerName       string
	OrderDate        time.Time
	ExpectedDelivery *time.Time
	ActualDelivery   *time.Time
	TrackingID       string
}
