package queries

import (
	"errors"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/guard"
)

var ErrGetSellerDashboardQueryIsNotConstructed = errors.New(
	"GetSellerDashboardQuery must be created via NewGetSellerDashboardQuery constructor",
)

// GetSellerDashboardQuery aggregates a seller's order book into per-status
// counts and realized revenue for the seller's home screen.
type GetSellerDashboardQuery struct {
	sellerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetSellerDashboardQuery creates a dashboard query for one seller.
func NewGetSellerDashboardQuery(sellerID kernel.UUID) (GetSellerDashboardQuery, error) {
	if err := sellerID.Validate(); err != nil {
		return GetSellerDashboardQuery{}, err
	}

	return GetSellerDashboardQuery{
		sellerID: sellerID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSellerDashboardQuery) Validate() error {
	return q.guard.Validate(ErrGetSellerDashboardQueryIsNotConstructed)
}

// SellerID returns the seller whose dashboard is requested.
func (q GetSellerDashboardQuery) SellerID() kernel.UUID {
	return q.sellerID
}

// GetSellerDashboardQueryResponse summarizes a seller's order book.
// DeliveredRevenue counts only delivered orders, in minor currency units;
// Currency is empty when the seller has no delivered orders yet.
type GetSellerDashboardQueryResponse struct {
	TotalOrders      int
	PendingCount     int
	ConfirmedCount   int
	InTransitCount   int
	DeliveredCount   int
	CancelledCount   int
	ReturnedCount    int
	DeliveredRevenue int64
	Currency         string
}
