package queries

import (
	"context"

	"agromarket/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetSellerDashboardQueryHandler computes a seller's dashboard straight from
// the orders table with a single grouped scan.
type GetSellerDashboardQueryHandler struct {
	db *gorm.DB
}

// NewGetSellerDashboardQueryHandler creates a handler for seller dashboard queries.
// Requires a GORM database connection for query execution.
func NewGetSellerDashboardQueryHandler(db *gorm.DB) GetSellerDashboardQueryHandler {
	return GetSellerDashboardQueryHandler{db: db}
}

// Handle executes the query and returns per-status counts plus the revenue
// realized from delivered orders.
func (h GetSellerDashboardQueryHandler) Handle(
	ctx context.Context,
	query GetSellerDashboardQuery,
) (GetSellerDashboardQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSellerDashboardQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*),
			COALESCE(SUM(total_amount), 0),
			MIN(currency)
		FROM orders
		WHERE seller_id = ?
		GROUP BY status
	`, query.SellerID().Bytes()).Rows()
	if err != nil {
		return GetSellerDashboardQueryResponse{}, err
	}
	defer rows.Close()

	var resp GetSellerDashboardQueryResponse
	for rows.Next() {
		var status, count int
		var amount int64
		var currency *string

		if err = rows.Scan(&status, &count, &amount, &currency); err != nil {
			return GetSellerDashboardQueryResponse{}, err
		}

		resp.TotalOrders += count
		switch order.Status(status) {
		case order.Pending:
			resp.PendingCount = count
		case order.Confirmed:
			resp.ConfirmedCount = count
		case order.InTransit:
			resp.InTransitCount = count
		case order.Delivered:
			resp.DeliveredCount = count
			resp.DeliveredRevenue = amount
			if currency != nil {
				resp.Currency = *currency
			}
		case order.Cancelled:
			resp.CancelledCount = count
		case order.Returned:
			resp.ReturnedCount = count
		}
	}

	if err = rows.Err(); err != nil {
		return GetSellerDashboardQueryResponse{}, err
	}

	return resp, nil
}
