package queries

import (
	"context"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetBuyerOrdersQueryHandler reads a buyer's order history from the database.
//
// Example:
//
//	handler := NewGetBuyerOrdersQueryHandler(db)
//	query, _ := NewGetBuyerOrdersQuery(buyerID)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get buyer orders: %v", err)
//	    return err
//	}
type GetBuyerOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetBuyerOrdersQueryHandler creates a handler for buyer order history queries.
// Requires a GORM database connection for query execution.
func NewGetBuyerOrdersQueryHandler(db *gorm.DB) GetBuyerOrdersQueryHandler {
	return GetBuyerOrdersQueryHandler{db: db}
}

// Handle executes the query and returns the buyer's orders, newest first.
func (h GetBuyerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetBuyerOrdersQuery,
) ([]GetBuyerOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetBuyerOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			item_name,
			quantity,
			total_amount,
			currency,
			status,
			payment_method,
			seller_name,
			order_date,
			expected_delivery,
			actual_delivery,
			tracking_id
		FROM orders
		WHERE buyer_id = ?
		ORDER BY order_date DESC
	`, query.BuyerID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetBuyerOrdersQueryResponse
		var id uuid.UUID
		var totalAmount int64
		var currency string
		var status, paymentMethod int

		err = rows.Scan(
			&id,
			&resp.ItemName,
			&resp.Quantity,
			&totalAmount,
			&currency,
			&status,
			&paymentMethod,
			&resp.SellerName,
			&resp.OrderDate,
			&resp.ExpectedDelivery,
			&resp.ActualDelivery,
			&resp.TrackingID,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		total, moneyErr := kernel.NewMoney(totalAmount, currency)
		if moneyErr != nil {
			return nil, moneyErr
		}
		resp.TotalAmount = total

		resp.Status = order.Status(status)
		resp.PaymentMethod = order.PaymentMethod(paymentMethod)
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
