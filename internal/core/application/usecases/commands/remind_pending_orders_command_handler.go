package commands

import (
	"context"
	"time"

	"agromarket/internal/core/domain/model/notification"
	"agromarket/internal/core/ports"
)

// RemindPendingOrdersCommandHandler re-sends the new-order notification to
// sellers whose orders have gone unconfirmed past the reminder age. The
// sweep reads only; it never mutates order state, and publishing is
// fire-and-forget like every other notification.
type RemindPendingOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.NotificationPublisher
}

// NewRemindPendingOrdersCommandHandler creates a handler for the reminder
// sweep.
func NewRemindPendingOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.NotificationPublisher,
) RemindPendingOrdersCommandHandler {
	return RemindPendingOrdersCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle finds stale pending orders and publishes one reminder per order.
// Returns the number of reminders published.
func (h *RemindPendingOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd RemindPendingOrdersCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	cutoff := time.Now().Add(-cmd.OlderThan())

	stale, err := uow.OrderRepository().GetPendingOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	published := 0
	for _, aggregate := range stale {
		req, err := notification.NewOrderPlacedRequest(notification.Request{
			Recipient: notification.Recipient{
				Name:  aggregate.Seller().Name(),
				Email: aggregate.Seller().Email(),
				Role:  "seller",
			},
			OrderID:       aggregate.ID().String(),
			ItemName:      aggregate.Item().Name(),
			Quantity:      aggregate.Quantity(),
			TotalAmount:   aggregate.TotalAmount(),
			BuyerName:     aggregate.Buyer().Name(),
			BuyerEmail:    aggregate.Buyer().Email(),
			PaymentMethod: aggregate.PaymentMethod().String(),
			ShippingCity:  aggregate.ShippingAddress().City(),
		})
		if err != nil {
			continue
		}

		h.publisher.Publish(req)
		published++
	}

	return published, nil
}
