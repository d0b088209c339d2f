package ports

import (
	"context"

	"agromarket/internal/core/domain/model/notification"
)

// NotificationPublisher enqueues a notification request for asynchronous
// delivery. Publishing is fire-and-forget: it never blocks the business
// flow, and a dropped or failed notification is logged, not surfaced.
type NotificationPublisher interface {
	Publish(req notification.Request)
}

// OrderEvent is the payload published to the order-changed stream after a
// committed creation or transition.
type OrderEvent struct {
	EventType   string `json:"event_type"`
	OrderID     string `json:"order_id"`
	BuyerID     string `json:"buyer_id"`
	SellerID    string `json:"seller_id"`
	ItemName    string `json:"item_name"`
	Quantity    int    `json:"quantity"`
	TotalAmount int64  `json:"total_amount"`
	OldStatus   string `json:"old_status,omitempty"`
	NewStatus   string `json:"new_status"`
	OccurredAt  string `json:"occurred_at"`
}

// OrderEventPublisher publishes order lifecycle events to the external
// stream. Delivery is best-effort; failures are logged by the
// implementation and never fed back into the business transition.
type OrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, event OrderEvent) error
}
