package notifications

// welcomeCopy is the per-role content of the welcome mail. Every role gets
// its own benefit list and call to action.
type welcomeCopy struct {
	Subject  string
	Title    string
	Intro    string
	Benefits []string
	CTALabel string
	CTAPath  string
}

// welcomeCopyFor selects the welcome content for a marketplace role.
// Unrecognized roles receive the buyer copy.
func welcomeCopyFor(role string) welcomeCopy {
	switch role {
	case "farmer":
		return welcomeCopy{
			Subject: "Welcome to AgroMarket, start selling your harvest",
			Title:   "Welcome, farmer!",
			Intro:   "Your farm is now part of the AgroMarket network.",
			Benefits: []string{
				"List your crops and reach buyers across the country",
				"Set your own prices with no middlemen",
				"Get paid directly for every confirmed order",
				"Track orders from confirmation to delivery",
			},
			CTALabel: "List your first crop",
			CTAPath:  "/farmer/crops/new",
		}
	case "seller":
		return welcomeCopy{
			Subject: "Welcome to AgroMarket, open your store",
			Title:   "Welcome, seller!",
			Intro:   "Your store is ready on AgroMarket.",
			Benefits: []string{
				"List agri products, equipment and supplies",
				"Manage stock and orders from one dashboard",
				"Confirm and ship orders with tracking",
				"Build a verified seller reputation",
			},
			CTALabel: "Add your first product",
			CTAPath:  "/seller/products/new",
		}
	default:
		return welcomeCopy{
			Subject: "Welcome to AgroMarket, fresh produce awaits",
			Title:   "Welcome, buyer!",
			Intro:   "You can now buy directly from farms and stores.",
			Benefits: []string{
				"Buy fresh crops straight from the farm",
				"Compare prices from verified sellers",
				"Pay on delivery, online or by bank transfer",
				"Follow every order through to your door",
			},
			CTALabel: "Browse fresh crops",
			CTAPath:  "/crops",
		}
	}
}

// statusCopy is the fixed content tuple rendered for one order status.
type statusCopy struct {
	Title   string
	Message string
	Color   string
	Subject string
}

// statusCopyFor maps a wire-level status name to its copy. Names outside
// the five known statuses render with the pending copy. That fallback is a
// documented contract, not an error: callers may forward raw status strings
// without pre-validating them.
func statusCopyFor(status string) statusCopy {
	switch status {
	case "confirmed":
		return statusCopy{
			Title:   "Order Confirmed",
			Message: "The seller has confirmed your order and is preparing it for shipment.",
			Color:   "#2563eb",
			Subject: "Your order has been confirmed",
		}
	case "in_transit":
		return statusCopy{
			Title:   "Order Shipped",
			Message: "Your order is on its way. Use the tracking details below to follow it.",
			Color:   "#7c3aed",
			Subject: "Your order is on the way",
		}
	case "delivered":
		return statusCopy{
			Title:   "Order Delivered",
			Message: "Your order has been delivered. We hope everything arrived in perfect condition.",
			Color:   "#16a34a",
			Subject: "Your order has been delivered",
		}
	case "cancelled":
		return statusCopy{
			Title:   "Order Cancelled",
			Message: "Your order has been cancelled. If a payment was made it will be refunded.",
			Color:   "#dc2626",
			Subject: "Your order has been cancelled",
		}
	default:
		return statusCopy{
			Title:   "Order Placed",
			Message: "Your order has been placed and is waiting for the seller's confirmation.",
			Color:   "#d97706",
			Subject: "Your order has been placed",
		}
	}
}
