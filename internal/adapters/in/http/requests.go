package http

import "time"

// PartyRequest identifies one side of an order with its denormalized
// display fields.
type PartyRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AddressRequest is the structured shipping address block.
type AddressRequest struct {
	Street     string   `json:"street"`
	City       string   `json:"city"`
	State      string   `json:"state"`
	PostalCode string   `json:"postalCode"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

// CreateListingRequest is the payload of POST /api/v1/listings.
type CreateListingRequest struct {
	SellerID  string `json:"sellerId"`
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Available int    `json:"available"`
	UnitPrice int64  `json:"unitPrice"`
	Currency  string `json:"currency"`
}

// RestockListingRequest is the payload of POST /api/v1/listings/:id/restock.
type RestockListingRequest struct {
	Quantity int `json:"quantity"`
}

// CreateOrderRequest is the payload of POST /api/v1/orders.
type CreateOrderRequest struct {
	Buyer           PartyRequest   `json:"buyer"`
	Seller          PartyRequest   `json:"seller"`
	ListingID       string         `json:"listingId"`
	Quantity        int            `json:"quantity"`
	ShippingAddress AddressRequest `json:"shippingAddress"`
	PaymentMethod   string         `json:"paymentMethod"`
}

// UpdateOrderStatusRequest is the payload of POST /api/v1/orders/:id/status.
// ActorRole gates which transitions are allowed; the optional fields apply
// only to the transitions that accept them.
type UpdateOrderStatusRequest struct {
	ActorRole          string     `json:"actorRole"`
	Status             string     `json:"status"`
	ExpectedDelivery   *time.Time `json:"expectedDelivery,omitempty"`
	TrackingID         *string    `json:"trackingId,omitempty"`
	Notes              *string    `json:"notes,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
}

// OrderCreatedResponse is the body returned on successful order placement.
type OrderCreatedResponse struct {
	OrderID       string    `json:"orderId"`
	Status        string    `json:"status"`
	ItemName      string    `json:"itemName"`
	Quantity      int       `json:"quantity"`
	TotalAmount   int64     `json:"totalAmount"`
	Currency      string    `json:"currency"`
	PaymentMethod string    `json:"paymentMethod"`
	OrderDate     time.Time `json:"orderDate"`
}

// OrderStatusResponse is the body returned on a status update. Changed is
// false when the request matched the stored state and nothing was written.
type OrderStatusResponse struct {
	OrderID          string     `json:"orderId"`
	OldStatus        string     `json:"oldStatus"`
	NewStatus        string     `json:"newStatus"`
	TrackingID       string     `json:"trackingId,omitempty"`
	ExpectedDelivery *time.Time `json:"expectedDelivery,omitempty"`
	Changed          bool       `json:"changed"`
}

// BuyerOrderResponse is one row of GET /api/v1/buyers/:id/orders.
type BuyerOrderResponse struct {
	OrderID          string     `json:"orderId"`
	ItemName         string     `json:"itemName"`
	Quantity         int        `json:"quantity"`
	TotalAmount      int64      `json:"totalAmount"`
	Currency         string     `json:"currency"`
	Status           string     `json:"status"`
	PaymentMethod    string     `json:"paymentMethod"`
	SellerName       string     `json:"sellerName"`
	OrderDate        time.Time  `json:"orderDate"`
	ExpectedDelivery *time.Time `json:"expectedDelivery,omitempty"`
	ActualDelivery   *time.Time `json:"actualDelivery,omitempty"`
	TrackingID       string     `json:"trackingId,omitempty"`
}

// SellerDashboardResponse is the body of GET /api/v1/sellers/:id/dashboard.
type SellerDashboardResponse struct {
	TotalOrders      int    `json:"totalOrders"`
	PendingCount     int    `json:"pendingCount"`
	ConfirmedCount   int    `json:"confirmedCount"`
	InTransitCount   int    `json:"inTransitCount"`
	DeliveredCount   int    `json:"deliveredCount"`
	CancelledCount   int    `json:"cancelledCount"`
	ReturnedCount    int    `json:"returnedCount"`
	DeliveredRevenue int64  `json:"deliveredRevenue"`
	Currency         string `json:"currency,omitempty"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
