package mailerapi

// WelcomeRequest is the wire payload of POST /send-welcome.
type WelcomeRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Location string `json:"location,omitempty"`
}

// OrderStatusRequest is the wire payload of POST /send-order-status.
// Status is forwarded verbatim; the mailer renders unknown names with the
// pending copy.
type OrderStatusRequest struct {
	BuyerEmail       string `json:"buyerEmail"`
	BuyerName        string `json:"buyerName,omitempty"`
	OrderID          string `json:"orderId"`
	ItemName         string `json:"itemName"`
	Quantity         int    `json:"quantity"`
	Status           string `json:"status"`
	SellerName       string `json:"sellerName,omitempty"`
	TrackingID       string `json:"trackingId,omitempty"`
	ExpectedDelivery string `json:"expectedDelivery,omitempty"`
	TotalAmount      int64  `json:"totalAmount"`
	Currency         string `json:"currency"`
}

// NewOrderRequest is the wire payload of POST /send-new-order.
type NewOrderRequest struct {
	SellerEmail   string `json:"sellerEmail"`
	SellerName    string `json:"sellerName,omitempty"`
	OrderID       string `json:"orderId"`
	ItemName      string `json:"itemName"`
	Quantity      int    `json:"quantity"`
	TotalAmount   int64  `json:"totalAmount"`
	Currency      string `json:"currency"`
	BuyerName     string `json:"buyerName,omitempty"`
	BuyerEmail    string `json:"buyerEmail,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
	ShippingCity  string `json:"shippingCity,omitempty"`
}

// SendResponse is the wire response of all send endpoints.
type SendResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// HealthResponse is the wire response of GET /health.
type HealthResponse struct {
	IsReady               bool   `json:"isReady"`
	TransporterConfigured bool   `json:"transporterConfigured"`
	SMTPUser              string `json:"smtpUser"`
}
