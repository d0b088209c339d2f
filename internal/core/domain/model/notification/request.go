// Package notification defines the ephemeral payload handed from the order
// flows to the notification dispatcher. A Request exists only in memory for
// the duration of one delivery attempt chain; it is never persisted.
package notification

import (
	"fmt"
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/errs"
)

// Kind selects which template family renders the request.
type Kind int

const (
	// KindUnknown represents an invalid or undefined kind.
	KindUnknown Kind = iota

	// KindWelcome greets a newly registered user.
	KindWelcome

	// KindOrderStatus tells a buyer their order moved to a new status.
	KindOrderStatus

	// KindNewOrder tells a seller a new order needs their confirmation.
	KindNewOrder
)

// String returns the wire-level kind name, or "unknown".
func (k Kind) String() string {
	switch k {
	case KindWelcome:
		return "welcome"
	case KindOrderStatus:
		return "order-status"
	case KindNewOrder:
		return "new-order"
	default:
		return "unknown"
	}
}

// Recipient addresses one message. Role is the marketplace role name
// (farmer, buyer or seller) and drives welcome template selection.
type Recipient struct {
	Name  string
	Email string
	Role  string
}

// Request carries everything the dispatcher needs to render and send one
// message. Fields that do not apply to the request's Kind stay zero.
//
// Statuses travel as wire-level names rather than domain enums: the
// dispatcher's order-status template falls back to the pending copy for
// names it does not recognize, so an unknown name must survive the trip.
type Request struct {
	Kind      Kind
	Recipient Recipient

	// Welcome fields.
	Location string

	// Order fields, shared by order-status and new-order.
	OrderID     string
	ItemName    string
	Quantity    int
	TotalAmount kernel.Money

	// Order-status fields.
	OldStatus  string
	NewStatus  string
	SellerName string

	// New-order fields.
	BuyerName     string
	BuyerEmail    string
	PaymentMethod string
	ShippingCity  string

	// Optional logistics fields.
	TrackingID       string
	ExpectedDelivery *time.Time
}

// NewWelcomeRequest builds a welcome notification for a new user.
func NewWelcomeRequest(name, email, role, location string) (Request, error) {
	if email == "" {
		return Request{}, errs.NewValueIsRequiredError("email")
	}
	if name == "" {
		return Request{}, errs.NewValueIsRequiredError("name")
	}

	return Request{
		Kind:      KindWelcome,
		Recipient: Recipient{Name: name, Email: email, Role: role},
		Location:  location,
	}, nil
}

// NewOrderStatusRequest builds a status-change notification for a buyer.
// The new status is carried verbatim; unrecognized names render with the
// pending copy downstream instead of failing here.
func NewOrderStatusRequest(req Request) (Request, error) {
	if req.Recipient.Email == "" {
		return Request{}, errs.NewValueIsRequiredError("buyerEmail")
	}
	if req.OrderID == "" {
		return Request{}, errs.NewValueIsRequiredError("orderId")
	}
	if req.NewStatus == "" {
		return Request{}, errs.NewValueIsRequiredError("status")
	}

	req.Kind = KindOrderStatus
	return req, nil
}

// NewOrderPlacedRequest builds a new-order notification for a seller.
func NewOrderPlacedRequest(req Request) (Request, error) {
	if req.Recipient.Email == "" {
		return Request{}, errs.NewValueIsRequiredError("sellerEmail")
	}
	if req.OrderID == "" {
		return Request{}, errs.NewValueIsRequiredError("orderId")
	}
	if req.ItemName == "" {
		return Request{}, errs.NewValueIsRequiredError("itemName")
	}

	req.Kind = KindNewOrder
	return req, nil
}

// Validate checks that the request carries a known kind and a recipient.
func (r Request) Validate() error {
	if r.Kind != KindWelcome && r.Kind != KindOrderStatus && r.Kind != KindNewOrder {
		return errs.NewValueIsInvalidErrorWithCause("kind",
			fmt.Errorf("%d is not a valid notification kind", int(r.Kind)))
	}
	if r.Recipient.Email == "" {
		return errs.NewValueIsRequiredError("recipient email")
	}
	return nil
}
