// Package notifications renders notification requests into ready-to-send
// mail messages and hands them to the mail transport. Delivery is
// best-effort: the dispatcher converts every transport error into a failed
// result and the in-process queue decouples publishing from sending, so a
// lost mail never disturbs the order flow that triggered it.
package notifications

import (
	"fmt"
	"html/template"
	"strings"

	"agromarket/internal/core/domain/model/notification"
	"agromarket/internal/core/ports"
	"agromarket/internal/pkg/errs"
)

const welcomeHTML = `<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
  <div style="background:#16a34a;color:#fff;padding:24px;text-align:center">
    <h1 style="margin:0">{{.Title}}</h1>
  </div>
  <div style="padding:24px">
    <p>Hi {{.Name}},</p>
    <p>{{.Intro}}</p>
    <p>Account: {{.Email}} ({{.Role}}{{if .Location}}, {{.Location}}{{end}})</p>
    <ul>
      {{range .Benefits}}<li>{{.}}</li>
      {{end}}
    </ul>
    <p style="text-align:center">
      <a href="{{.CTAURL}}" style="background:#16a34a;color:#fff;padding:12px 24px;text-decoration:none;border-radius:4px">{{.CTALabel}}</a>
    </p>
  </div>
</div>`

const orderStatusHTML = `<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
  <div style="background:{{.Color}};color:#fff;padding:24px;text-align:center">
    <h1 style="margin:0">{{.Title}}</h1>
  </div>
  <div style="padding:24px">
    <p>{{.Message}}</p>
    <table style="width:100%;border-collapse:collapse">
      <tr><td style="padding:4px 0;color:#6b7280">Order</td><td>{{.OrderID}}</td></tr>
      <tr><td style="padding:4px 0;color:#6b7280">Item</td><td>{{.ItemName}} &times; {{.Quantity}}</td></tr>
      <tr><td style="padding:4px 0;color:#6b7280">Total</td><td>{{.TotalAmount}}</td></tr>
      {{if .SellerName}}<tr><td style="padding:4px 0;color:#6b7280">Seller</td><td>{{.SellerName}}</td></tr>{{end}}
      {{if .TrackingID}}<tr><td style="padding:4px 0;color:#6b7280">Tracking</td><td>{{.TrackingID}}</td></tr>{{end}}
      {{if .ExpectedDelivery}}<tr><td style="padding:4px 0;color:#6b7280">Expected delivery</td><td>{{.ExpectedDelivery}}</td></tr>{{end}}
    </table>
    {{if .Delivered}}
    <div style="margin-top:24px;padding:16px;background:#f0fdf4;text-align:center">
      <p style="margin:0 0 12px">How was your order? Your rating helps other buyers.</p>
      <a href="{{.RateURL}}" style="background:#16a34a;color:#fff;padding:10px 20px;text-decoration:none;border-radius:4px">Rate this order</a>
    </div>
    {{end}}
  </div>
</div>`

const newOrderHTML = `<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
  <div style="background:#2563eb;color:#fff;padding:24px;text-align:center">
    <h1 style="margin:0">New Order Received</h1>
  </div>
  <div style="padding:24px">
    <div style="background:#fef3c7;border-left:4px solid #d97706;padding:12px;margin-bottom:24px">
      <strong>Action required:</strong> please confirm or cancel this order within 24 hours.
    </div>
    <table style="width:100%;border-collapse:collapse">
      <tr><td style="padding:4px 0;color:#6b7280">Order</td><td>{{.OrderID}}</td></tr>
      <tr><td style="padding:4px 0;color:#6b7280">Item</td><td>{{.ItemName}} &times; {{.Quantity}}</td></tr>
      <tr><td style="padding:4px 0;color:#6b7280">Total</td><td>{{.TotalAmount}}</td></tr>
      <tr><td style="padding:4px 0;color:#6b7280">Buyer</td><td>{{.BuyerName}} ({{.BuyerEmail}})</td></tr>
      {{if .PaymentMethod}}<tr><td style="padding:4px 0;color:#6b7280">Payment</td><td>{{.PaymentMethod}}</td></tr>{{end}}
      {{if .ShippingCity}}<tr><td style="padding:4px 0;color:#6b7280">Ships to</td><td>{{.ShippingCity}}</td></tr>{{end}}
    </table>
    <p style="text-align:center;margin-top:24px">
      <a href="{{.ConfirmURL}}" style="background:#16a34a;color:#fff;padding:12px 24px;text-decoration:none;border-radius:4px;margin-right:8px">Confirm order</a>
      <a href="{{.OrdersURL}}" style="background:#6b7280;color:#fff;padding:12px 24px;text-decoration:none;border-radius:4px">View all orders</a>
    </p>
  </div>
</div>`

// Composer renders a notification request into subject, HTML and plain
// text. Template selection is an explicit switch over the request kind and
// status name; see statusCopyFor for the unknown-status fallback.
type Composer struct {
	baseURL     string
	welcome     *template.Template
	orderStatus *template.Template
	newOrder    *template.Template
}

// NewComposer parses the mail templates. baseURL is the public site root
// used to build call-to-action links, without a trailing slash.
func NewComposer(baseURL string) (*Composer, error) {
	welcome, err := template.New("welcome").Parse(welcomeHTML)
	if err != nil {
		return nil, fmt.Errorf("parse welcome template: %w", err)
	}
	orderStatus, err := template.New("order-status").Parse(orderStatusHTML)
	if err != nil {
		return nil, fmt.Errorf("parse order-status template: %w", err)
	}
	newOrder, err := template.New("new-order").Parse(newOrderHTML)
	if err != nil {
		return nil, fmt.Errorf("parse new-order template: %w", err)
	}

	return &Composer{
		baseURL:     strings.TrimRight(baseURL, "/"),
		welcome:     welcome,
		orderStatus: orderStatus,
		newOrder:    newOrder,
	}, nil
}

// Compose renders one request into a mail message addressed to its
// recipient.
func (c *Composer) Compose(req notification.Request) (ports.MailMessage, error) {
	if err := req.Validate(); err != nil {
		return ports.MailMessage{}, err
	}

	switch req.Kind {
	case notification.KindWelcome:
		return c.composeWelcome(req)
	case notification.KindOrderStatus:
		return c.composeOrderStatus(req)
	case notification.KindNewOrder:
		return c.composeNewOrder(req)
	default:
		return ports.MailMessage{}, errs.NewValueIsInvalidError("kind")
	}
}

func (c *Composer) composeWelcome(req notification.Request) (ports.MailMessage, error) {
	tpl := welcomeCopyFor(req.Recipient.Role)

	view := struct {
		Title, Intro, Name, Email, Role, Location string
		Benefits                                  []string
		CTALabel, CTAURL                          string
	}{
		Title:    tpl.Title,
		Intro:    tpl.Intro,
		Name:     req.Recipient.Name,
		Email:    req.Recipient.Email,
		Role:     req.Recipient.Role,
		Location: req.Location,
		Benefits: tpl.Benefits,
		CTALabel: tpl.CTALabel,
		CTAURL:   c.baseURL + tpl.CTAPath,
	}

	var html strings.Builder
	if err := c.welcome.Execute(&html, view); err != nil {
		return ports.MailMessage{}, fmt.Errorf("render welcome mail: %w", err)
	}

	var text strings.Builder
	fmt.Fprintf(&text, "%s\n\n", tpl.Title)
	fmt.Fprintf(&text, "Hi %s,\n%s\n\n", req.Recipient.Name, tpl.Intro)
	fmt.Fprintf(&text, "Account: %s (%s", req.Recipient.Email, req.Recipient.Role)
	if req.Location != "" {
		fmt.Fprintf(&text, ", %s", req.Location)
	}
	text.WriteString(")\n\n")
	for _, b := range tpl.Benefits {
		fmt.Fprintf(&text, "  - %s\n", b)
	}
	fmt.Fprintf(&text, "\n%s: %s%s\n", tpl.CTALabel, c.baseURL, tpl.CTAPath)

	return ports.MailMessage{
		To:      req.Recipient.Email,
		ToName:  req.Recipient.Name,
		Subject: tpl.Subject,
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}

func (c *Composer) composeOrderStatus(req notification.Request) (ports.MailMessage, error) {
	tpl := statusCopyFor(req.NewStatus)
	delivered := req.NewStatus == "delivered"
	expected := ""
	if req.ExpectedDelivery != nil {
		expected = req.ExpectedDelivery.Format("02 Jan 2006")
	}

	view := struct {
		Title, Message, Color, OrderID, ItemName string
		Quantity                                 int
		TotalAmount, SellerName, TrackingID      string
		ExpectedDelivery                         string
		Delivered                                bool
		RateURL                                  string
	}{
		Title:            tpl.Title,
		Message:          tpl.Message,
		Color:            tpl.Color,
		OrderID:          req.OrderID,
		ItemName:         req.ItemName,
		Quantity:         req.Quantity,
		TotalAmount:      req.TotalAmount.String(),
		SellerName:       req.SellerName,
		TrackingID:       req.TrackingID,
		ExpectedDelivery: expected,
		Delivered:        delivered,
		RateURL:          fmt.Sprintf("%s/orders/%s/rate", c.baseURL, req.OrderID),
	}

	var html strings.Builder
	if err := c.orderStatus.Execute(&html, view); err != nil {
		return ports.MailMessage{}, fmt.Errorf("render order-status mail: %w", err)
	}

	var text strings.Builder
	fmt.Fprintf(&text, "%s\n\n%s\n\n", tpl.Title, tpl.Message)
	fmt.Fprintf(&text, "Order: %s\nItem: %s x %d\nTotal: %s\n",
		req.OrderID, req.ItemName, req.Quantity, req.TotalAmount.String())
	if req.SellerName != "" {
		fmt.Fprintf(&text, "Seller: %s\n", req.SellerName)
	}
	if req.TrackingID != "" {
		fmt.Fprintf(&text, "Tracking: %s\n", req.TrackingID)
	}
	if expected != "" {
		fmt.Fprintf(&text, "Expected delivery: %s\n", expected)
	}
	if delivered {
		fmt.Fprintf(&text, "\nRate this order: %s\n", view.RateURL)
	}

	return ports.MailMessage{
		To:      req.Recipient.Email,
		ToName:  req.Recipient.Name,
		Subject: fmt.Sprintf("%s (%s)", tpl.Subject, req.OrderID),
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}

func (c *Composer) composeNewOrder(req notification.Request) (ports.MailMessage, error) {
	view := struct {
		OrderID, ItemName                                    string
		Quantity                                             int
		TotalAmount, BuyerName, BuyerEmail                   string
		PaymentMethod, ShippingCity, ConfirmURL, OrdersURL string
	}{
		OrderID:       req.OrderID,
		ItemName:      req.ItemName,
		Quantity:      req.Quantity,
		TotalAmount:   req.TotalAmount.String(),
		BuyerName:     req.BuyerName,
		BuyerEmail:    req.BuyerEmail,
		PaymentMethod: req.PaymentMethod,
		ShippingCity:  req.ShippingCity,
		ConfirmURL:    fmt.Sprintf("%s/seller/orders/%s", c.baseURL, req.OrderID),
		OrdersURL:     c.baseURL + "/seller/orders",
	}

	var html strings.Builder
	if err := c.newOrder.Execute(&html, view); err != nil {
		return ports.MailMessage{}, fmt.Errorf("render new-order mail: %w", err)
	}

	var text strings.Builder
	text.WriteString("New Order Received\n\n")
	text.WriteString("Action required: please confirm or cancel this order within 24 hours.\n\n")
	fmt.Fprintf(&text, "Order: %s\nItem: %s x %d\nTotal: %s\n",
		req.OrderID, req.ItemName, req.Quantity, req.TotalAmount.String())
	fmt.Fprintf(&text, "Buyer: %s (%s)\n", req.BuyerName, req.BuyerEmail)
	if req.PaymentMethod != "" {
		fmt.Fprintf(&text, "Payment: %s\n", req.PaymentMethod)
	}
	if req.ShippingCity != "" {
		fmt.Fprintf(&text, "Ships to: %s\n", req.ShippingCity)
	}
	fmt.Fprintf(&text, "\nConfirm order: %s\nView all orders: %s\n", view.ConfirmURL, view.OrdersURL)

	return ports.MailMessage{
		To:      req.Recipient.Email,
		ToName:  req.Recipient.Name,
		Subject: fmt.Sprintf("New order received: %s x %d", req.ItemName, req.Quantity),
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}
