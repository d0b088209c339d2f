package notifications

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/notification"
)

const testBaseURL = "https://agromarket.example.com"

func mustComposer(t *testing.T) *Composer {
	t.Helper()
	composer, err := NewComposer(testBaseURL)
	require.NoError(t, err)
	return composer
}

func mustMoney(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	money, err := kernel.NewMoney(amount, "INR")
	require.NoError(t, err)
	return money
}

func orderStatusRequest(t *testing.T, status string) notification.Request {
	t.Helper()
	req, err := notification.NewOrderStatusRequest(notification.Request{
		Recipient:   notification.Recipient{Name: "Ravi Kumar", Email: "ravi@example.com", Role: "buyer"},
		OrderID:     "a4b1c877-13f9-4d11-a3f1-5dd2678bb001",
		ItemName:    "Organic Wheat",
		Quantity:    25,
		TotalAmount: mustMoney(t, 700),
		OldStatus:   "pending",
		NewStatus:   status,
		SellerName:  "Green Valley Farms",
	})
	require.NoError(t, err)
	return req
}

func TestComposer_Welcome_BuyerCopy(t *testing.T) {
	composer := mustComposer(t)
	req, err := notification.NewWelcomeRequest("Ravi Kumar", "ravi@example.com", "buyer", "Pune")
	require.NoError(t, err)

	msg, err := composer.Compose(req)

	require.NoError(t, err)
	assert.Equal(t, "ravi@example.com", msg.To)
	assert.Equal(t, "Ravi Kumar", msg.ToName)
	assert.Equal(t, "Welcome to AgroMarket, fresh produce awaits", msg.Subject)
	assert.Contains(t, msg.HTML, "Welcome, buyer!")
	assert.Contains(t, msg.HTML, testBaseURL+"/crops")
	assert.Contains(t, msg.HTML, "Buy fresh crops straight from the farm")
	for _, body := range []string{msg.HTML, msg.Text} {
		assert.Contains(t, body, "Ravi Kumar")
		assert.Contains(t, body, "ravi@example.com")
		assert.Contains(t, body, "buyer")
		assert.Contains(t, body, "Pune")
	}
}

func TestComposer_Welcome_RoleSelectsCopy(t *testing.T) {
	composer := mustComposer(t)

	tests := []struct {
		role    string
		subject string
		ctaPath string
	}{
		{"farmer", "Welcome to AgroMarket, start selling your harvest", "/farmer/crops/new"},
		{"seller", "Welcome to AgroMarket, open your store", "/seller/products/new"},
		{"buyer", "Welcome to AgroMarket, fresh produce awaits", "/crops"},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			req, err := notification.NewWelcomeRequest("Asha", "asha@example.com", tt.role, "")
			require.NoError(t, err)

			msg, err := composer.Compose(req)

			require.NoError(t, err)
			assert.Equal(t, tt.subject, msg.Subject)
			assert.Contains(t, msg.HTML, testBaseURL+tt.ctaPath)
			assert.Contains(t, msg.Text, testBaseURL+tt.ctaPath)
		})
	}
}

func TestComposer_OrderStatus_KnownStatuses(t *testing.T) {
	composer := mustComposer(t)

	tests := []struct {
		status string
		title  string
	}{
		{"pending", "Order Placed"},
		{"confirmed", "Order Confirmed"},
		{"in_transit", "Order Shipped"},
		{"delivered", "Order Delivered"},
		{"cancelled", "Order Cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			msg, err := composer.Compose(orderStatusRequest(t, tt.status))

			require.NoError(t, err)
			assert.Contains(t, msg.HTML, tt.title)
			assert.Contains(t, msg.Text, tt.title)
			assert.Contains(t, msg.HTML, "700 INR")
		})
	}
}

func TestComposer_OrderStatus_UnknownStatusFallsBackToPending(t *testing.T) {
	composer := mustComposer(t)

	msg, err := composer.Compose(orderStatusRequest(t, "teleported"))

	require.NoError(t, err)
	assert.Contains(t, msg.HTML, "Order Placed")
	assert.Contains(t, msg.Text, "waiting for the seller's confirmation")
	assert.Contains(t, msg.Subject, "Your order has been placed")
}

func TestComposer_OrderStatus_DeliveredIncludesRateBlock(t *testing.T) {
	composer := mustComposer(t)

	delivered, err := composer.Compose(orderStatusRequest(t, "delivered"))
	require.NoError(t, err)
	confirmed, err := composer.Compose(orderStatusRequest(t, "confirmed"))
	require.NoError(t, err)

	assert.Contains(t, delivered.HTML, "Rate this order")
	assert.Contains(t, delivered.Text, "Rate this order")
	assert.NotContains(t, confirmed.HTML, "Rate this order")
	assert.NotContains(t, confirmed.Text, "Rate this order")
}

func TestComposer_OrderStatus_OptionalLogisticsFields(t *testing.T) {
	composer := mustComposer(t)
	expected := time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC)

	req := orderStatusRequest(t, "in_transit")
	req.TrackingID = "TRK123456789"
	req.ExpectedDelivery = &expected

	msg, err := composer.Compose(req)

	require.NoError(t, err)
	assert.Contains(t, msg.HTML, "TRK123456789")
	assert.Contains(t, msg.Text, "TRK123456789")
	assert.Contains(t, msg.HTML, "18 Sep 2026")

	bare, err := composer.Compose(orderStatusRequest(t, "in_transit"))
	require.NoError(t, err)
	assert.NotContains(t, bare.HTML, "Tracking")
	assert.NotContains(t, bare.Text, "Tracking")
}

func TestComposer_NewOrder(t *testing.T) {
	composer := mustComposer(t)
	req, err := notification.NewOrderPlacedRequest(notification.Request{
		Recipient:     notification.Recipient{Name: "Green Valley Farms", Email: "farm@example.com", Role: "seller"},
		OrderID:       "a4b1c877-13f9-4d11-a3f1-5dd2678bb001",
		ItemName:      "Organic Wheat",
		Quantity:      25,
		TotalAmount:   mustMoney(t, 700),
		BuyerName:     "Ravi Kumar",
		BuyerEmail:    "ravi@example.com",
		PaymentMethod: "cod",
		ShippingCity:  "Pune",
	})
	require.NoError(t, err)

	msg, err := composer.Compose(req)

	require.NoError(t, err)
	assert.Equal(t, "farm@example.com", msg.To)
	assert.Equal(t, "New order received: Organic Wheat x 25", msg.Subject)
	for _, body := range []string{msg.HTML, msg.Text} {
		assert.Contains(t, body, "within 24 hours")
		assert.Contains(t, body, "Ravi Kumar")
		assert.Contains(t, body, "ravi@example.com")
		assert.Contains(t, body, testBaseURL+"/seller/orders/a4b1c877-13f9-4d11-a3f1-5dd2678bb001")
		assert.Contains(t, body, testBaseURL+"/seller/orders")
	}
}

func TestComposer_Compose_InvalidRequest(t *testing.T) {
	composer := mustComposer(t)

	_, err := composer.Compose(notification.Request{})

	assert.Error(t, err)
}
