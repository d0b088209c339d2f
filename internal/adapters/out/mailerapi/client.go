// Package mailerapi is the HTTP client for the companion mailer service.
// The marketplace process uses it instead of direct SMTP when a mailer URL
// is configured; composition and transport retry then happen inside the
// mailer process.
package mailerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"agromarket/internal/core/domain/model/notification"
	"agromarket/internal/core/ports"
	"agromarket/internal/pkg/errs"
)

// APIKeyHeader carries the shared secret on every write request.
const APIKeyHeader = "X-Api-Key"

const requestTimeout = 90 * time.Second

// Client forwards notification requests to the mailer service. It
// implements notifications.RequestDispatcher; like the local dispatcher it
// never returns an error, only a failed result.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *slog.Logger
}

// NewClient creates a client for the mailer service at baseURL.
//
// Returns error if baseURL or apiKey is empty, or logger is nil.
func NewClient(baseURL, apiKey string, logger *slog.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if apiKey == "" {
		return nil, errs.NewValueIsRequiredError("apiKey")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: requestTimeout},
		logger:  logger.With("component", "mailer_client"),
	}, nil
}

// Dispatch forwards one request to the endpoint matching its kind.
func (c *Client) Dispatch(ctx context.Context, req notification.Request) ports.SendResult {
	var (
		path    string
		payload any
	)

	switch req.Kind {
	case notification.KindWelcome:
		path = "/send-welcome"
		payload = WelcomeRequest{
			Name:     req.Recipient.Name,
			Email:    req.Recipient.Email,
			Role:     req.Recipient.Role,
			Location: req.Location,
		}
	case notification.KindOrderStatus:
		path = "/send-order-status"
		expected := ""
		if req.ExpectedDelivery != nil {
			expected = req.ExpectedDelivery.Format(time.RFC3339)
		}
		payload = OrderStatusRequest{
			BuyerEmail:       req.Recipient.Email,
			BuyerName:        req.Recipient.Name,
			OrderID:          req.OrderID,
			ItemName:         req.ItemName,
			Quantity:         req.Quantity,
			Status:           req.NewStatus,
			SellerName:       req.SellerName,
			TrackingID:       req.TrackingID,
			ExpectedDelivery: expected,
			TotalAmount:      req.TotalAmount.Amount(),
			Currency:         req.TotalAmount.Currency(),
		}
	case notification.KindNewOrder:
		path = "/send-new-order"
		payload = NewOrderRequest{
			SellerEmail:   req.Recipient.Email,
			SellerName:    req.Recipient.Name,
			OrderID:       req.OrderID,
			ItemName:      req.ItemName,
			Quantity:      req.Quantity,
			TotalAmount:   req.TotalAmount.Amount(),
			Currency:      req.TotalAmount.Currency(),
			BuyerName:     req.BuyerName,
			BuyerEmail:    req.BuyerEmail,
			PaymentMethod: req.PaymentMethod,
			ShippingCity:  req.ShippingCity,
		}
	default:
		return c.failure(req, fmt.Errorf("unknown notification kind %d", int(req.Kind)))
	}

	result, err := c.post(ctx, path, payload)
	if err != nil {
		return c.failure(req, err)
	}
	return result
}

// Healthy reports whether the mailer service responds to its health probe
// and has a ready transport.
func (c *Client) Healthy(ctx context.Context) bool {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return false
	}
	return health.IsReady
}

func (c *Client) post(ctx context.Context, path string, payload any) (ports.SendResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return ports.SendResult{}, fmt.Errorf("marshal mailer request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return ports.SendResult{}, fmt.Errorf("build mailer request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(APIKeyHeader, c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return ports.SendResult{}, fmt.Errorf("call mailer service: %w", err)
	}
	defer resp.Body.Close()

	var sendResp SendResponse
	if err := json.NewDecoder(resp.Body).Decode(&sendResp); err != nil {
		return ports.SendResult{}, fmt.Errorf("decode mailer response %d: %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		return ports.SendResult{}, fmt.Errorf("mailer service returned %d: %s", resp.StatusCode, sendResp.Error)
	}

	return ports.SendResult{
		Success:   sendResp.Success,
		MessageID: sendResp.MessageID,
		Error:     sendResp.Error,
	}, nil
}

func (c *Client) failure(req notification.Request, err error) ports.SendResult {
	c.logger.Error("failed to dispatch via mailer service",
		"kind", req.Kind.String(),
		"recipient", req.Recipient.Email,
		"error", err)
	return ports.SendResult{Success: false, Error: err.Error()}
}
