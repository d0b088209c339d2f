// Package mailer exposes the notification dispatcher as the companion
// mail-sending service. All write endpoints sit behind a shared-secret
// header; send failures are reported in the response body, never as HTTP
// errors, so a caller's business flow is free to ignore them.
package mailer

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"agromarket/internal/adapters/out/mailerapi"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/notification"
	"agromarket/internal/core/ports"
	"agromarket/internal/notifications"
	"agromarket/internal/pkg/errs"
)

const defaultCurrency = "INR"

// Server handles the mailer service endpoints.
type Server struct {
	dispatcher *notifications.Dispatcher
	sender     ports.MailSender
	apiKey     string
	smtpUser   string
	logger     *slog.Logger
}

// NewServer creates the mailer HTTP server.
//
// Returns error if any dependency is missing.
func NewServer(
	dispatcher *notifications.Dispatcher,
	sender ports.MailSender,
	apiKey string,
	smtpUser string,
	logger *slog.Logger,
) (*Server, error) {
	if dispatcher == nil {
		return nil, errs.NewValueIsRequiredError("dispatcher")
	}
	if sender == nil {
		return nil, errs.NewValueIsRequiredError("sender")
	}
	if apiKey == "" {
		return nil, errs.NewValueIsRequiredError("apiKey")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Server{
		dispatcher: dispatcher,
		sender:     sender,
		apiKey:     apiKey,
		smtpUser:   smtpUser,
		logger:     logger.With("component", "mailer_server"),
	}, nil
}

// RegisterRoutes mounts the mailer endpoints. The health probe is open;
// every send endpoint requires the shared-secret header.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	protected := e.Group("", middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup: "header:" + mailerapi.APIKeyHeader,
		Validator: func(key string, _ echo.Context) (bool, error) {
			return subtle.ConstantTimeCompare([]byte(key), []byte(s.apiKey)) == 1, nil
		},
		ErrorHandler: func(_ error, c echo.Context) error {
			return c.JSON(http.StatusUnauthorized, mailerapi.SendResponse{
				Success: false,
				Error:   "invalid api key",
			})
		},
	}))
	protected.POST("/send-welcome", s.SendWelcome)
	protected.POST("/send-order-status", s.SendOrderStatus)
	protected.POST("/send-new-order", s.SendNewOrder)
}

// Health handles GET /health - reports whether the transport verified
// successfully. The service keeps running while not ready and dials on the
// first real send.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, mailerapi.HealthResponse{
		IsReady:               s.sender.Ready(),
		TransporterConfigured: s.smtpUser != "",
		SMTPUser:              s.smtpUser,
	})
}

// SendWelcome handles POST /send-welcome.
func (s *Server) SendWelcome(ctx echo.Context) error {
	var req mailerapi.WelcomeRequest
	if err := ctx.Bind(&req); err != nil {
		return invalidPayload(ctx, "invalid request body")
	}

	notif, err := notification.NewWelcomeRequest(req.Name, req.Email, req.Role, req.Location)
	if err != nil {
		return invalidPayload(ctx, err.Error())
	}

	return s.dispatch(ctx, notif)
}

// SendOrderStatus handles POST /send-order-status. The status field is
// forwarded verbatim; unknown names render with the pending copy.
func (s *Server) SendOrderStatus(ctx echo.Context) error {
	var req mailerapi.OrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return invalidPayload(ctx, "invalid request body")
	}

	total, err := parseMoney(req.TotalAmount, req.Currency)
	if err != nil {
		return invalidPayload(ctx, err.Error())
	}

	var expected *time.Time
	if req.ExpectedDelivery != "" {
		parsed, parseErr := time.Parse(time.RFC3339, req.ExpectedDelivery)
		if parseErr != nil {
			return invalidPayload(ctx, "expectedDelivery must be RFC 3339")
		}
		expected = &parsed
	}

	notif, err := notification.NewOrderStatusRequest(notification.Request{
		Recipient:        notification.Recipient{Name: req.BuyerName, Email: req.BuyerEmail, Role: "buyer"},
		OrderID:          req.OrderID,
		ItemName:         req.ItemName,
		Quantity:         req.Quantity,
		TotalAmount:      total,
		NewStatus:        req.Status,
		SellerName:       req.SellerName,
		TrackingID:       req.TrackingID,
		ExpectedDelivery: expected,
	})
	if err != nil {
		return invalidPayload(ctx, err.Error())
	}

	return s.dispatch(ctx, notif)
}

// SendNewOrder handles POST /send-new-order.
func (s *Server) SendNewOrder(ctx echo.Context) error {
	var req mailerapi.NewOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return invalidPayload(ctx, "invalid request body")
	}

	total, err := parseMoney(req.TotalAmount, req.Currency)
	if err != nil {
		return invalidPayload(ctx, err.Error())
	}

	notif, err := notification.NewOrderPlacedRequest(notification.Request{
		Recipient:     notification.Recipient{Name: req.SellerName, Email: req.SellerEmail, Role: "seller"},
		OrderID:       req.OrderID,
		ItemName:      req.ItemName,
		Quantity:      req.Quantity,
		TotalAmount:   total,
		BuyerName:     req.BuyerName,
		BuyerEmail:    req.BuyerEmail,
		PaymentMethod: req.PaymentMethod,
		ShippingCity:  req.ShippingCity,
	})
	if err != nil {
		return invalidPayload(ctx, err.Error())
	}

	return s.dispatch(ctx, notif)
}

// dispatch runs the delivery attempt and reports the outcome with 200
// regardless of success.
func (s *Server) dispatch(ctx echo.Context, notif notification.Request) error {
	result := s.dispatcher.Dispatch(ctx.Request().Context(), notif)
	return ctx.JSON(http.StatusOK, mailerapi.SendResponse{
		Success:   result.Success,
		MessageID: result.MessageID,
		Error:     result.Error,
	})
}

func parseMoney(amount int64, currency string) (kernel.Money, error) {
	if currency == "" {
		currency = defaultCurrency
	}
	return kernel.NewMoney(amount, currency)
}

func invalidPayload(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, mailerapi.SendResponse{
		Success: false,
		Error:   message,
	})
}
