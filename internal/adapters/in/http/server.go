// Package http exposes the marketplace over a JSON API. Handlers translate
// wire payloads into commands and queries, and on success hand off
// notifications and order events without waiting for either.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"agromarket/internal/core/application/usecases/commands"
	"agromarket/internal/core/application/usecases/queries"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/listing"
	"agromarket/internal/core/domain/model/notification"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/ports"
	"agromarket/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
// Notification and event publishing happen after the business transaction
// commits and never influence the response.
type Server struct {
	// Command handlers
	createListingHandler     commands.CreateListingCommandHandler
	restockListingHandler    commands.RestockListingCommandHandler
	createOrderHandler       commands.CreateOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler

	// Query handlers
	getBuyerOrdersHandler     queries.GetBuyerOrdersQueryHandler
	getSellerDashboardHandler queries.GetSellerDashboardQueryHandler

	notifications ports.NotificationPublisher
	events        ports.OrderEventPublisher
	logger        *slog.Logger
}

// NewServer creates an HTTP server with the required command and query
// handlers and the outbound publishers.
func NewServer(
	createListingHandler commands.CreateListingCommandHandler,
	restockListingHandler commands.RestockListingCommandHandler,
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	getBuyerOrdersHandler queries.GetBuyerOrdersQueryHandler,
	getSellerDashboardHandler queries.GetSellerDashboardQueryHandler,
	notifications ports.NotificationPublisher,
	events ports.OrderEventPublisher,
	logger *slog.Logger,
) *Server {
	return &Server{
		createListingHandler:      createListingHandler,
		restockListingHandler:     restockListingHandler,
		createOrderHandler:        createOrderHandler,
		updateOrderStatusHandler:  updateOrderStatusHandler,
		getBuyerOrdersHandler:     getBuyerOrdersHandler,
		getSellerDashboardHandler: getSellerDashboardHandler,
		notifications:             notifications,
		events:                    events,
		logger:                    logger.With("component", "http_server"),
	}
}

// RegisterRoutes mounts all marketplace endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/listings", s.CreateListing)
	v1.POST("/listings/:id/restock", s.RestockListing)
	v1.POST("/orders", s.CreateOrder)
	v1.POST("/orders/:id/status", s.UpdateOrderStatus)
	v1.GET("/buyers/:id/orders", s.GetBuyerOrders)
	v1.GET("/sellers/:id/dashboard", s.GetSellerDashboard)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateListing handles POST /api/v1/listings - publishes a crop or
// product for sale.
func (s *Server) CreateListing(ctx echo.Context) error {
	var req CreateListingRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	sellerID, err := kernel.UUIDFromString(req.SellerID)
	if err != nil {
		return badRequest(ctx, "Invalid seller id: "+err.Error())
	}

	kind, err := listing.ParseKind(req.Kind)
	if err != nil {
		return badRequest(ctx, "Invalid listing kind: "+err.Error())
	}

	unitPrice, err := kernel.NewMoney(req.UnitPrice, req.Currency)
	if err != nil {
		return badRequest(ctx, "Invalid unit price: "+err.Error())
	}

	listingID := kernel.NewUUID()
	cmd, err := commands.NewCreateListingCommand(listingID, sellerID, kind, req.Name, req.Available, unitPrice)
	if err != nil {
		return badRequest(ctx, "Invalid listing data: "+err.Error())
	}

	if err := s.createListingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"listingId": listingID.String()})
}

// RestockListing handles POST /api/v1/listings/:id/restock - adds stock to
// an existing listing.
func (s *Server) RestockListing(ctx echo.Context) error {
	listingID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid listing id: "+err.Error())
	}

	var req RestockListingRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRestockListingCommand(listingID, req.Quantity)
	if err != nil {
		return badRequest(ctx, "Invalid restock data: "+err.Error())
	}

	if err := s.restockListingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateOrder handles POST /api/v1/orders - places an order against a
// listing. On success the seller is notified asynchronously and an
// order_created event is published.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := s.buildCreateOrderCommand(req)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	result, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	s.publishOrderPlaced(result)

	return ctx.JSON(http.StatusCreated, OrderCreatedResponse{
		OrderID:       result.OrderID,
		Status:        result.Status,
		ItemName:      result.ItemName,
		Quantity:      result.Quantity,
		TotalAmount:   result.TotalAmount.Amount(),
		Currency:      result.TotalAmount.Currency(),
		PaymentMethod: result.PaymentMethod,
		OrderDate:     result.OrderDate,
	})
}

// UpdateOrderStatus handles POST /api/v1/orders/:id/status - moves an
// order through its lifecycle. A repeated identical request is answered
// with 200 and changed=false; nothing is written or published.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req UpdateOrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actor, err := order.ParseActor(req.ActorRole)
	if err != nil {
		return badRequest(ctx, "Invalid actor role: "+err.Error())
	}

	requested, err := order.ParseStatus(req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, actor, requested, order.TransitionOptions{
		ExpectedDelivery:   req.ExpectedDelivery,
		TrackingID:         req.TrackingID,
		Notes:              req.Notes,
		CancellationReason: req.CancellationReason,
	})
	if err != nil {
		return badRequest(ctx, "Invalid status update: "+err.Error())
	}

	result, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	if result.Changed {
		s.publishStatusChanged(result)
	}

	return ctx.JSON(http.StatusOK, OrderStatusResponse{
		OrderID:          result.OrderID,
		OldStatus:        result.OldStatus,
		NewStatus:        result.NewStatus,
		TrackingID:       result.TrackingID,
		ExpectedDelivery: result.ExpectedDelivery,
		Changed:          result.Changed,
	})
}

// GetBuyerOrders handles GET /api/v1/buyers/:id/orders - the buyer's order
// history, newest first.
func (s *Server) GetBuyerOrders(ctx echo.Context) error {
	buyerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid buyer id: "+err.Error())
	}

	query, err := queries.NewGetBuyerOrdersQuery(buyerID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	rows, err := s.getBuyerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]BuyerOrderResponse, len(rows))
	for i, row := range rows {
		response[i] = BuyerOrderResponse{
			OrderID:          row.ID.String(),
			ItemName:         row.ItemName,
			Quantity:         row.Quantity,
			TotalAmount:      row.TotalAmount.Amount(),
			Currency:         row.TotalAmount.Currency(),
			Status:           row.Status.String(),
			PaymentMethod:    row.PaymentMethod.String(),
			SellerName:       row.SellerName,
			OrderDate:        row.OrderDate,
			ExpectedDelivery: row.ExpectedDelivery,
			ActualDelivery:   row.ActualDelivery,
			TrackingID:       row.TrackingID,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetSellerDashboard handles GET /api/v1/sellers/:id/dashboard - order
// counts per status and delivered revenue for one seller.
func (s *Server) GetSellerDashboard(ctx echo.Context) error {
	sellerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid seller id: "+err.Error())
	}

	query, err := queries.NewGetSellerDashboardQuery(sellerID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	dashboard, err := s.getSellerDashboardHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SellerDashboardResponse{
		TotalOrders:      dashboard.TotalOrders,
		PendingCount:     dashboard.PendingCount,
		ConfirmedCount:   dashboard.ConfirmedCount,
		InTransitCount:   dashboard.InTransitCount,
		DeliveredCount:   dashboard.DeliveredCount,
		CancelledCount:   dashboard.CancelledCount,
		ReturnedCount:    dashboard.ReturnedCount,
		DeliveredRevenue: dashboard.DeliveredRevenue,
		Currency:         dashboard.Currency,
	})
}

func (s *Server) buildCreateOrderCommand(req CreateOrderRequest) (commands.CreateOrderCommand, error) {
	buyer, err := buildParty(req.Buyer)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	seller, err := buildParty(req.Seller)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	listingID, err := kernel.UUIDFromString(req.ListingID)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	var geo *kernel.GeoPoint
	if req.ShippingAddress.Latitude != nil && req.ShippingAddress.Longitude != nil {
		geo = &kernel.GeoPoint{
			Latitude:  *req.ShippingAddress.Latitude,
			Longitude: *req.ShippingAddress.Longitude,
		}
	}

	address, err := kernel.NewAddress(
		req.ShippingAddress.Street,
		req.ShippingAddress.City,
		req.ShippingAddress.State,
		req.ShippingAddress.PostalCode,
		geo,
	)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	paymentMethod, err := order.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	return commands.NewCreateOrderCommand(
		kernel.NewUUID(), buyer, seller, listingID, req.Quantity, address, paymentMethod)
}

func (s *Server) publishOrderPlaced(result commands.CreateOrderResult) {
	req, err := notification.NewOrderPlacedRequest(notification.Request{
		Recipient:     notification.Recipient{Name: result.SellerName, Email: result.SellerEmail, Role: "seller"},
		OrderID:       result.OrderID,
		ItemName:      result.ItemName,
		Quantity:      result.Quantity,
		TotalAmount:   result.TotalAmount,
		BuyerName:     result.BuyerName,
		BuyerEmail:    result.BuyerEmail,
		PaymentMethod: result.PaymentMethod,
		ShippingCity:  result.ShippingCity,
	})
	if err != nil {
		s.logger.Warn("skipping seller notification", "order_id", result.OrderID, "error", err)
	} else {
		s.notifications.Publish(req)
	}

	s.publishEvent(ports.OrderEvent{
		EventType:   "order_created",
		OrderID:     result.OrderID,
		BuyerID:     result.BuyerID,
		SellerID:    result.SellerID,
		ItemName:    result.ItemName,
		Quantity:    result.Quantity,
		TotalAmount: result.TotalAmount.Amount(),
		NewStatus:   result.Status,
		OccurredAt:  result.OrderDate.UTC().Format(time.RFC3339),
	})
}

func (s *Server) publishStatusChanged(result commands.UpdateOrderStatusResult) {
	req, err := notification.NewOrderStatusRequest(notification.Request{
		Recipient:        notification.Recipient{Name: result.BuyerName, Email: result.BuyerEmail, Role: "buyer"},
		OrderID:          result.OrderID,
		ItemName:         result.ItemName,
		Quantity:         result.Quantity,
		TotalAmount:      result.TotalAmount,
		OldStatus:        result.OldStatus,
		NewStatus:        result.NewStatus,
		SellerName:       result.SellerName,
		TrackingID:       result.TrackingID,
		ExpectedDelivery: result.ExpectedDelivery,
	})
	if err != nil {
		s.logger.Warn("skipping buyer notification", "order_id", result.OrderID, "error", err)
	} else {
		s.notifications.Publish(req)
	}

	s.publishEvent(ports.OrderEvent{
		EventType:   "order_status_changed",
		OrderID:     result.OrderID,
		BuyerID:     result.BuyerID,
		SellerID:    result.SellerID,
		ItemName:    result.ItemName,
		Quantity:    result.Quantity,
		TotalAmount: result.TotalAmount.Amount(),
		OldStatus:   result.OldStatus,
		NewStatus:   result.NewStatus,
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) publishEvent(event ports.OrderEvent) {
	if err := s.events.PublishOrderEvent(context.Background(), event); err != nil {
		s.logger.Warn("failed to publish order event",
			"event_type", event.EventType,
			"order_id", event.OrderID,
			"error", err)
	}
}

func buildParty(req PartyRequest) (order.Party, error) {
	id, err := kernel.UUIDFromString(req.ID)
	if err != nil {
		return order.Party{}, err
	}
	return order.NewParty(id, req.Name, req.Email)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps application errors onto the response taxonomy: unknown
// ids are 404, rejected transitions and lost compare-and-swap races are
// 409, input problems are 400, everything else is 500.
func writeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, ports.ErrOrderConcurrentlyModified):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
