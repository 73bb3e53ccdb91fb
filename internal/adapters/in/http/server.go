// Package http exposes the marketplace order lifecycle over a REST API.
package http

import (
	"errors"
	"net/http"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler            commands.PlaceOrderCommandHandler
	acceptOrderHandler           commands.AcceptOrderCommandHandler
	recordPingHandler            commands.RecordPingCommandHandler
	confirmDeliveryHandler       commands.ConfirmDeliveryCommandHandler
	setStatusHandler             commands.SetStatusCommandHandler
	markNotificationsReadHandler commands.MarkNotificationsReadCommandHandler

	// Query handlers
	getLatestLocationHandler  queries.GetLatestLocationQueryHandler
	getLocationHistoryHandler queries.GetLocationHistoryQueryHandler
	getNotificationsHandler   queries.GetNotificationsQueryHandler
	getUnreadCountHandler     queries.GetUnreadCountQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	acceptOrderHandler commands.AcceptOrderCommandHandler,
	recordPingHandler commands.RecordPingCommandHandler,
	confirmDeliveryHandler commands.ConfirmDeliveryCommandHandler,
	setStatusHandler commands.SetStatusCommandHandler,
	markNotificationsReadHandler commands.MarkNotificationsReadCommandHandler,
	getLatestLocationHandler queries.GetLatestLocationQueryHandler,
	getLocationHistoryHandler queries.GetLocationHistoryQueryHandler,
	getNotificationsHandler queries.GetNotificationsQueryHandler,
	getUnreadCountHandler queries.GetUnreadCountQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:            placeOrderHandler,
		acceptOrderHandler:           acceptOrderHandler,
		recordPingHandler:            recordPingHandler,
		confirmDeliveryHandler:       confirmDeliveryHandler,
		setStatusHandler:             setStatusHandler,
		markNotificationsReadHandler: markNotificationsReadHandler,
		getLatestLocationHandler:     getLatestLocationHandler,
		getLocationHistoryHandler:    getLocationHistoryHandler,
		getNotificationsHandler:      getNotificationsHandler,
		getUnreadCountHandler:        getUnreadCountHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.PlaceOrder)
	api.POST("/orders/:orderId/accept", s.AcceptOrder)
	api.POST("/orders/:orderId/tracking", s.RecordPing)
	api.POST("/orders/:orderId/confirm", s.ConfirmDelivery)
	api.POST("/orders/:orderId/status", s.SetStatus)
	api.GET("/orders/:orderId/location", s.GetLatestLocation)
	api.GET("/orders/:orderId/location/history", s.GetLocationHistory)

	api.GET("/participants/:participantId/notifications", s.GetNotifications)
	api.GET("/participants/:participantId/notifications/unread-count", s.GetUnreadCount)
	api.POST("/participants/:participantId/notifications/read", s.MarkNotificationsRead)

	e.GET("/health", s.Health)
}

// Error is the JSON shape of an API failure.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type placeOrderRequest struct {
	BuyerID    string   `json:"buyer_id"`
	SellerID   string   `json:"seller_id"`
	ProductIDs []string `json:"product_ids"`
	Quantity   string   `json:"quantity"`
}

type placeOrderResponse struct {
	OrderID string `json:"order_id"`
}

// PlaceOrder handles POST /api/v1/orders - places a new order.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var req placeOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	buyerID, err := kernel.UUIDFromString(req.BuyerID)
	if err != nil {
		return badRequest(ctx, "Invalid buyer id: "+err.Error())
	}

	sellerID, err := kernel.UUIDFromString(req.SellerID)
	if err != nil {
		return badRequest(ctx, "Invalid seller id: "+err.Error())
	}

	productIDs := make([]kernel.UUID, 0, len(req.ProductIDs))
	for _, raw := range req.ProductIDs {
		productID, productErr := kernel.UUIDFromString(raw)
		if productErr != nil {
			return badRequest(ctx, "Invalid product id: "+productErr.Error())
		}
		productIDs = append(productIDs, productID)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewPlaceOrderCommand(orderID, buyerID, sellerID, productIDs, req.Quantity)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapDomainError(ctx, handleErr, "Failed to place order")
	}

	return ctx.JSON(http.StatusCreated, placeOrderResponse{OrderID: orderID.String()})
}

type acceptOrderRequest struct {
	DriverID string `json:"driver_id"`
}

// AcceptOrder handles POST /api/v1/orders/:orderId/accept - the seller accepts
// the order and assigns a driver.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req acceptOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver id: "+err.Error())
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID, driverID)
	if err != nil {
		return badRequest(ctx, "Invalid acceptance data: "+err.Error())
	}

	if handleErr := s.acceptOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapDomainError(ctx, handleErr, "Failed to accept order")
	}

	return ctx.NoContent(http.StatusNoContent)
}

type recordPingRequest struct {
	DriverID  string  `json:"driver_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Status    string  `json:"status"`
}

type recordPingResponse struct {
	SampleID   string `json:"sample_id"`
	RecordedAt string `json:"recorded_at"`
}

// RecordPing handles POST /api/v1/orders/:orderId/tracking - ingests a driver
// location ping. The ping is acknowledged whenever it was recorded, even when
// its status label did not move the order forward.
func (s *Server) RecordPing(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req recordPingRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver id: "+err.Error())
	}

	cmd, err := commands.NewRecordPingCommand(orderID, driverID, req.Latitude, req.Longitude, req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid ping data: "+err.Error())
	}

	sample, handleErr := s.recordPingHandler.Handle(ctx.Request().Context(), cmd)
	if handleErr != nil {
		return mapDomainError(ctx, handleErr, "Failed to record ping")
	}

	return ctx.JSON(http.StatusAccepted, recordPingResponse{
		SampleID:   sample.ID().String(),
		RecordedAt: sample.RecordedAt().Format(time.RFC3339),
	})
}

type confirmDeliveryResponse struct {
	Confirmed bool `json:"confirmed"`
}

// ConfirmDelivery handles POST /api/v1/orders/:orderId/confirm - the buyer
// confirms receipt. Confirmed is false when the order was not yet in a
// confirmable status.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	cmd, err := commands.NewConfirmDeliveryCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid confirmation data: "+err.Error())
	}

	confirmed, handleErr := s.confirmDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if handleErr != nil {
		return mapDomainError(ctx, handleErr, "Failed to confirm delivery")
	}

	return ctx.JSON(http.StatusOK, confirmDeliveryResponse{Confirmed: confirmed})
}

type setStatusRequest struct {
	Status string `json:"status"`
}

type setStatusResponse struct {
	Applied bool   `json:"applied"`
	Status  string `json:"status"`
}

// SetStatus handles POST /api/v1/orders/:orderId/status - an operator sets the
// order status explicitly. Applied is false for stale targets.
func (s *Server) SetStatus(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req setStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetStatusCommand(orderID, req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status data: "+err.Error())
	}

	result, handleErr := s.setStatusHandler.Handle(ctx.Request().Context(), cmd)
	if handleErr != nil {
		return mapDomainError(ctx, handleErr, "Failed to set status")
	}

	return ctx.JSON(http.StatusOK, setStatusResponse{
		Applied: result.Applied,
		Status:  result.Status.String(),
	})
}

type locationResponse struct {
	OrderID     string  `json:"order_id"`
	DriverID    string  `json:"driver_id"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	StatusLabel string  `json:"status_label"`
	RecordedAt  string  `json:"recorded_at"`
}

// GetLatestLocation handles GET /api/v1/orders/:orderId/location - returns the
// most recent tracking sample for the order.
func (s *Server) GetLatestLocation(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetLatestLocationQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid location query: "+err.Error())
	}

	location, handleErr := s.getLatestLocationHandler.Handle(ctx.Request().Context(), query)
	if handleErr != nil {
		return mapDomainError(ctx, handleErr, "Failed to retrieve location")
	}

	return ctx.JSON(http.StatusOK, toLocationResponse(location))
}

// GetLocationHistory handles GET /api/v1/orders/:orderId/location/history -
// returns all tracking samples for the order, most recent first.
func (s *Server) GetLocationHistory(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetLocationHistoryQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid history query: "+err.Error())
	}

	history, handleErr := s.getLocationHistoryHandler.Handle(ctx.Request().Context(), query)
	if handleErr != nil {
		return mapDomainError(ctx, handleErr, "Failed to retrieve location history")
	}

	response := make([]locationResponse, 0, len(history))
	for _, location := range history {
		response = append(response, toLocationResponse(location))
	}

	return ctx.JSON(http.StatusOK, response)
}

type notificationResponse struct {
	ID             string  `json:"id"`
	Kind           string  `json:"kind"`
	Message        string  `json:"message"`
	RelatedOrderID *string `json:"related_order_id,omitempty"`
	SenderName     string  `json:"sender_name"`
	IsRead         bool    `json:"is_read"`
	CreatedAt      string  `json:"created_at"`
}

// GetNotifications handles GET /api/v1/participants/:participantId/notifications -
// returns the participant's notifications, newest first.
func (s *Server) GetNotifications(ctx echo.Context) error {
	recipientID, err := pathUUID(ctx, "participantId")
	if err != nil {
		return badRequest(ctx, "Invalid participant id: "+err.Error())
	}

	query, err := queries.NewGetNotificationsQuery(recipientID)
	if err != nil {
		return badRequest(ctx, "Invalid notifications query: "+err.Error())
	}

	notifications, handleErr := s.getNotificationsHandler.Handle(ctx.Request().Context(), query)
	if handleErr != nil {
		return mapDomainError(ctx, handleErr, "Failed to retrieve notifications")
	}

	response := make([]notificationResponse, 0, len(notifications))
	for _, n := range notifications {
		item := notificationResponse{
			ID:         n.ID.String(),
			Kind:       n.Kind,
			Message:    n.Message,
			SenderName: n.SenderName,
			IsRead:     n.IsRead,
			CreatedAt:  n.CreatedAt.Format(time.RFC3339),
		}
		if n.RelatedOrderID != nil {
			related := n.RelatedOrderID.String()
			item.RelatedOrderID = &related
		}
		response = append(response, item)
	}

	return ctx.JSON(http.StatusOK, response)
}

type unreadCountResponse struct {
	Unread int64 `json:"unread"`
}

// GetUnreadCount handles GET /api/v1/participants/:participantId/notifications/unread-count.
func (s *Server) GetUnreadCount(ctx echo.Context) error {
	recipientID, err := pathUUID(ctx, "participantId")
	if err != nil {
		return badRequest(ctx, "Invalid participant id: "+err.Error())
	}

	query, err := queries.NewGetUnreadCountQuery(recipientID)
	if err != nil {
		return badRequest(ctx, "Invalid unread count query: "+err.Error())
	}

	count, handleErr := s.getUnreadCountHandler.Handle(ctx.Request().Context(), query)
	if handleErr != nil {
		return mapDomainError(ctx, handleErr, "Failed to count notifications")
	}

	return ctx.JSON(http.StatusOK, unreadCountResponse{Unread: count})
}

type markReadResponse struct {
	Marked int64 `json:"marked"`
}

// MarkNotificationsRead handles POST /api/v1/participants/:participantId/notifications/read -
// marks all of the participant's notifications as read.
func (s *Server) MarkNotificationsRead(ctx echo.Context) error {
	recipientID, err := pathUUID(ctx, "participantId")
	if err != nil {
		return badRequest(ctx, "Invalid participant id: "+err.Error())
	}

	cmd, err := commands.NewMarkNotificationsReadCommand(recipientID)
	if err != nil {
		return badRequest(ctx, "Invalid mark-read data: "+err.Error())
	}

	marked, handleErr := s.markNotificationsReadHandler.Handle(ctx.Request().Context(), cmd)
	if handleErr != nil {
		return mapDomainError(ctx, handleErr, "Failed to mark notifications read")
	}

	return ctx.JSON(http.StatusOK, markReadResponse{Marked: marked})
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func toLocationResponse(location queries.LocationResponse) locationResponse {
	return locationResponse{
		OrderID:     location.OrderID.String(),
		DriverID:    location.DriverID.String(),
		Latitude:    location.Latitude,
		Longitude:   location.Longitude,
		StatusLabel: location.StatusLabel,
		RecordedAt:  location.RecordedAt.Format(time.RFC3339),
	}
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// mapDomainError translates domain failures into HTTP status codes.
func mapDomainError(ctx echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, commands.ErrDriverNotAssigned):
		return ctx.JSON(http.StatusForbidden, Error{
			Code:    http.StatusForbidden,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: fallback,
		})
	}
}
