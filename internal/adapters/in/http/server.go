// Package http exposes the delivery REST API on Echo. The event-driven flow
// through Kafka is the primary write path; these endpoints cover operator
// lookups and manual lifecycle corrections.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"delivery/internal/core/application/usecases/commands"
	"delivery/internal/core/application/usecases/queries"
	"delivery/internal/core/domain/model/delivery"
	"delivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createDeliveryHandler   *commands.CreateDeliveryCommandHandler
	startDeliveryHandler    *commands.StartDeliveryCommandHandler
	completeDeliveryHandler *commands.CompleteDeliveryCommandHandler
	updateAddressHandler    *commands.UpdateAddressCommandHandler
	updateTrackingHandler   *commands.UpdateTrackingCommandHandler

	getByOrderIDHandler queries.GetDeliveryByOrderIDQueryHandler
	getByStatusHandler  queries.GetDeliveriesByStatusQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createDeliveryHandler *commands.CreateDeliveryCommandHandler,
	startDeliveryHandler *commands.StartDeliveryCommandHandler,
	completeDeliveryHandler *commands.CompleteDeliveryCommandHandler,
	updateAddressHandler *commands.UpdateAddressCommandHandler,
	updateTrackingHandler *commands.UpdateTrackingCommandHandler,
	getByOrderIDHandler queries.GetDeliveryByOrderIDQueryHandler,
	getByStatusHandler queries.GetDeliveriesByStatusQueryHandler,
) *Server {
	return &Server{
		createDeliveryHandler:   createDeliveryHandler,
		startDeliveryHandler:    startDeliveryHandler,
		completeDeliveryHandler: completeDeliveryHandler,
		updateAddressHandler:    updateAddressHandler,
		updateTrackingHandler:   updateTrackingHandler,
		getByOrderIDHandler:     getByOrderIDHandler,
		getByStatusHandler:      getByStatusHandler,
	}
}

// RegisterRoutes mounts the delivery API on the given Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/delivery")
	api.POST("", s.CreateDelivery)
	api.GET("", s.GetDeliveriesByStatus)
	api.GET("/:orderId", s.GetDeliveryByOrderID)
	api.PATCH("/:orderId/address", s.UpdateAddress)
	api.PATCH("/:orderId/tracking", s.UpdateTracking)
	api.PATCH("/:orderId/start", s.StartDelivery)
	api.POST("/:orderId/complete", s.CompleteDelivery)
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type deliveryResponse struct {
	DeliveryID     string     `json:"deliveryId"`
	OrderID        int64      `json:"orderId"`
	Status         string     `json:"status"`
	Address        string     `json:"address"`
	TrackingNumber string     `json:"trackingNumber,omitempty"`
	Carrier        string     `json:"carrier,omitempty"`
	StartedAt      *time.Time `json:"startedAt,omitempty"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	TraceID        string     `json:"traceId,omitempty"`
}

type createDeliveryRequest struct {
	OrderID int64  `json:"orderId"`
	Address string `json:"address"`
	TraceID string `json:"traceId"`
}

type updateAddressRequest struct {
	Address string `json:"address"`
}

type trackingRequest struct {
	TrackingNumber string `json:"trackingNumber"`
	Carrier        string `json:"carrier"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateDelivery handles POST /api/delivery - registers a delivery for an order.
// Repeating the call for an order returns the already registered delivery.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	var req createDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}

	cmd, err := commands.NewCreateDeliveryCommand(req.OrderID, req.Address, req.TraceID)
	if err != nil {
		return mapError(ctx, err)
	}

	d, err := s.createDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, deliveryResponse{
		DeliveryID:     d.ID().String(),
		OrderID:        d.OrderID(),
		Status:         d.Status().String(),
		Address:        d.Address(),
		TrackingNumber: d.TrackingNumber(),
		Carrier:        d.Carrier(),
		StartedAt:      d.StartedAt(),
		CompletedAt:    d.CompletedAt(),
		TraceID:        d.TraceID(),
	})
}

// GetDeliveryByOrderID handles GET /api/delivery/:orderId.
func (s *Server) GetDeliveryByOrderID(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "orderId must be a positive integer")
	}

	query, err := queries.NewGetDeliveryByOrderIDQuery(orderID)
	if err != nil {
		return mapError(ctx, err)
	}

	result, err := s.getByOrderIDHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toResponse(result))
}

// GetDeliveriesByStatus handles GET /api/delivery?status= - lists deliveries
// in one lifecycle state. Listing CANCELLED deliveries is not supported.
func (s *Server) GetDeliveriesByStatus(ctx echo.Context) error {
	raw := ctx.QueryParam("status")
	if raw == "" {
		return writeError(ctx, http.StatusBadRequest, "status query parameter is required")
	}

	status, err := delivery.StatusFromString(raw)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "unknown status: "+raw)
	}
	if status == delivery.Cancelled {
		return writeError(ctx, http.StatusBadRequest, "listing cancelled deliveries is not supported")
	}

	query, err := queries.NewGetDeliveriesByStatusQuery(status)
	if err != nil {
		return mapError(ctx, err)
	}

	results, err := s.getByStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	response := make([]deliveryResponse, len(results))
	for i, result := range results {
		response[i] = toResponse(result)
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateAddress handles PATCH /api/delivery/:orderId/address.
func (s *Server) UpdateAddress(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "orderId must be a positive integer")
	}

	var req updateAddressRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}

	cmd, err := commands.NewUpdateAddressCommand(orderID, req.Address)
	if err != nil {
		return mapError(ctx, err)
	}

	if err := s.updateAddressHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateTracking handles PATCH /api/delivery/:orderId/tracking.
func (s *Server) UpdateTracking(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "orderId must be a positive integer")
	}

	var req trackingRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}

	cmd, err := commands.NewUpdateTrackingCommand(orderID, req.TrackingNumber, req.Carrier)
	if err != nil {
		return mapError(ctx, err)
	}

	if err := s.updateTrackingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// StartDelivery handles PATCH /api/delivery/:orderId/start - manually ships a
// delivery, optionally attaching tracking info in the same call.
func (s *Server) StartDelivery(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "orderId must be a positive integer")
	}

	var req trackingRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}

	cmd, err := commands.NewStartDeliveryCommand(orderID, req.TrackingNumber, req.Carrier)
	if err != nil {
		return mapError(ctx, err)
	}

	if err := s.startDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteDelivery handles POST /api/delivery/:orderId/complete.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "orderId must be a positive integer")
	}

	cmd, err := commands.NewCompleteDeliveryCommand(orderID)
	if err != nil {
		return mapError(ctx, err)
	}

	if err := s.completeDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func orderIDParam(ctx echo.Context) (int64, error) {
	orderID, err := strconv.ParseInt(ctx.Param("orderId"), 10, 64)
	if err != nil || orderID <= 0 {
		return 0, errs.NewValueIsInvalidError("orderId")
	}
	return orderID, nil
}

func toResponse(result queries.DeliveryResponse) deliveryResponse {
	return deliveryResponse{
		DeliveryID:     result.ID.String(),
		OrderID:        result.OrderID,
		Status:         result.Status,
		Address:        result.Address,
		TrackingNumber: result.TrackingNumber,
		Carrier:        result.Carrier,
		StartedAt:      result.StartedAt,
		CompletedAt:    result.CompletedAt,
		TraceID:        result.TraceID,
	}
}

// mapError translates application errors to HTTP status codes.
func mapError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return writeError(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrInvalidTransition):
		return writeError(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		return writeError(ctx, http.StatusBadRequest, err.Error())
	default:
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}
}

func writeError(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, errorResponse{Code: code, Message: message})
}
