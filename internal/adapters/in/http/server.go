// Package http exposes the delivery request intake and order tracking over HTTP.
// The operations mirror the embedded OpenAPI document; requests are validated
// against it before a handler runs.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"parcelflow/internal/core/application/usecases/commands"
	"parcelflow/internal/core/application/usecases/queries"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	submitDeliveryRequestHandler commands.SubmitDeliveryRequestCommandHandler

	// Query handlers
	getTrackedOrdersHandler  queries.GetTrackedOrdersQueryHandler
	getOrderHandler          queries.GetOrderQueryHandler
	getArchivedOrdersHandler *queries.GetArchivedOrdersQueryHandler

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
// getArchivedOrdersHandler may be nil when no archive database is configured.
func NewServer(
	submitDeliveryRequestHandler commands.SubmitDeliveryRequestCommandHandler,
	getTrackedOrdersHandler queries.GetTrackedOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getArchivedOrdersHandler *queries.GetArchivedOrdersQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		submitDeliveryRequestHandler: submitDeliveryRequestHandler,
		getTrackedOrdersHandler:      getTrackedOrdersHandler,
		getOrderHandler:              getOrderHandler,
		getArchivedOrdersHandler:     getArchivedOrdersHandler,
		logger:                       logger.With("component", "http"),
	}
}

// CreateOrder handles POST /api/v1/orders - asks the customer to request delivery.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var newOrder NewOrder
	if err := ctx.Bind(&newOrder); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	destination, err := kernel.NewCoordinate(newOrder.Destination.Lat, newOrder.Destination.Lon)
	if err != nil {
		return badRequest(ctx, "Invalid destination: "+err.Error())
	}

	cmd, err := commands.NewSubmitDeliveryRequestCommand(newOrder.OrderID, destination)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	reqCtx := ctx.Request().Context()
	if err = s.submitDeliveryRequestHandler.Handle(reqCtx, cmd); err != nil {
		s.logger.ErrorContext(reqCtx, "Failed to submit delivery request",
			"order_id", cmd.OrderID().String(),
			"error", err,
		)
		return internalError(ctx, "Failed to submit delivery request")
	}

	return ctx.NoContent(http.StatusAccepted)
}

// GetOrders handles GET /api/v1/orders - lists the dispatcher's tracked orders.
func (s *Server) GetOrders(ctx echo.Context) error {
	orders, err := s.getTrackedOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetTrackedOrdersQuery())
	if err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "Failed to list tracked orders", "error", err)
		return internalError(ctx, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, toOrders(orders))
}

// GetOrder handles GET /api/v1/orders/{orderId} - tracked order, else archived order.
func (s *Server) GetOrder(ctx echo.Context, orderID string) error {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		s.logger.ErrorContext(ctx.Request().Context(), "Failed to get order", "order_id", orderID, "error", err)
		return internalError(ctx, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, toOrder(resp))
}

// GetArchivedOrders handles GET /api/v1/archive - lists archived orders.
func (s *Server) GetArchivedOrders(ctx echo.Context, params GetArchivedOrdersParams) error {
	if s.getArchivedOrdersHandler == nil {
		return ctx.JSON(http.StatusServiceUnavailable, Error{
			Code:    http.StatusServiceUnavailable,
			Message: "Archive database is not configured",
		})
	}

	status := order.Unknown
	if params.Status != nil {
		status = order.Status(*params.Status)
	}

	query, err := queries.NewGetArchivedOrdersQuery(status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}

	orders, err := s.getArchivedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "Failed to list archived orders", "error", err)
		return internalError(ctx, "Failed to retrieve archived orders")
	}

	return ctx.JSON(http.StatusOK, toOrders(orders))
}

func toOrders(orders []queries.OrderResponse) []Order {
	return lo.Map(orders, func(o queries.OrderResponse, _ int) Order {
		return toOrder(o)
	})
}

func toOrder(o queries.OrderResponse) Order {
	resp := Order{
		OrderID:     o.ID.String(),
		Status:      string(o.Status),
		ConfirmedAt: o.ConfirmedAt,
		Archived:    o.Archived,
	}

	if o.Destination != nil {
		resp.Destination = &Coordinate{Lat: o.Destination.Lat(), Lon: o.Destination.Lon()}
	}

	return resp
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, Error{Code: http.StatusInternalServerError, Message: message})
}
