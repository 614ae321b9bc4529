package http

import (
	_ "embed"
	"fmt"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

//go:embed openapi.yaml
var openAPIDocument []byte

// Coordinate is a latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// NewOrder is the body of POST /api/v1/orders.
type NewOrder struct {
	OrderID     string     `json:"order_id"`
	Destination Coordinate `json:"destination"`
}

// Order is the representation of a tracked or archived order.
type Order struct {
	OrderID     string      `json:"order_id"`
	Status      string      `json:"status"`
	Destination *Coordinate `json:"destination,omitempty"`
	ConfirmedAt *time.Time  `json:"confirmed_at,omitempty"`
	Archived    bool        `json:"archived"`
}

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// GetArchivedOrdersParams holds the query parameters of GET /api/v1/archive.
type GetArchivedOrdersParams struct {
	Status *string `json:"status,omitempty"`
}

// ServerInterface lists the operations of the embedded OpenAPI document.
type ServerInterface interface {
	// CreateOrder handles POST /api/v1/orders.
	CreateOrder(ctx echo.Context) error
	// GetOrders handles GET /api/v1/orders.
	GetOrders(ctx echo.Context) error
	// GetOrder handles GET /api/v1/orders/{orderId}.
	GetOrder(ctx echo.Context, orderID string) error
	// GetArchivedOrders handles GET /api/v1/archive.
	GetArchivedOrders(ctx echo.Context, params GetArchivedOrdersParams) error
}

// ServerInterfaceWrapper binds path and query parameters before calling the handler.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

// GetOrders converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrders(ctx echo.Context) error {
	return w.Handler.GetOrders(ctx)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	var orderID string

	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	return w.Handler.GetOrder(ctx, orderID)
}

// GetArchivedOrders converts echo context to params.
func (w *ServerInterfaceWrapper) GetArchivedOrders(ctx echo.Context) error {
	var params GetArchivedOrdersParams

	err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	return w.Handler.GetArchivedOrders(ctx, params)
}

// EchoRouter is the subset of *echo.Echo and *echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds every operation to router under baseURL.
func RegisterHandlers(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/v1/orders", wrapper.GetOrders)
	router.GET(baseURL+"/api/v1/orders/:orderId", wrapper.GetOrder)
	router.GET(baseURL+"/api/v1/archive", wrapper.GetArchivedOrders)
}

// GetSwagger parses and validates the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}

	if err = doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}

	return doc, nil
}
