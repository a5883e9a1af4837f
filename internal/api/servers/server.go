package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List orders, Active before New, most recently used first
	// (GET /api/v1/orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// Create a batch of New orders for one credential
	// (POST /api/v1/orders)
	CreateOrders(ctx echo.Context) error
	// Delete orders by id regardless of their state
	// (POST /api/v1/orders/delete)
	DeleteOrders(ctx echo.Context) error
	// Order view for the activation page
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderId OrderId) error
	// Lease the first number or return the current one
	// (POST /api/v1/orders/{orderId}/activate)
	ActivateOrder(ctx echo.Context, orderId OrderId) error
	// Return the verification code once it arrived
	// (GET /api/v1/orders/{orderId}/code)
	PollCode(ctx echo.Context, orderId OrderId) error
	// Forget the received code so a new one can be polled
	// (POST /api/v1/orders/{orderId}/code/reset)
	ResetCode(ctx echo.Context, orderId OrderId) error
	// Swap the number of an active order
	// (POST /api/v1/orders/{orderId}/replacement)
	RequestReplacement(ctx echo.Context, orderId OrderId) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams
	err := runtime.BindQueryParameter("form", true, false, "credentialId", ctx.QueryParams(), &params.CredentialId)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter credentialId: %s", err))
	}
	return w.Handler.ListOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateOrders(ctx echo.Context) error {
	return w.Handler.CreateOrders(ctx)
}

func (w *ServerInterfaceWrapper) DeleteOrders(ctx echo.Context) error {
	return w.Handler.DeleteOrders(ctx)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindOrderId(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) ActivateOrder(ctx echo.Context) error {
	orderId, err := bindOrderId(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ActivateOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) PollCode(ctx echo.Context) error {
	orderId, err := bindOrderId(ctx)
	if err != nil {
		return err
	}
	return w.Handler.PollCode(ctx, orderId)
}

func (w *ServerInterfaceWrapper) ResetCode(ctx echo.Context) error {
	orderId, err := bindOrderId(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ResetCode(ctx, orderId)
}

func (w *ServerInterfaceWrapper) RequestReplacement(ctx echo.Context) error {
	orderId, err := bindOrderId(ctx)
	if err != nil {
		return err
	}
	return w.Handler.RequestReplacement(ctx, orderId)
}

func bindOrderId(ctx echo.Context) (OrderId, error) {
	var orderId OrderId
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return orderId, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}
	return orderId, nil
}

// EchoRouter is the subset of echo.Echo and echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the routes under baseURL. Admin
// routes get adminMiddleware in front of their handler.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string, adminMiddleware ...echo.MiddlewareFunc) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/api/v1/orders", wrapper.ListOrders, adminMiddleware...)
	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrders, adminMiddleware...)
	router.POST(baseURL+"/api/v1/orders/delete", wrapper.DeleteOrders, adminMiddleware...)
	router.GET(baseURL+"/api/v1/orders/:orderId", wrapper.GetOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/activate", wrapper.ActivateOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId/code", wrapper.PollCode)
	router.POST(baseURL+"/api/v1/orders/:orderId/code/reset", wrapper.ResetCode)
	router.POST(baseURL+"/api/v1/orders/:orderId/replacement", wrapper.RequestReplacement)
}
