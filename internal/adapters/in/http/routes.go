package http

import (
	"fmt"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface lists the operations of the gateway's OpenAPI document.
type ServerInterface interface {
	// (GET /)
	Root(ctx echo.Context) error
	// (GET /health)
	Health(ctx echo.Context) error
	// (POST /api/v1/trips)
	CreateTrip(ctx echo.Context) error
	// (POST /api/v1/trips/{tripId}/midpoint)
	AdvanceToMidpoint(ctx echo.Context, tripID string) error
	// (POST /api/v1/trips/{tripId}/delivered)
	AdvanceToDelivered(ctx echo.Context, tripID string) error
	// (GET /api/v1/trips/{tripId}/status)
	GetTripStatus(ctx echo.Context, tripID string) error
	// (GET /contract/{tripId})
	ViewContract(ctx echo.Context, tripID string) error
}

// ServerInterfaceWrapper binds path parameters before calling the handler.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// Root converts echo context to params.
func (w *ServerInterfaceWrapper) Root(ctx echo.Context) error {
	return w.Handler.Root(ctx)
}

// Health converts echo context to params.
func (w *ServerInterfaceWrapper) Health(ctx echo.Context) error {
	return w.Handler.Health(ctx)
}

// CreateTrip converts echo context to params.
func (w *ServerInterfaceWrapper) CreateTrip(ctx echo.Context) error {
	return w.Handler.CreateTrip(ctx)
}

// AdvanceToMidpoint converts echo context to params.
func (w *ServerInterfaceWrapper) AdvanceToMidpoint(ctx echo.Context) error {
	tripID, err := bindTripID(ctx)
	if err != nil {
		return writeInvalidRequest(ctx, err.Error())
	}
	return w.Handler.AdvanceToMidpoint(ctx, tripID)
}

// AdvanceToDelivered converts echo context to params.
func (w *ServerInterfaceWrapper) AdvanceToDelivered(ctx echo.Context) error {
	tripID, err := bindTripID(ctx)
	if err != nil {
		return writeInvalidRequest(ctx, err.Error())
	}
	return w.Handler.AdvanceToDelivered(ctx, tripID)
}

// GetTripStatus converts echo context to params.
func (w *ServerInterfaceWrapper) GetTripStatus(ctx echo.Context) error {
	tripID, err := bindTripID(ctx)
	if err != nil {
		return writeInvalidRequest(ctx, err.Error())
	}
	return w.Handler.GetTripStatus(ctx, tripID)
}

// ViewContract converts echo context to params.
func (w *ServerInterfaceWrapper) ViewContract(ctx echo.Context) error {
	tripID, err := bindTripID(ctx)
	if err != nil {
		return writeInvalidRequest(ctx, err.Error())
	}
	return w.Handler.ViewContract(ctx, tripID)
}

func bindTripID(ctx echo.Context) (string, error) {
	var tripID string
	err := runtime.BindStyledParameterWithOptions("simple", "tripId", escapedParam(ctx, "tripId"), &tripID,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return "", fmt.Errorf("invalid format for parameter tripId: %w", err)
	}
	return tripID, nil
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers mounts si on router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.GET("/", w.Root)
	router.GET("/health", w.Health)
	router.POST("/api/v1/trips", w.CreateTrip)
	router.POST("/api/v1/trips/:tripId/midpoint", w.AdvanceToMidpoint)
	router.POST("/api/v1/trips/:tripId/delivered", w.AdvanceToDelivered)
	router.GET("/api/v1/trips/:tripId/status", w.GetTripStatus)
	router.GET("/contract/:tripId", w.ViewContract)
}

// escapedParam returns a path parameter in its escaped form. Echo routes on
// the raw path only when it differs from the default encoding; otherwise the
// parameter is already decoded and has to be escaped again for the binder.
func escapedParam(ctx echo.Context, name string) string {
	value := ctx.Param(name)
	if ctx.Request().URL.RawPath != "" {
		return value
	}
	return url.PathEscape(value)
}
