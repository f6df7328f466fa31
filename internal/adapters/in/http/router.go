package http

import (
	"context"
	"log/slog"

	"logistics/internal/adapters/in/http/apidocs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterConfig collects what NewRouter needs besides the handlers.
type RouterConfig struct {
	AllowedOrigins []string
	Logger         *slog.Logger
}

// NewRouter builds the echo instance serving the gateway: middleware,
// validated API routes and the swagger UI. Callers mount extra routes such
// as /rpc and /metrics on the returned instance.
func NewRouter(ctx context.Context, server ServerInterface, cfg RouterConfig) (*echo.Echo, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	doc, err := apidocs.Load(ctx)
	if err != nil {
		return nil, err
	}
	validator, err := OpenAPIValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(RequestLogger(logger))
	e.Use(CORS(cfg.AllowedOrigins))
	e.Use(validator)

	RegisterHandlers(e, server)

	apidocs.Register()
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}
