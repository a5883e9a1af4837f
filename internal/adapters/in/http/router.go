package http

import (
	"log/slog"
	"net/http"

	"activation/internal/api/servers"
	"activation/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterConfig carries what NewRouter needs besides the Server.
type RouterConfig struct {
	AdminToken string
	Metrics    *metrics.Metrics
	// Gatherer backs /metrics. The endpoint is not mounted when nil.
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// NewRouter builds the echo instance serving the API, its documentation,
// health and metrics endpoints.
func NewRouter(server *Server, cfg RouterConfig) (*echo.Echo, error) {
	swagger, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	validator, err := requestValidator(swagger)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	e.Use(middleware.Recover())
	e.Use(requestLogger(cfg.Logger.With("component", "http")))
	e.Use(requestMetrics(cfg.Metrics))
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, servers.RawSpec())
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if cfg.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	servers.RegisterHandlersWithBaseURL(e, server, "", adminAuth(cfg.AdminToken))

	return e, nil
}
