package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/issuetracker/issues-service/docs"
	"github.com/issuetracker/issues-service/internal/api/handler"
	"github.com/issuetracker/issues-service/internal/api/middleware"
	"github.com/issuetracker/issues-service/internal/core/ports"
)

// RouterDeps carries everything NewRouter wires into routes.
type RouterDeps struct {
	Issues    ports.IssueService
	KeepAlive ports.KeepAliveService
	// Ready lists the dependencies checked by /health/ready, by name.
	Ready     map[string]handler.Pinger
	JWTSecret string
	// Prefix is the mount point of the function routes, e.g. "/.netlify/functions".
	Prefix string
	Logger zerolog.Logger
	// Registry receives the HTTP request metrics. A nil Registry gets a
	// private one so several routers can coexist in one process.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	validator := handler.NewValidator()
	e.Validator = validator
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: reg,
	}))

	// --- Function routes ---
	issues := handler.NewIssueHandler(deps.Issues)
	keepAlive := handler.NewKeepAliveHandler(deps.KeepAlive)
	auth := middleware.Auth(deps.JWTSecret, validator)

	fn := e.Group(deps.Prefix)
	fn.GET("/list", issues.List, auth)
	fn.GET("/get", issues.List, auth)
	fn.POST("/create", issues.Create, auth)
	fn.DELETE("/delete", issues.Delete, auth)
	fn.GET("/keep-alive", keepAlive.Trigger)
	fn.GET("/keep-db-awake", keepAlive.Trigger)

	// --- Health probes (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewHealthDependenciesHandler(deps.Ready).Readiness)

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, reg},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
