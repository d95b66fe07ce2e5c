package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/nunu-app/marketplace-api/docs"
	"github.com/nunu-app/marketplace-api/internal/api/handler"
	"github.com/nunu-app/marketplace-api/internal/api/middleware"
	"github.com/nunu-app/marketplace-api/internal/core/ports"
)

// Deps is everything the router needs. Registerer and Gatherer default to
// the global Prometheus registry.
type Deps struct {
	Log        zerolog.Logger
	Tokens     middleware.TokenVerifier
	Auth       ports.AuthService
	Profiles   ports.ProfileService
	Directory  ports.DirectoryService
	Uploads    ports.UploadService
	Readiness  map[string]ports.Pinger
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "marketplace",
		Subsystem:  "http",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	authHandler := handler.NewAuthHandler(d.Auth, d.Log)
	profileHandler := handler.NewProfileHandler(d.Profiles, d.Log)
	providerHandler := handler.NewProviderHandler(d.Directory, d.Log)
	uploadHandler := handler.NewUploadHandler(d.Uploads, d.Log)
	healthHandler := handler.NewHealthHandler(d.Readiness)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/providers", providerHandler.List)
	e.POST("/upload", uploadHandler.Upload)

	// --- Authenticated routes ---
	user := e.Group("/user", middleware.Auth(d.Tokens, d.Log))
	user.PATCH("/profile", profileHandler.Update)

	// --- Operations ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
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
			evt := log.Info()
			switch {
			case v.Status >= 500:
				evt = log.Error().Err(v.Error)
			case v.Error != nil:
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
