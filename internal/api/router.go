package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/sirpyerre/coffee-catalog/docs"
	"github.com/sirpyerre/coffee-catalog/internal/api/handler"
	"github.com/sirpyerre/coffee-catalog/internal/api/middleware"
	"github.com/sirpyerre/coffee-catalog/internal/core/ports"
)

// Deps is everything the router needs to serve requests.
type Deps struct {
	Auth     ports.AuthService
	Lots     ports.LotService
	Catalog  ports.CatalogService
	Reviews  ports.ReviewService
	Profiles ports.ProfileService

	// Checks are the readiness probes, keyed by dependency name.
	Checks map[string]handler.CheckFunc

	// BodyLimit caps request bodies, e.g. "12M". Empty disables the cap.
	BodyLimit string

	// MediaPrefix and MediaDir serve locally stored images. Both empty
	// when objects live in a bucket.
	MediaPrefix string
	MediaDir    string

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	registerer := d.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "catalog",
		Registerer: registerer,
	}))
	if d.BodyLimit != "" {
		e.Use(echomiddleware.BodyLimit(d.BodyLimit))
	}

	// --- Ops endpoints (no auth required) ---
	health := handler.NewHealthHandler(d.Checks)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if d.MediaPrefix != "" && d.MediaDir != "" {
		e.Static(d.MediaPrefix, d.MediaDir)
	}

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth)
	e.POST("/auth/signup", authHandler.SignUp)
	e.POST("/auth/login", authHandler.Login)

	// --- API v1: identity is optional here and required per route ---
	lotHandler := handler.NewLotHandler(d.Lots, d.Catalog, d.Reviews)
	reviewHandler := handler.NewReviewHandler(d.Reviews)
	profileHandler := handler.NewProfileHandler(d.Profiles)

	signedIn := middleware.RequireIdentity()

	v1 := e.Group("/v1", middleware.Auth(d.Auth))
	v1.GET("/me", authHandler.Me, signedIn)

	v1.GET("/lots", lotHandler.List)
	v1.GET("/lots/:id", lotHandler.Get)
	v1.POST("/lots", lotHandler.Create, signedIn)
	v1.POST("/lots/import", lotHandler.Import, middleware.RequireAdmin(d.Auth))

	v1.POST("/reviews", reviewHandler.Submit, signedIn)

	v1.GET("/profile", profileHandler.Get, signedIn)
	v1.PUT("/profile", profileHandler.Update, signedIn)

	return e
}

// requestLogger writes one zerolog entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
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
