package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tinyboard/account-registry/internal/api/handler"
	"github.com/tinyboard/account-registry/internal/api/middleware"
	"github.com/tinyboard/account-registry/internal/core/ports"
	"github.com/tinyboard/account-registry/internal/infrastructure/db/postgres"
)

// Deps carries the constructed collaborators the router wires together.
// Everything is built in main and injected; the router holds no state of its
// own.
type Deps struct {
	Registration ports.RegistrationService
	Listing      ports.ListingService
	Activity     handler.ActivityEnqueuer
	Limiter      middleware.Limiter
	Pools        *postgres.Pools
	Redis        *redis.Client
	Logger       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("registry"))

	// --- Account routes ---
	accountHandler := handler.NewAccountHandler(deps.Registration, deps.Listing, deps.Activity)
	registerLimit := middleware.RateLimit(deps.Limiter, "register", deps.Logger)

	e.POST("/api/users", accountHandler.Register, registerLimit)
	e.GET("/api/users", accountHandler.List)
	e.GET("/api/users/:username", accountHandler.Get)

	// --- Health probes and metrics (no limits) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Pools, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
