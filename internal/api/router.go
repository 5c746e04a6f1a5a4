package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gogoggogosususus-sudo/stormanagement/internal/api/handler"
	"github.com/gogoggogosususus-sudo/stormanagement/internal/api/middleware"
	"github.com/gogoggogosususus-sudo/stormanagement/internal/api/view"
	"github.com/gogoggogosususus-sudo/stormanagement/internal/core/ports"
)

// Deps carries everything the router wires together.
type Deps struct {
	Sessions     ports.SessionService
	Views        ports.ViewService
	Backend      handler.BackendProber
	Mongo        *mongo.Database
	Redis        *redis.Client
	AllowedRoles []string
	Log          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Renderer = view.NewRenderer()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("salesportal"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Sessions, deps.Views)
	portalHandler := handler.NewPortalHandler(deps.Views)

	// --- Public routes ---
	e.GET("/", authHandler.Root)
	e.POST("/login", authHandler.Login)
	e.StaticFS("/static", view.StaticFS())

	// --- Authenticated portal routes ---
	portal := e.Group("", middleware.SessionAuth(deps.Sessions), middleware.RBAC(deps.AllowedRoles...))
	portal.POST("/logout", authHandler.Logout)
	portal.GET("/portal/:section", portalHandler.Section)
	portal.GET("/portal/orders/:id/edit", portalHandler.EditOrder)
	portal.POST("/portal/orders/:id", portalHandler.UpdateOrder)
	portal.GET("/portal/maintenance/:id/edit", portalHandler.EditMaintenance)
	portal.POST("/portal/maintenance/:id", portalHandler.UpdateMaintenance)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis, deps.Backend)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
