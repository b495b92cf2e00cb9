package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/portal/auth-service/docs"
	"github.com/portal/auth-service/internal/api/handler"
	"github.com/portal/auth-service/internal/api/metrics"
	"github.com/portal/auth-service/internal/api/middleware"
	"github.com/portal/auth-service/internal/api/session"
	"github.com/portal/auth-service/internal/core/domain"
	"github.com/portal/auth-service/internal/core/ports"
	"github.com/portal/auth-service/internal/core/service"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Log       zerolog.Logger
	Users     ports.UserRepository
	Hasher    ports.PasswordHasher
	Tokens    ports.TokenIssuer
	Sessions  *session.Binder
	Notifier  ports.Notifier
	Readiness map[string]handler.Pinger

	// Registerer and Gatherer back the HTTP metrics and /metrics. They default
	// to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "auth_http",
		Registerer: deps.Registerer,
	}))

	// --- Dependencies ---
	authService := service.NewAuthService(deps.Users, deps.Hasher, deps.Tokens, deps.Notifier, metrics.NewRecorder(), deps.Log)
	authHandler := handler.NewAuthHandler(authService, deps.Sessions, deps.Log)
	dashboardHandler := handler.NewDashboardHandler(authService)
	gate := middleware.Auth(deps.Sessions, deps.Tokens)

	// --- Auth routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout)
	e.GET("/user", authHandler.User, gate)
	e.GET("/protected", authHandler.Protected, gate)

	// --- Dashboard (gate + placeholder role) ---
	dash := e.Group("/dashboard", gate, middleware.RBAC(domain.RoleMember))
	dash.GET("", dashboardHandler.Overview)
	dash.GET("/session", dashboardHandler.Session)

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewHealthDependenciesHandler(deps.Readiness, deps.Log).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
