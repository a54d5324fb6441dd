package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/mavera/backoffice/docs"
	"github.com/mavera/backoffice/internal/api/handler"
	"github.com/mavera/backoffice/internal/api/middleware"
	"github.com/mavera/backoffice/internal/core/domain"
	"github.com/mavera/backoffice/internal/core/ports"
	"github.com/mavera/backoffice/internal/infrastructure/http/handlers"
)

// Deps carries everything the router wires into handlers and middleware.
// Mongo and Redis are nil with the memory backend.
type Deps struct {
	Auth      ports.AuthService
	Bookings  ports.BookingService
	Audit     ports.AuditQuery
	Recorder  ports.AuditRecorder
	JWTSecret string
	Mongo     *mongo.Database
	Redis     *redis.Client
	Log       zerolog.Logger
	// Metrics replaces the default Prometheus registry for HTTP metrics.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(promMiddlewareConfig(d.Metrics)))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	accessHandler := handler.NewAccessHandler()
	bookingHandler := handler.NewBookingHandler(d.Bookings)
	auditHandler := handler.NewAuditHandler(d.Audit)

	session := []echo.MiddlewareFunc{
		middleware.Auth(d.JWTSecret),
		middleware.Session(d.Auth),
	}
	guard := func(p domain.Permission) echo.MiddlewareFunc {
		return middleware.RequirePermission(p, d.Recorder)
	}

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, middleware.Auth(d.JWTSecret))
	e.GET("/auth/me", authHandler.Me, session...)

	// --- Access routes ---
	v1 := e.Group("/v1", session...)
	v1.GET("/access/roles", accessHandler.Roles)
	v1.GET("/access/permissions", accessHandler.Permissions)
	v1.GET("/access/permissions/:permission", accessHandler.CheckPermission)
	v1.GET("/navigation", accessHandler.Navigation)
	v1.GET("/dashboard", accessHandler.Dashboard)

	v1.POST("/users", authHandler.CreateUser, guard(domain.PermAdminManageUsers))
	v1.POST("/bookings/quote", bookingHandler.Quote, guard(domain.PermSalesCreateBooking))
	v1.GET("/audit", auditHandler.List, guard(domain.PermAdminViewAudit))

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(promHandlerConfig(d.Metrics)))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func promMiddlewareConfig(reg *prometheus.Registry) echoprometheus.MiddlewareConfig {
	cfg := echoprometheus.MiddlewareConfig{
		Subsystem: "mavera",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}
	if reg != nil {
		cfg.Registerer = reg
	}
	return cfg
}

func promHandlerConfig(reg *prometheus.Registry) echoprometheus.HandlerConfig {
	if reg == nil {
		return echoprometheus.HandlerConfig{}
	}
	return echoprometheus.HandlerConfig{Gatherer: reg}
}

// requestLogger emits one zerolog line per request.
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
			if v.Error != nil || v.Status >= 500 {
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
