package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/vetlink/session-gateway/internal/api/handler"
	"github.com/vetlink/session-gateway/internal/api/middleware"
	"github.com/vetlink/session-gateway/internal/core/domain"
	"github.com/vetlink/session-gateway/internal/core/ports"
	"github.com/vetlink/session-gateway/internal/core/service"
	"github.com/vetlink/session-gateway/internal/infrastructure/backend"
	"github.com/vetlink/session-gateway/internal/infrastructure/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil when the in-memory session store is in use.
func NewRouter(cfg *config.Config, store ports.SessionStore, client *backend.Client, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("vetlink"))

	// --- Dependencies ---
	sessionService := service.NewSessionService(store, client, log)
	bookingService := service.NewBookingService(client, client, log)
	codec := middleware.NewCookieCodec(cfg.SessionSecret, cfg.SessionTTL)

	// Every request gets its session hydrated before routing decisions.
	e.Use(middleware.Session(sessionService, codec))

	authHandler := handler.NewAuthHandler(sessionService)
	vetsHandler := handler.NewVetsHandler(client)
	apptHandler := handler.NewAppointmentsHandler(bookingService, client)
	reviewsHandler := handler.NewReviewsHandler(client)
	usersHandler := handler.NewUsersHandler(client, sessionService)

	// --- Public routes ---
	e.GET("/", home)
	e.POST("/login", authHandler.Login)
	e.POST("/register", authHandler.Register)
	e.POST("/logout", authHandler.Logout)
	e.GET("/session", authHandler.Session)
	e.GET("/vetprofile", vetsHandler.List)
	e.GET("/vetprofile/:id", vetsHandler.Get)
	e.GET("/reviews/:vetId", reviewsHandler.ListForVet)

	// --- Authenticated routes (any role) ---
	authed := e.Group("", middleware.Guard(""))
	authed.GET("/me", authHandler.Me)
	authed.PUT("/users/me", usersHandler.UpdateProfile)
	authed.DELETE("/users/me", usersHandler.DeleteAccount)
	authed.GET("/appointments", apptHandler.Mine)
	authed.DELETE("/appointments/:id", apptHandler.Cancel)

	// --- Client-only routes ---
	clientOnly := e.Group("", middleware.Guard(domain.RoleClient))
	clientOnly.POST("/appointments", apptHandler.Book)
	clientOnly.POST("/reviews/:vetId", reviewsHandler.Add)

	// --- Vet-only routes ---
	vetOnly := e.Group("", middleware.Guard(domain.RoleVet))
	vetOnly.POST("/vetprofile", vetsHandler.Create)
	vetOnly.PUT("/vetprofile/:id", vetsHandler.Update)
	vetOnly.PATCH("/appointments/:id/status", apptHandler.UpdateStatus)

	// --- Observability (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(rdb, client)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)  // readiness – are dependencies up?

	return e
}

// home is the redirect target for authenticated-but-wrong-role sessions.
func home(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"service": "vetlink session gateway"})
}
