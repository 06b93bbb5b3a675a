package devserver

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/campusrooms/booking-client/internal/core/domain"
)

// Options configure the devserver.
type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
	Log       zerolog.Logger
}

// Server owns the in-memory state and the Echo instance serving it.
type Server struct {
	store    *store
	secret   string
	tokenTTL time.Duration
	log      zerolog.Logger
	echo     *echo.Echo
}

func New(opts Options) *Server {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 12 * time.Hour
	}
	s := &Server{
		store:    newStore(),
		secret:   opts.JWTSecret,
		tokenTTL: opts.TokenTTL,
		log:      opts.Log,
	}
	s.echo = s.router()
	return s
}

// Handler exposes the HTTP surface, for tests that mount the server on
// httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start blocks serving on addr until the server is shut down.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = newValidator()
	e.HTTPErrorHandler = newHTTPErrorHandler(s.log)

	// Per-instance registry so tests can spin up several servers without
	// duplicate collector registration.
	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "devserver",
		Registerer: reg,
	}))

	// --- Public routes ---
	e.POST("/api/regis", s.handleRegister)
	e.POST("/api/login", s.handleLogin)
	e.GET("/api/rooms", s.handleRooms)
	e.GET("/health", s.handleHealth)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg}))

	// --- Authenticated routes ---
	authed := e.Group("/api", auth(s.secret))
	authed.GET("/profile", s.handleProfile)
	authed.GET("/bookings_list", s.handleListBookings)
	authed.POST("/bookings", s.handleCreateBooking)
	authed.PUT("/bookings_list/update/:id", s.handleUpdateBooking)
	authed.DELETE("/bookings_list/delete/:id", s.handleDeleteBooking)

	// --- Admin routes ---
	admin := e.Group("/api", auth(s.secret), requireRole(domain.RoleAdmin))
	admin.PUT("/admin_update/:id", s.handleAdminUpdate)
	admin.DELETE("/admin/booking/:id", s.handleAdminDelete)

	return e
}

// errorResponse is the canonical error envelope for all devserver errors.
type errorResponse struct {
	Message string `json:"message"`
}

// newHTTPErrorHandler maps known store errors to deterministic status codes,
// logs unexpected ones, and renders a consistent JSON envelope.
func newHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, errUserExists):
		return http.StatusConflict, err.Error()
	case errors.Is(err, errInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, errUserNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, errBookingNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, errNotOwner):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, errNotEditable):
		return http.StatusConflict, err.Error()
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
