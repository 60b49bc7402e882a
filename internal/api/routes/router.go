package routes

import (
	"net/http"

	"github.com/staybook/backend/internal/api/handlers"
	"github.com/staybook/backend/internal/api/middleware"
	"github.com/staybook/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	propertyHandler *handlers.PropertyHandler
	userHandler     *handlers.UserHandler
	bookingHandler  *handlers.BookingHandler
	healthHandler   *handlers.HealthHandler

	allowedOrigins []string
	metrics        *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	propertyHandler *handlers.PropertyHandler,
	userHandler *handlers.UserHandler,
	bookingHandler *handlers.BookingHandler,
	healthHandler *handlers.HealthHandler,
	allowedOrigins []string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		propertyHandler: propertyHandler,
		userHandler:     userHandler,
		bookingHandler:  bookingHandler,
		healthHandler:   healthHandler,
		allowedOrigins:  allowedOrigins,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", r.healthHandler.Health)

	// Property endpoints
	r.mux.HandleFunc("POST /properties", r.propertyHandler.CreateProperty)
	r.mux.HandleFunc("GET /properties", r.propertyHandler.ListProperties)
	r.mux.HandleFunc("GET /properties/{id}", r.propertyHandler.GetProperty)

	// User endpoints
	r.mux.HandleFunc("POST /users", r.userHandler.CreateUser)
	r.mux.HandleFunc("GET /users/{id}", r.userHandler.GetUser)
	r.mux.HandleFunc("GET /users/{id}/bookings", r.bookingHandler.ListGuestBookings)

	// Booking endpoints
	r.mux.HandleFunc("POST /bookings", r.bookingHandler.CreateBooking)
	r.mux.HandleFunc("GET /bookings/{id}", r.bookingHandler.GetBooking)
	r.mux.HandleFunc("POST /bookings/{id}/cancel", r.bookingHandler.CancelBooking)

	// Apply middleware in reverse order (last middleware wraps first).
	// Logging sits outside recovery so panics are logged as 500s.
	var handler http.Handler = r.mux
	handler = middleware.RecoveryMiddleware(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
