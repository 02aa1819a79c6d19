// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/tablebooker/restaurant-reservation/internal/handler"
	"github.com/tablebooker/restaurant-reservation/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication: the health
// check and the public availability browse endpoint.
func RegisterRoutes(e *echo.Echo, b *handler.BookingHandler) {
	e.GET("/healthz", handler.Health)
	// Guests can browse free tables before creating an account.
	e.GET("/v1/bookings/tables", b.AvailableTables)
}

// RegisterAuth registers the authentication endpoints.  Unauthenticated
// token operations live under /v1/auth; /v1/me needs a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Issues a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout takes a refresh token in the body, or revokes every session
	// when called with only a bearer token; no JWT middleware needed.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("CUSTOMER", "WAITER"))
	auth.GET("/me", a.Me)
}

// RegisterBooking registers the reservation API.  Customers book, review,
// edit and cancel their own reservations; waiters book on a guest's behalf
// and manage the reservations assigned to them.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, r *handler.ReservationHandler, w *handler.WaiterHandler, jwtSecret string) {
	customer := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RequireRole("CUSTOMER"))
	customer.POST("/bookings/client", b.CreateByCustomer)
	customer.GET("/reservations", r.History)
	customer.PUT("/reservations/:id", r.Edit)
	customer.DELETE("/reservations/:id", r.Cancel)

	waiter := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RequireRole("WAITER"))
	waiter.POST("/bookings/waiter", b.CreateByWaiter)
	waiter.PUT("/bookings/waiter/:id", b.Postpone)
	waiter.GET("/waiter/reservations", w.Reservations)
	waiter.DELETE("/waiter/reservations/:id", w.Cancel)
}
