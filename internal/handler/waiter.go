package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tablebooker/restaurant-reservation/internal/booking"
)

// WaiterHandler serves the waiter's own reservation views and cancellation.
type WaiterHandler struct {
	Engine *booking.Engine
}

func NewWaiterHandler(e *booking.Engine) *WaiterHandler { return &WaiterHandler{Engine: e} }

// Reservations handles GET /v1/waiter/reservations?date&time&table: the
// waiter's upcoming bookings for a date.  An empty result is a 204.
func (h *WaiterHandler) Reservations(c echo.Context) error {
	out, err := h.Engine.ReservationsForWaiter(
		c.Request().Context(),
		actorEmail(c),
		c.QueryParam("date"),
		c.QueryParam("time"),
		c.QueryParam("table"),
	)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Cancel handles DELETE /v1/waiter/reservations/:id.
func (h *WaiterHandler) Cancel(c echo.Context) error {
	if err := h.Engine.CancelByWaiter(c.Request().Context(), c.Param("id"), actorEmail(c)); err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "reservation cancelled"})
}
