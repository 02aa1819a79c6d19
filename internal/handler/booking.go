package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tablebooker/restaurant-reservation/internal/booking"
)

// BookingHandler exposes table availability and the two booking entry
// points over HTTP.  All real decisions happen in the engine; these
// handlers only bind, delegate and translate.
type BookingHandler struct {
	Engine *booking.Engine
}

func NewBookingHandler(e *booking.Engine) *BookingHandler { return &BookingHandler{Engine: e} }

// AvailableTables handles GET /v1/bookings/tables.  Query parameters:
// locationId, date, guests, and an optional time narrowing the result to
// the slot starting then.
func (h *BookingHandler) AvailableTables(c echo.Context) error {
	guests, err := strconv.Atoi(c.QueryParam("guests"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "guests must be a number"})
	}
	out, err := h.Engine.AvailableTables(
		c.Request().Context(),
		c.QueryParam("locationId"),
		c.QueryParam("date"),
		c.QueryParam("time"),
		guests,
	)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// CreateByCustomer handles POST /v1/bookings/client.
func (h *BookingHandler) CreateByCustomer(c echo.Context) error {
	var req booking.CreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	out, err := h.Engine.CreateByCustomer(c.Request().Context(), req, actorEmail(c))
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// CreateByWaiter handles POST /v1/bookings/waiter.
func (h *BookingHandler) CreateByWaiter(c echo.Context) error {
	var req booking.WaiterCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	out, err := h.Engine.CreateByWaiter(c.Request().Context(), req, actorEmail(c))
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Postpone handles PUT /v1/bookings/waiter/:id.
func (h *BookingHandler) Postpone(c echo.Context) error {
	var req booking.PostponeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	out, err := h.Engine.Postpone(c.Request().Context(), c.Param("id"), req, actorEmail(c))
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
