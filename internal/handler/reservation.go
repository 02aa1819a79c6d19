package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tablebooker/restaurant-reservation/internal/booking"
)

// ReservationHandler serves the customer-facing reservation lifecycle:
// history, edit and cancellation.
type ReservationHandler struct {
	Engine *booking.Engine
}

func NewReservationHandler(e *booking.Engine) *ReservationHandler {
	return &ReservationHandler{Engine: e}
}

// History handles GET /v1/reservations: every reservation the customer has
// made, cancelled ones included.
func (h *ReservationHandler) History(c echo.Context) error {
	out, err := h.Engine.History(c.Request().Context(), actorEmail(c))
	if err != nil {
		return engineError(c, err)
	}
	if out == nil {
		out = []booking.ReservationResponse{}
	}
	return c.JSON(http.StatusOK, out)
}

// Edit handles PUT /v1/reservations/:id.
func (h *ReservationHandler) Edit(c echo.Context) error {
	var req booking.EditRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	out, err := h.Engine.Edit(c.Request().Context(), c.Param("id"), req, actorEmail(c))
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Cancel handles DELETE /v1/reservations/:id.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	if err := h.Engine.CancelByCustomer(c.Request().Context(), c.Param("id"), actorEmail(c)); err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "reservation cancelled"})
}
