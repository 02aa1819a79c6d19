package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tablebooker/restaurant-reservation/internal/booking"
)

// actorEmail returns the authenticated account email that JWTAuth stored in
// the context.
func actorEmail(c echo.Context) string {
	s, _ := c.Get("email").(string)
	return s
}

// engineError converts a booking engine failure into the HTTP response its
// kind prescribes.  Internal failures are logged and masked; everything else
// carries its message to the client.
func engineError(c echo.Context, err error) error {
	status := booking.HTTPStatus(err)
	if status == http.StatusNoContent {
		return c.NoContent(status)
	}
	var e *booking.Error
	if errors.As(err, &e) && e.Kind != booking.KindInternal {
		return c.JSON(status, echo.Map{"error": e.Msg})
	}
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
