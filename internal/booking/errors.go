package booking

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an engine failure.  Every error the engine returns is an
// *Error carrying exactly one Kind; handlers map kinds to HTTP statuses with
// HTTPStatus and never inspect message text.
type Kind int

const (
	KindValidation   Kind = iota + 1 // malformed input, bad date/time, guest count out of range
	KindNotFound                     // missing location, table, reservation, waiter, user
	KindUnauthorized                 // actor identity missing or unresolved
	KindForbidden                    // actor does not own or serve the resource
	KindConflict                     // slot already reserved, or no waiter can be assigned
	KindState                        // operation not allowed in the reservation's current state
	KindNoData                       // query matched nothing; not a failure
	KindInternal                     // store failure or other unexpected condition
)

// Error is the engine's failure type.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func errf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// internal wraps a store failure; the original cause is kept in the message
// for the server log but the kind is all the client learns.
func internal(err error) *Error {
	return &Error{Kind: KindInternal, Msg: "internal error: " + err.Error()}
}

// HTTPStatus maps an engine error to the status code its kind prescribes.
// Unknown errors map to 500.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindValidation, KindState:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindNoData:
		return http.StatusNoContent
	default:
		return http.StatusInternalServerError
	}
}

// IsKind reports whether err is an engine error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
