package http

import (
	"net/http"

	"logistics/internal/core/domain/model/trip"

	"github.com/labstack/echo/v4"
)

// statusCodeForKind maps the ledger taxonomy onto HTTP.
func statusCodeForKind(kind trip.Kind) int {
	switch kind {
	case trip.KindNoActiveTrip:
		return http.StatusNotFound
	case trip.KindIdentifierMismatch:
		return http.StatusForbidden
	case trip.KindInvalidTransition:
		return http.StatusConflict
	case trip.KindInvalidRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func humanMessage(kind trip.Kind) string {
	switch kind {
	case trip.KindNoActiveTrip:
		return "No trip has been created yet"
	case trip.KindIdentifierMismatch:
		return "Trip id does not match the active trip"
	case trip.KindInvalidTransition:
		return "Trip cannot move to that status from its current one"
	case trip.KindInvalidRequest:
		return "Invalid request"
	default:
		return "Internal error"
	}
}

// writeError answers with the status code and body for err. Internal errors
// do not leak their text.
func writeError(ctx echo.Context, err error) error {
	kind := trip.KindOf(err)
	detail := err.Error()
	if kind == trip.KindInternal {
		ctx.Logger().Error(err)
		detail = "internal error"
	}
	return ctx.JSON(statusCodeForKind(kind), Error{
		Message: humanMessage(kind),
		Error: ErrorDetail{
			Kind:    string(kind),
			Message: detail,
		},
	})
}

func writeInvalidRequest(ctx echo.Context, detail string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Message: humanMessage(trip.KindInvalidRequest),
		Error: ErrorDetail{
			Kind:    string(trip.KindInvalidRequest),
			Message: detail,
		},
	})
}
