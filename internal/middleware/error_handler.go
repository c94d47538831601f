package middleware

import (
	"net/http"

	"github.com/campushub/campus-events/internal/apperr"
	"github.com/labstack/echo/v4"
)

// ErrorHandler maps apperr kinds to HTTP status codes and renders every
// error as a JSON message. Nothing is swallowed: unknown errors surface as
// a 500 with their message.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := err.Error()

	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		code = http.StatusBadRequest
	case apperr.KindPermission:
		code = http.StatusForbidden
	case apperr.KindState:
		code = http.StatusUnprocessableEntity
	case apperr.KindNotFound:
		code = http.StatusNotFound
	case apperr.KindConflict:
		code = http.StatusConflict
	default:
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			}
		}
	}

	_ = c.JSON(code, map[string]string{"message": msg})
}
