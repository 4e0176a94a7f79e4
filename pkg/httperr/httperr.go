// Package httperr writes the {"detail": ...} error bodies the API uses.
package httperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

func Detail(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"detail": msg})
}

func BadRequest(c echo.Context, msg string) error { return Detail(c, http.StatusBadRequest, msg) }

func NotFound(c echo.Context) error { return Detail(c, http.StatusNotFound, "Not found") }

func Forbidden(c echo.Context, msg string) error { return Detail(c, http.StatusForbidden, msg) }

// Internal hides err from the client; the request logger records it.
func Internal(_ echo.Context, err error) error {
	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
}

// Handler renders every echo error as {"detail": ...}.
func Handler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code, msg := http.StatusInternalServerError, "Internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		} else {
			msg = http.StatusText(code)
		}
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = Detail(c, code, msg)
}
