package httperr

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func serve(h echo.HandlerFunc) *httptest.ResponseRecorder {
	e := echo.New()
	e.HTTPErrorHandler = Handler
	e.GET("/", h)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	return rec
}

func TestHandlerHidesInternalErrors(t *testing.T) {
	rec := serve(func(c echo.Context) error { return Internal(c, errors.New("disk on fire")) })
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"detail":"Internal server error"}`, rec.Body.String())
}

func TestHandlerKeepsHTTPErrorMessage(t *testing.T) {
	rec := serve(func(c echo.Context) error { return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token") })
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"detail":"Invalid token"}`, rec.Body.String())
}

func TestDetail(t *testing.T) {
	rec := serve(func(c echo.Context) error { return BadRequest(c, "land_id required") })
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"land_id required"}`, rec.Body.String())
}
