package controller

import "github.com/labstack/echo/v4"

type LocationController interface {
	States(c echo.Context) error
	Districts(c echo.Context) error
	Villages(c echo.Context) error
	PincodeLookup(c echo.Context) error
	ReverseGeocode(c echo.Context) error
}
