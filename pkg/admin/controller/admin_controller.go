package controller

import "github.com/labstack/echo/v4"

type AdminController interface {
	Dashboard(c echo.Context) error
	Lands(c echo.Context) error
	DecideLand(c echo.Context) error
	CropPlans(c echo.Context) error
	DecidePlan(c echo.Context) error
}
