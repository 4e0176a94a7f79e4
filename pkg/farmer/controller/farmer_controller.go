package controller

import "github.com/labstack/echo/v4"

type FarmerController interface {
	Profile(c echo.Context) error
	UpdateProfile(c echo.Context) error
	Recommendations(c echo.Context) error
}
