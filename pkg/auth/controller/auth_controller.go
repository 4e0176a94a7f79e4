package controller

import "github.com/labstack/echo/v4"

type AuthController interface {
	SendOTP(c echo.Context) error
	VerifyOTP(c echo.Context) error
	CancelSignup(c echo.Context) error
	AdminLogin(c echo.Context) error
	WhoAmI(c echo.Context) error
}
