package controller

import "github.com/labstack/echo/v4"

type YieldController interface {
	Estimate(c echo.Context) error
	Configs(c echo.Context) error
	Import(c echo.Context) error
}
