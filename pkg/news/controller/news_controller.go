package controller

import "github.com/labstack/echo/v4"

type NewsController interface {
	List(c echo.Context) error
	Create(c echo.Context) error
	Import(c echo.Context) error
	Approve(c echo.Context) error
	Reject(c echo.Context) error
	Delete(c echo.Context) error
	// Published is the farmer feed.
	Published(c echo.Context) error
}
