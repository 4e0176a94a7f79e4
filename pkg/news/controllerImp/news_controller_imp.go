package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"alphafarm/pkg/httperr"
	"alphafarm/pkg/middleware"
	"alphafarm/pkg/news/controller"
	"alphafarm/pkg/news/scrape"
	"alphafarm/pkg/news/service"
)

type NewsCtrl struct{ s service.NewsService }

func New(s service.NewsService) controller.NewsController { return &NewsCtrl{s} }

func (h *NewsCtrl) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return httperr.NotFound(c)
	case errors.Is(err, service.ErrTitleRequired), errors.Is(err, service.ErrURLRequired), errors.Is(err, scrape.ErrBadURL):
		return httperr.BadRequest(c, err.Error())
	case errors.Is(err, scrape.ErrDomainNotAllowed):
		return httperr.Forbidden(c, err.Error())
	}
	return httperr.Internal(c, err)
}

func (h *NewsCtrl) List(c echo.Context) error {
	ns, err := h.s.List(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, ns)
}

func (h *NewsCtrl) Published(c echo.Context) error {
	ns, err := h.s.Published(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, ns)
}

func (h *NewsCtrl) Create(c echo.Context) error {
	var in service.NewsInput
	if err := c.Bind(&in); err != nil {
		return httperr.BadRequest(c, "bad json")
	}
	n, err := h.s.Create(c.Request().Context(), middleware.AccountID(c), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, n)
}

func (h *NewsCtrl) Import(c echo.Context) error {
	var in service.ImportInput
	if err := c.Bind(&in); err != nil {
		return httperr.BadRequest(c, "bad json")
	}
	n, err := h.s.Import(c.Request().Context(), middleware.AccountID(c), in)
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, n)
	case errors.Is(err, service.ErrURLRequired), errors.Is(err, scrape.ErrBadURL), errors.Is(err, scrape.ErrDomainNotAllowed):
		return h.fail(c, err)
	}
	// anything else went wrong upstream
	return httperr.Detail(c, http.StatusBadGateway, err.Error())
}

func (h *NewsCtrl) id(c echo.Context) uint {
	id, _ := strconv.Atoi(c.Param("id"))
	return uint(id)
}

func (h *NewsCtrl) Approve(c echo.Context) error {
	if err := h.s.Approve(c.Request().Context(), middleware.AccountID(c), h.id(c)); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *NewsCtrl) Reject(c echo.Context) error {
	if err := h.s.Reject(c.Request().Context(), middleware.AccountID(c), h.id(c)); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *NewsCtrl) Delete(c echo.Context) error {
	if err := h.s.Delete(c.Request().Context(), h.id(c)); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
