package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"alphafarm/pkg/httperr"
	"alphafarm/pkg/land/controller"
	"alphafarm/pkg/land/service"
	"alphafarm/pkg/middleware"
)

type LandCtrl struct{ s service.LandService }

func New(s service.LandService) controller.LandController { return &LandCtrl{s} }

func (h *LandCtrl) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return httperr.NotFound(c)
	case errors.Is(err, service.ErrInvalidArea):
		return httperr.BadRequest(c, err.Error())
	}
	return httperr.Internal(c, err)
}

func (h *LandCtrl) List(c echo.Context) error {
	only := c.QueryParam("only_approved")
	onlyApproved := only == "1" || only == "true" || only == "True"
	ls, err := h.s.List(c.Request().Context(), middleware.FarmerID(c), onlyApproved)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, ls)
}

func (h *LandCtrl) Create(c echo.Context) error {
	var in service.LandInput
	if err := c.Bind(&in); err != nil {
		return httperr.BadRequest(c, "bad json")
	}
	l, err := h.s.Create(c.Request().Context(), middleware.FarmerID(c), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, l)
}

func (h *LandCtrl) Get(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	l, err := h.s.Get(c.Request().Context(), middleware.FarmerID(c), uint(id))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *LandCtrl) Update(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	var in service.LandInput
	if err := c.Bind(&in); err != nil {
		return httperr.BadRequest(c, "bad json")
	}
	l, err := h.s.Update(c.Request().Context(), middleware.FarmerID(c), uint(id), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *LandCtrl) Delete(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := h.s.Delete(c.Request().Context(), middleware.FarmerID(c), uint(id)); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
