package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"alphafarm/pkg/httperr"
	"alphafarm/pkg/middleware"
	"alphafarm/pkg/plan/controller"
	"alphafarm/pkg/plan/service"
	"alphafarm/pkg/plan/types"
)

type PlanCtrl struct{ svc service.PlanService }

func NewPlanCtrl(svc service.PlanService) controller.PlanController { return &PlanCtrl{svc: svc} }

func (h *PlanCtrl) fail(c echo.Context, err error) error {
	var capErr *service.CapacityError
	switch {
	case errors.As(err, &capErr):
		return c.JSON(http.StatusBadRequest, capErr.Body())
	case errors.Is(err, service.ErrLandNotApproved):
		return httperr.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return httperr.NotFound(c)
	case errors.Is(err, service.ErrLandRequired), errors.Is(err, service.ErrInvalidLand), errors.Is(err, service.ErrBadDate):
		return httperr.BadRequest(c, err.Error())
	}
	return httperr.Internal(c, err)
}

func (h *PlanCtrl) Create(c echo.Context) error {
	var req types.CreatePlanRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(c, "bad json")
	}
	p, err := h.svc.Create(c.Request().Context(), middleware.FarmerID(c), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *PlanCtrl) List(c echo.Context) error {
	ps, err := h.svc.List(c.Request().Context(), middleware.FarmerID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, ps)
}

func (h *PlanCtrl) Get(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	p, err := h.svc.Get(c.Request().Context(), middleware.FarmerID(c), uint(id))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PlanCtrl) Delete(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := h.svc.Delete(c.Request().Context(), middleware.FarmerID(c), uint(id)); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PlanCtrl) Calendar(c echo.Context) error {
	cal, err := h.svc.Calendar(c.Request().Context(), middleware.FarmerID(c), c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"farmer_id": middleware.FarmerID(c),
		"calendar":  cal,
	})
}
