package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"alphafarm/pkg/admin/controller"
	"alphafarm/pkg/admin/service"
	"alphafarm/pkg/httperr"
	"alphafarm/pkg/middleware"
	planservice "alphafarm/pkg/plan/service"
)

type AdminCtrl struct{ svc service.AdminService }

func New(svc service.AdminService) controller.AdminController { return &AdminCtrl{svc} }

func (h *AdminCtrl) fail(c echo.Context, err error) error {
	var capErr *planservice.CapacityError
	switch {
	case errors.As(err, &capErr):
		return c.JSON(http.StatusBadRequest, capErr.Body())
	case errors.Is(err, service.ErrLandNotFound), errors.Is(err, service.ErrPlanNotFound):
		return httperr.Detail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidStatus):
		return httperr.BadRequest(c, err.Error())
	}
	return httperr.Internal(c, err)
}

func (h *AdminCtrl) Dashboard(c echo.Context) error {
	d, err := h.svc.Dashboard(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *AdminCtrl) Lands(c echo.Context) error {
	rows, err := h.svc.Lands(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *AdminCtrl) decision(c echo.Context) (uint, service.Decision, error) {
	var d service.Decision
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, d, errors.New("invalid id")
	}
	if err := c.Bind(&d); err != nil {
		return 0, d, errors.New("bad json")
	}
	return uint(id), d, nil
}

func (h *AdminCtrl) DecideLand(c echo.Context) error {
	id, d, err := h.decision(c)
	if err != nil {
		return httperr.BadRequest(c, err.Error())
	}
	res, err := h.svc.DecideLand(c.Request().Context(), middleware.AccountID(c), id, d)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *AdminCtrl) CropPlans(c echo.Context) error {
	rows, err := h.svc.CropPlans(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *AdminCtrl) DecidePlan(c echo.Context) error {
	id, d, err := h.decision(c)
	if err != nil {
		return httperr.BadRequest(c, err.Error())
	}
	res, err := h.svc.DecidePlan(c.Request().Context(), middleware.AccountID(c), id, d)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
