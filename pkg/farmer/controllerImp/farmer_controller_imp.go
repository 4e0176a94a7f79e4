package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"alphafarm/pkg/farmer/controller"
	"alphafarm/pkg/farmer/service"
	"alphafarm/pkg/httperr"
	"alphafarm/pkg/middleware"
)

type FarmerCtrl struct{ svc service.FarmerService }

func New(svc service.FarmerService) controller.FarmerController { return &FarmerCtrl{svc} }

func (h *FarmerCtrl) fail(c echo.Context, err error) error {
	if errors.Is(err, service.ErrNotFound) {
		return httperr.Detail(c, http.StatusNotFound, err.Error())
	}
	return httperr.Internal(c, err)
}

func (h *FarmerCtrl) Profile(c echo.Context) error {
	p, err := h.svc.Profile(c.Request().Context(), middleware.FarmerID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *FarmerCtrl) UpdateProfile(c echo.Context) error {
	var in service.ProfileInput
	if err := c.Bind(&in); err != nil {
		return httperr.BadRequest(c, "bad json")
	}
	if in.LandArea != nil && *in.LandArea < 0 {
		return httperr.BadRequest(c, "land_area must not be negative")
	}
	f, err := h.svc.Update(c.Request().Context(), middleware.FarmerID(c), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"farmer": f})
}

func (h *FarmerCtrl) Recommendations(c echo.Context) error {
	r, err := h.svc.Recommendations(c.Request().Context(), middleware.FarmerID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, r)
}
