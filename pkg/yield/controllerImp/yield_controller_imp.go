package controllerImp

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/labstack/echo/v4"

	"alphafarm/pkg/httperr"
	"alphafarm/pkg/yield/controller"
	"alphafarm/pkg/yield/service"
)

type YieldCtrl struct{ s service.YieldService }

func New(s service.YieldService) controller.YieldController { return &YieldCtrl{s} }

func (h *YieldCtrl) Estimate(c echo.Context) error {
	// unparseable acres count as 0 and fail validation
	acres, _ := strconv.ParseFloat(c.QueryParam("acres"), 64)
	est, err := h.s.Estimate(c.Request().Context(), service.Query{
		Crop:           c.QueryParam("crop"),
		Acres:          acres,
		SoilType:       c.QueryParam("soil_type"),
		Season:         c.QueryParam("season"),
		IrrigationType: c.QueryParam("irrigation_type"),
		District:       c.QueryParam("district"),
		State:          c.QueryParam("state"),
	})
	if errors.Is(err, service.ErrBadQuery) {
		return httperr.BadRequest(c, err.Error())
	}
	if err != nil {
		return httperr.Internal(c, err)
	}
	return c.JSON(http.StatusOK, est)
}

func (h *YieldCtrl) Configs(c echo.Context) error {
	rows, err := h.s.Configs(c.Request().Context())
	if err != nil {
		return httperr.Internal(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// Import takes a multipart "file" field holding an .xlsx or .csv sheet.
func (h *YieldCtrl) Import(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return httperr.BadRequest(c, "file required")
	}
	f, err := fh.Open()
	if err != nil {
		return httperr.Internal(c, err)
	}
	defer f.Close()

	n, err := h.s.Import(c.Request().Context(), f, filepath.Ext(fh.Filename))
	if err != nil {
		return httperr.BadRequest(c, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]int{"imported": n})
}
