package controllerImp

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"alphafarm/pkg/httperr"
	"alphafarm/pkg/location/controller"
	"alphafarm/pkg/location/lookup"
	"alphafarm/pkg/location/repository"
)

// Resolver is satisfied by *lookup.Client.
type Resolver interface {
	Pincode(ctx context.Context, pin string) (*lookup.Pincode, error)
	Reverse(ctx context.Context, lat, lng float64) (*lookup.Address, error)
}

type LocationCtrl struct {
	repo repository.LocationRepository
	res  Resolver
	log  *zap.Logger
}

func New(repo repository.LocationRepository, res Resolver, log *zap.Logger) controller.LocationController {
	return &LocationCtrl{repo: repo, res: res, log: log}
}

func parentID(c echo.Context, name string) uint {
	id, _ := strconv.ParseUint(c.QueryParam(name), 10, 64)
	return uint(id)
}

func (h *LocationCtrl) States(c echo.Context) error {
	out, err := h.repo.States(c.Request().Context())
	if err != nil {
		return httperr.Internal(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LocationCtrl) Districts(c echo.Context) error {
	out, err := h.repo.Districts(c.Request().Context(), parentID(c, "state"))
	if err != nil {
		return httperr.Internal(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LocationCtrl) Villages(c echo.Context) error {
	out, err := h.repo.Villages(c.Request().Context(), parentID(c, "district"))
	if err != nil {
		return httperr.Internal(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LocationCtrl) PincodeLookup(c echo.Context) error {
	pin := strings.TrimSpace(c.QueryParam("pincode"))
	if !lookup.ValidPincode(pin) {
		return httperr.BadRequest(c, "Valid 6-digit pincode required")
	}
	p, err := h.res.Pincode(c.Request().Context(), pin)
	if errors.Is(err, lookup.ErrNotFound) {
		return httperr.Detail(c, http.StatusNotFound, err.Error())
	}
	if err != nil {
		h.log.Warn("pincode lookup failed", zap.String("pincode", pin), zap.Error(err))
		return httperr.Detail(c, http.StatusBadGateway, "Lookup failed")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *LocationCtrl) ReverseGeocode(c echo.Context) error {
	lat, errLat := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if errLat != nil || errLng != nil {
		return httperr.BadRequest(c, "lat and lng required")
	}
	addr, err := h.res.Reverse(c.Request().Context(), lat, lng)
	if err != nil {
		h.log.Warn("reverse geocode failed", zap.Float64("lat", lat), zap.Float64("lng", lng), zap.Error(err))
		return httperr.Detail(c, http.StatusBadGateway, "Location lookup failed")
	}
	return c.JSON(http.StatusOK, addr)
}
