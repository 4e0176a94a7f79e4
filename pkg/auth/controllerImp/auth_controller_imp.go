package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"alphafarm/pkg/auth/controller"
	"alphafarm/pkg/auth/service"
	"alphafarm/pkg/httperr"
	"alphafarm/pkg/middleware"
)

type authCtrl struct{ s service.AuthService }

func NewAuthController(s service.AuthService) controller.AuthController { return &authCtrl{s} }

type otpReq struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
	Name  string `json:"name"`
	Mode  string `json:"mode"`
}

func status(err error) int {
	switch {
	case errors.Is(err, service.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotAdmin):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidPhone), errors.Is(err, service.ErrInvalidMode),
		errors.Is(err, service.ErrAccountExists), errors.Is(err, service.ErrMissingOTP),
		errors.Is(err, service.ErrInvalidOTP):
		return http.StatusBadRequest
	}
	return 0
}

func (h *authCtrl) fail(c echo.Context, err error) error {
	if code := status(err); code != 0 {
		return httperr.Detail(c, code, err.Error())
	}
	return httperr.Internal(c, err)
}

func (h *authCtrl) SendOTP(c echo.Context) error {
	var req otpReq
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(c, "bad json")
	}
	code, err := h.s.SendOTP(c.Request().Context(), req.Phone, req.Mode)
	if err != nil {
		return h.fail(c, err)
	}
	resp := map[string]any{"success": true}
	if code != "" {
		resp["otp"] = code
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *authCtrl) VerifyOTP(c echo.Context) error {
	var req otpReq
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(c, "bad json")
	}
	sess, err := h.s.VerifyOTP(c.Request().Context(), req.Phone, req.OTP, req.Name, req.Mode)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "token": sess.Token, "user": sess.User})
}

func (h *authCtrl) CancelSignup(c echo.Context) error {
	if err := h.s.CancelSignup(c.Request().Context(), middleware.AccountID(c)); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *authCtrl) AdminLogin(c echo.Context) error {
	var req struct {
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(c, "bad json")
	}
	sess, err := h.s.AdminLogin(c.Request().Context(), req.Phone, req.Password)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Login successful",
		"token":   sess.Token,
		"user":    sess.User,
	})
}

func (h *authCtrl) WhoAmI(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"account_id": middleware.AccountID(c),
		"farmer_id":  middleware.FarmerID(c),
		"role":       middleware.Role(c),
	})
}
