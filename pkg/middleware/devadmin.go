package middleware

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"alphafarm/entities"
)

// DevAdminFallback lets local admin tooling work without logging in: when
// enabled and the request has no Authorization header, the first admin
// account is used.
func DevAdminFallback(enabled bool, firstAdmin func(context.Context) (*entities.Account, error), log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !enabled || c.Request().Header.Get(echo.HeaderAuthorization) != "" {
				return next(c) // bypass in production
			}
			acc, err := firstAdmin(c.Request().Context())
			if err != nil {
				log.Debug("dev admin fallback unavailable", zap.Error(err))
				return next(c)
			}
			setIdentity(c, acc.AccountID, 0, entities.RoleAdmin)
			return next(c)
		}
	}
}
