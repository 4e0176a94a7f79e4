package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"alphafarm/entities"
	"alphafarm/pkg/auth/token"
)

const (
	keyAccountID = "account_id"
	keyFarmerID  = "farmer_id"
	keyRole      = "role"
)

type Verifier interface {
	Verify(raw string) (*token.Claims, error)
}

// extractToken accepts "Bearer x", "Token x" or a raw token.
func extractToken(h string) string {
	h = strings.TrimSpace(h)
	for _, p := range []string{"Bearer ", "Token "} {
		if len(h) > len(p) && strings.EqualFold(h[:len(p)], p) {
			return strings.TrimSpace(h[len(p):])
		}
	}
	return h
}

func setIdentity(c echo.Context, accountID, farmerID uint, role string) {
	c.Set(keyAccountID, accountID)
	c.Set(keyFarmerID, farmerID)
	c.Set(keyRole, role)
}

// TokenAuth requires a valid token unless an earlier middleware already
// resolved the caller.
func TokenAuth(v Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if AccountID(c) != 0 {
				return next(c)
			}
			raw := extractToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"detail": "Authentication credentials were not provided."})
			}
			claims, err := v.Verify(raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"detail": "Invalid token."})
			}
			setIdentity(c, claims.AccountID, claims.FarmerID, claims.Role)
			return next(c)
		}
	}
}

// RequireRole rejects callers whose token carries another role.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if Role(c) != role {
				return c.JSON(http.StatusForbidden, map[string]string{"detail": "Not " + role})
			}
			return next(c)
		}
	}
}

// RequireFarmer admits only farmer tokens that carry a farmer profile id.
func RequireFarmer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if Role(c) != entities.RoleFarmer || FarmerID(c) == 0 {
				return c.JSON(http.StatusForbidden, map[string]string{"detail": "Not farmer"})
			}
			return next(c)
		}
	}
}

func AccountID(c echo.Context) uint {
	v, _ := c.Get(keyAccountID).(uint)
	return v
}

func FarmerID(c echo.Context) uint {
	v, _ := c.Get(keyFarmerID).(uint)
	return v
}

func Role(c echo.Context) string {
	v, _ := c.Get(keyRole).(string)
	return v
}
