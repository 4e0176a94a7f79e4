package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alphafarm/entities"
	"alphafarm/pkg/auth/token"
)

func whoami(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"account_id": AccountID(c), "farmer_id": FarmerID(c), "role": Role(c)})
}

func do(e *echo.Echo, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestExtractToken(t *testing.T) {
	assert.Equal(t, "abc", extractToken("Bearer abc"))
	assert.Equal(t, "abc", extractToken("token abc"))
	assert.Equal(t, "abc", extractToken("  abc "))
	assert.Equal(t, "", extractToken(""))
}

func TestTokenAuth(t *testing.T) {
	tokens := token.NewService("secret", time.Hour)
	e := echo.New()
	e.GET("/me", whoami, TokenAuth(tokens))

	raw, err := tokens.Issue(3, 8, entities.RoleFarmer)
	require.NoError(t, err)

	for _, h := range []string{"Bearer " + raw, "Token " + raw, raw} {
		rec := do(e, h)
		require.Equal(t, http.StatusOK, rec.Code, h)
		assert.JSONEq(t, `{"account_id":3,"farmer_id":8,"role":"farmer"}`, rec.Body.String())
	}

	assert.Equal(t, http.StatusUnauthorized, do(e, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, "Token nope").Code)
}

func TestRequireRole(t *testing.T) {
	tokens := token.NewService("secret", time.Hour)
	e := echo.New()
	e.GET("/me", whoami, TokenAuth(tokens), RequireRole(entities.RoleAdmin))

	farmer, _ := tokens.Issue(3, 8, entities.RoleFarmer)
	admin, _ := tokens.Issue(1, 0, entities.RoleAdmin)
	assert.Equal(t, http.StatusForbidden, do(e, "Token "+farmer).Code)
	assert.Equal(t, http.StatusOK, do(e, "Token "+admin).Code)
}

func TestRequireFarmer(t *testing.T) {
	tokens := token.NewService("secret", time.Hour)
	e := echo.New()
	e.GET("/me", whoami, TokenAuth(tokens), RequireFarmer())

	farmer, _ := tokens.Issue(3, 8, entities.RoleFarmer)
	admin, _ := tokens.Issue(1, 0, entities.RoleAdmin)
	orphan, _ := tokens.Issue(4, 0, entities.RoleFarmer)
	assert.Equal(t, http.StatusOK, do(e, "Token "+farmer).Code)
	assert.Equal(t, http.StatusForbidden, do(e, "Token "+admin).Code)
	assert.Equal(t, http.StatusForbidden, do(e, "Token "+orphan).Code)
}

func TestDevAdminFallback(t *testing.T) {
	tokens := token.NewService("secret", time.Hour)
	first := func(context.Context) (*entities.Account, error) {
		return &entities.Account{AccountID: 42, Role: entities.RoleAdmin}, nil
	}
	none := func(context.Context) (*entities.Account, error) { return nil, errors.New("no admin") }

	on := echo.New()
	on.GET("/me", whoami, DevAdminFallback(true, first, zap.NewNop()), TokenAuth(tokens), RequireRole(entities.RoleAdmin))
	rec := do(on, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"account_id":42,"farmer_id":0,"role":"admin"}`, rec.Body.String())

	off := echo.New()
	off.GET("/me", whoami, DevAdminFallback(false, first, zap.NewNop()), TokenAuth(tokens))
	assert.Equal(t, http.StatusUnauthorized, do(off, "").Code)

	missing := echo.New()
	missing.GET("/me", whoami, DevAdminFallback(true, none, zap.NewNop()), TokenAuth(tokens))
	assert.Equal(t, http.StatusUnauthorized, do(missing, "").Code)
}
