package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alphafarm/internal/testutil"
	"alphafarm/pkg/auth/otp"
	repoImp "alphafarm/pkg/auth/repositoryImp"
	svcImp "alphafarm/pkg/auth/serviceImp"
	"alphafarm/pkg/auth/token"
	"alphafarm/pkg/middleware"
)

func setup(t *testing.T) *echo.Echo {
	t.Helper()
	db := testutil.NewTestDB(t)
	testutil.SeedFarmer(t, db, "9876543210", "Ravi")
	tokens := token.NewService("secret", time.Hour)
	svc := svcImp.NewAuthService(repoImp.New(db), otp.NewGormStore(db), tokens, svcImp.Options{OTPDevCode: "1234"}, zap.NewNop())
	h := NewAuthController(svc)

	e := echo.New()
	e.POST("/farmer/send-otp", h.SendOTP)
	e.POST("/farmer/verify-otp", h.VerifyOTP)
	e.GET("/whoami", h.WhoAmI, middleware.TokenAuth(tokens))
	return e
}

func post(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSendOTPStatuses(t *testing.T) {
	e := setup(t)

	rec := post(e, "/farmer/send-otp", `{"phone":"123","mode":"login"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"Valid 10-digit phone number is required"}`, rec.Body.String())

	rec = post(e, "/farmer/send-otp", `{"phone":"9999999999","mode":"login"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = post(e, "/farmer/send-otp", `{"phone":"9876543210","mode":"signup"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(e, "/farmer/send-otp", `{"phone":"9876543210","mode":"login"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"otp":"1234"}`, rec.Body.String())
}

func TestVerifyOTPIssuesUsableToken(t *testing.T) {
	e := setup(t)
	require.Equal(t, http.StatusOK, post(e, "/farmer/send-otp", `{"phone":"9876543210"}`).Code)

	rec := post(e, "/farmer/verify-otp", `{"phone":"9876543210","otp":"1234"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	require.NoError(t, jsonDecode(rec, &body))
	assert.True(t, body.Success)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(echo.HeaderAuthorization, "Token "+body.Token)
	who := httptest.NewRecorder()
	e.ServeHTTP(who, req)
	require.Equal(t, http.StatusOK, who.Code)
	assert.Contains(t, who.Body.String(), `"role":"farmer"`)
}

func jsonDecode(rec *httptest.ResponseRecorder, v any) error {
	return json.Unmarshal(rec.Body.Bytes(), v)
}
