package testutil

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"alphafarm/pkg/auth/token"
	"alphafarm/pkg/httperr"
)

// Tokens is the token service shared by handler tests.
var Tokens = token.NewService("test-secret", time.Hour)

// NewEcho returns an echo instance configured like the server.
func NewEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = httperr.Handler
	return e
}

func AuthHeader(t testing.TB, accountID, farmerID uint, role string) string {
	t.Helper()
	raw, err := Tokens.Issue(accountID, farmerID, role)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return "Token " + raw
}

// Do sends a request with an optional JSON body and Authorization header.
func Do(e *echo.Echo, method, path, auth, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// DecodeJSON unmarshals a recorder body or fails the test.
func DecodeJSON(t testing.TB, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %d %q: %v", rec.Code, rec.Body.String(), err)
	}
}

