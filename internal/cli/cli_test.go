package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gopkg.in/yaml.v3"
)

func TestParseRow(t *testing.T) {
	r, err := parseRow("Ragi:1.5:2024-07-01:MR-6")
	require.NoError(t, err)
	assert.Equal(t, rowSpec{Crop: "Ragi", Acres: "1.5", Sowing: "2024-07-01", Variety: "MR-6"}, r)

	r, err = parseRow("Maize:2:2024-06-10")
	require.NoError(t, err)
	assert.Empty(t, r.Variety)

	_, err = parseRow("Maize:2")
	assert.Error(t, err)
	_, err = parseRow("Maize:two:2024-06-10")
	assert.Error(t, err)
}

// fakeAPI serves one approved 5-acre land with 1 acre already planned and
// answers every yield query with 4 quintals per acre.
type fakeAPI struct {
	submitted []map[string]any
	otpCode   string
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, code int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(v)
	}
	mux.HandleFunc("/farmer/send-otp", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]any{"success": true, "otp": f.otpCode})
	})
	mux.HandleFunc("/farmer/verify-otp", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["otp"] != f.otpCode {
			writeJSON(w, 400, map[string]string{"detail": "Invalid OTP"})
			return
		}
		writeJSON(w, 200, map[string]any{"success": true, "token": "tok-1"})
	})
	mux.HandleFunc("/farmer/land", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Token tok-1" {
			writeJSON(w, 401, map[string]string{"detail": "Invalid token."})
			return
		}
		writeJSON(w, 200, []map[string]any{{"id": 7, "land_area": 5, "soil_type": "Red", "district": "Kolar", "state": "Karnataka"}})
	})
	mux.HandleFunc("/farmer/crop-plan", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			var in map[string]any
			_ = json.NewDecoder(r.Body).Decode(&in)
			f.submitted = append(f.submitted, in)
			writeJSON(w, 201, in)
			return
		}
		writeJSON(w, 200, []map[string]any{{"id": 1, "land_id": 7, "total_acres_allocated": 1, "approval_status": "pending"}})
	})
	mux.HandleFunc("/farmer/yield-estimate", func(w http.ResponseWriter, r *http.Request) {
		var acres float64
		_ = json.Unmarshal([]byte(r.URL.Query().Get("acres")), &acres)
		writeJSON(w, 200, map[string]any{"expected_yield": acres * 4, "yield_per_acre": 4})
	})
	return mux
}

func run(t *testing.T, srv *httptest.Server, tokenFile string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := &App{Log: zaptest.NewLogger(t), Out: &out, In: strings.NewReader("")}
	cmd := NewRootCmd(app)
	cmd.SetArgs(append([]string{"--server", srv.URL, "--token-file", tokenFile, "--token", ""}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLoginSavesToken(t *testing.T) {
	api := &fakeAPI{otpCode: "1234"}
	srv := httptest.NewServer(api.handler())
	defer srv.Close()
	tokenFile := filepath.Join(t.TempDir(), "token")

	_, err := run(t, srv, tokenFile, "lands")
	assert.ErrorIs(t, err, errNotLoggedIn)

	out, err := run(t, srv, tokenFile, "login", "--phone", "9876543210")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in.")

	out, err = run(t, srv, tokenFile, "lands")
	require.NoError(t, err)
	assert.Contains(t, out, "Kolar")
	assert.Contains(t, out, "4.00")
}

func TestPlanDryRunAndSubmit(t *testing.T) {
	api := &fakeAPI{otpCode: "1234"}
	srv := httptest.NewServer(api.handler())
	defer srv.Close()
	tokenFile := filepath.Join(t.TempDir(), "token")
	_, err := run(t, srv, tokenFile, "login", "--phone", "9876543210")
	require.NoError(t, err)

	out, err := run(t, srv, tokenFile, "plan", "--land", "7", "--irrigation", "Drip",
		"--row", "Maize:2:2024-06-10", "--row", "Ragi:1:2024-07-01:MR-6", "--dry-run")
	require.NoError(t, err)
	var sum planSummary
	require.NoError(t, yaml.Unmarshal([]byte(out), &sum))
	assert.Equal(t, uint(7), sum.LandID)
	require.Len(t, sum.Rows, 2)
	assert.Equal(t, 3.0, sum.TotalAllocated)
	assert.Equal(t, 1.0, sum.Remaining)
	assert.Equal(t, 12.0, sum.TotalExpectedYield)
	assert.Equal(t, "MR-6", sum.Rows[1].SeedVariety)
	assert.Empty(t, sum.Errors)
	assert.Empty(t, api.submitted)

	out, err = run(t, srv, tokenFile, "plan", "--land", "7", "--irrigation", "Drip", "--row", "Maize:5:2024-06-10")
	assert.EqualError(t, err, "plan has errors")
	assert.Contains(t, out, "errors:")
	assert.Empty(t, api.submitted)

	out, err = run(t, srv, tokenFile, "plan", "--land", "7", "--irrigation", "Drip", "--row", "Maize:2:2024-06-10")
	require.NoError(t, err)
	assert.Contains(t, out, "submitted")
	require.Len(t, api.submitted, 1)
	assert.Equal(t, 7.0, api.submitted[0]["land_id"])
}

func TestPlanRowsBeyondCapacityAreReported(t *testing.T) {
	api := &fakeAPI{otpCode: "1234"}
	srv := httptest.NewServer(api.handler())
	defer srv.Close()
	tokenFile := filepath.Join(t.TempDir(), "token")
	_, err := run(t, srv, tokenFile, "login", "--phone", "9876543210")
	require.NoError(t, err)

	// 4 acres free: the first row fills it, the second cannot be added
	out, err := run(t, srv, tokenFile, "plan", "--land", "7", "--irrigation", "Drip",
		"--row", "Maize:4:2024-06-10", "--row", "Ragi:1:2024-07-01")
	assert.ErrorIs(t, err, errPlanInvalid)
	assert.Empty(t, api.submitted)

	var sum planSummary
	require.NoError(t, yaml.Unmarshal([]byte(out), &sum))
	assert.Contains(t, sum.Errors["total"], "no room for row 2 (Ragi)")
	require.Len(t, sum.Rows, 1)
	assert.Equal(t, 4.0, sum.TotalAllocated)
}
