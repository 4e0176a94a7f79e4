package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersExposed(t *testing.T) {
	m := New()
	m.YieldEstimates.WithLabelValues("table").Inc()
	m.Decisions.WithLabelValues("land", "approved").Add(2)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Decisions.WithLabelValues("land", "approved")))

	e := echo.New()
	e.GET("/metrics", m.Handler())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `alphafarm_yield_estimates_total{source="table"} 1`)
}
