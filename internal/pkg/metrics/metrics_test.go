package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gather(t *testing.T, reg *prometheus.Registry, name string) []*dto.Metric {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return mf.GetMetric()
		}
	}
	return nil
}

func TestCollector_DomainCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordClockIn("Retard")
	c.RecordClockIn("Retard")
	c.RecordClockIn("Présent")
	c.RecordPaymentPaid(270000)
	c.RecordDailySheet(0)
	c.RecordDailySheet(4)

	clockIns := gather(t, reg, "sgrh_attendance_clock_in_total")
	require.Len(t, clockIns, 2)

	paid := gather(t, reg, "sgrh_payroll_paid_amount_total")
	require.Len(t, paid, 1)
	assert.Equal(t, 270000.0, paid[0].GetCounter().GetValue())

	absent := gather(t, reg, "sgrh_attendance_absent_created_total")
	require.Len(t, absent, 1)
	assert.Equal(t, 4.0, absent[0].GetCounter().GetValue())
}

func TestCollector_MiddlewareUsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	r := chi.NewRouter()
	r.Use(c.Middleware)
	r.Get("/api/Users/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/Users/abc", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/Users/def", nil))

	requests := gather(t, reg, "sgrh_http_requests_total")
	require.Len(t, requests, 1)
	assert.Equal(t, 2.0, requests[0].GetCounter().GetValue())

	labels := map[string]string{}
	for _, l := range requests[0].GetLabel() {
		labels[l.GetName()] = l.GetValue()
	}
	assert.Equal(t, "/api/Users/{id}", labels["route"])
	assert.Equal(t, "404", labels["status"])
}

func TestHandler_ServesScrape(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordApplication()

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "sgrh_recruitment_applications_total 1"))
}
