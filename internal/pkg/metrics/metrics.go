// Package metrics exposes Prometheus counters for HTTP traffic and HR events.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the subset of the collector used by services.
type Recorder interface {
	RecordClockIn(statut string)
	RecordLeaveDecision(decision string)
	RecordPaymentPaid(amount float64)
	RecordApplication()
	RecordDailySheet(created int64)
}

type Collector struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	clockIns     *prometheus.CounterVec
	leaveDecided *prometheus.CounterVec
	paymentsPaid prometheus.Counter
	payrollPaid  prometheus.Counter
	applications prometheus.Counter
	absentMarked prometheus.Counter
}

// NewCollector creates the collectors and registers them on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sgrh_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sgrh_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		clockIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sgrh_attendance_clock_in_total",
			Help: "Recorded arrivals by resulting status",
		}, []string{"statut"}),
		leaveDecided: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sgrh_leave_decisions_total",
			Help: "Processed leave requests by decision",
		}, []string{"decision"}),
		paymentsPaid: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sgrh_payroll_payments_paid_total",
			Help: "Payments marked as paid",
		}),
		payrollPaid: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sgrh_payroll_paid_amount_total",
			Help: "Sum of net salaries marked as paid",
		}),
		applications: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sgrh_recruitment_applications_total",
			Help: "Applications received on job offers",
		}),
		absentMarked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sgrh_attendance_absent_created_total",
			Help: "Absent records created by the daily sheet",
		}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.clockIns,
		c.leaveDecided,
		c.paymentsPaid,
		c.payrollPaid,
		c.applications,
		c.absentMarked,
	)

	return c
}

func (c *Collector) RecordClockIn(statut string) {
	c.clockIns.WithLabelValues(statut).Inc()
}

func (c *Collector) RecordLeaveDecision(decision string) {
	c.leaveDecided.WithLabelValues(decision).Inc()
}

func (c *Collector) RecordPaymentPaid(amount float64) {
	c.paymentsPaid.Inc()
	if amount > 0 {
		c.payrollPaid.Add(amount)
	}
}

func (c *Collector) RecordApplication() {
	c.applications.Inc()
}

func (c *Collector) RecordDailySheet(created int64) {
	if created > 0 {
		c.absentMarked.Add(float64(created))
	}
}

// Middleware records request count and latency labelled by the chi route pattern.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		c.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		c.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Handler returns the scrape endpoint for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
