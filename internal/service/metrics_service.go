package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the portal.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	sweepDeleted    *prometheus.CounterVec
	sweepRuns       *prometheus.CounterVec
	dispatchTotal   *prometheus.CounterVec
}

// NewMetricsService registers the portal's Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	sweepDeleted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "expiry_sweep_deleted_total",
		Help: "Records hard-deleted by the expiry sweep",
	}, []string{"entity"})

	sweepRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "expiry_sweep_runs_total",
		Help: "Expiry sweep invocations",
	}, []string{"entity"})

	dispatchTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "meeting_notifications_total",
		Help: "Meeting notification dispatch outcomes",
	}, []string{"outcome"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, sweepDeleted, sweepRuns, dispatchTotal, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		sweepDeleted:    sweepDeleted,
		sweepRuns:       sweepRuns,
		dispatchTotal:   dispatchTotal,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records one handled request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveExpirySweep records one sweep run and its deletions.
func (m *MetricsService) ObserveExpirySweep(entity string, deleted int64) {
	if m == nil {
		return
	}
	m.sweepRuns.WithLabelValues(entity).Inc()
	if deleted > 0 {
		m.sweepDeleted.WithLabelValues(entity).Add(float64(deleted))
	}
}

// ObserveDispatch records a notification dispatch outcome.
func (m *MetricsService) ObserveDispatch(ok bool) {
	if m == nil {
		return
	}
	outcome := "failure"
	if ok {
		outcome = "success"
	}
	m.dispatchTotal.WithLabelValues(outcome).Inc()
}
