package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lentera-edu/timetable-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation for the API and the
// allocation runs it performs.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	runDuration     prometheus.Histogram
	runTotal        prometheus.Counter
	entryTotal      *prometheus.CounterVec
	fallbackTotal   prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
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

	runDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timetable_run_duration_seconds",
		Help:    "Duration of allocation runs",
		Buckets: prometheus.DefBuckets,
	})

	runTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_runs_total",
		Help: "Total allocation runs performed",
	})

	entryTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_entries_total",
		Help: "Schedule entries produced, by status",
	}, []string{"status"})

	fallbackTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_fallback_total",
		Help: "Sections that fell back to an online placement",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, runDuration, runTotal, entryTotal, fallbackTotal, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		runDuration:     runDuration,
		runTotal:        runTotal,
		entryTotal:      entryTotal,
		fallbackTotal:   fallbackTotal,
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

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveRun records the outcome of one allocation run.
func (m *MetricsService) ObserveRun(duration time.Duration, stats models.RunStats) {
	if m == nil {
		return
	}
	m.runDuration.Observe(duration.Seconds())
	m.runTotal.Inc()
	m.entryTotal.WithLabelValues(string(models.StatusScheduled)).Add(float64(stats.Scheduled))
	m.entryTotal.WithLabelValues(string(models.StatusOnline)).Add(float64(stats.Online + stats.Fallback))
	m.fallbackTotal.Add(float64(stats.Fallback))
}
