package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics.
// Every method is safe on a nil receiver so components can run unmetered.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Window metrics
	WindowsOpen   prometheus.Gauge
	WindowsOpened prometheus.Counter
	WindowOps     *prometheus.CounterVec

	// Registry metrics
	RegistryApps prometheus.Gauge

	// Hook metrics
	HookRuns     *prometheus.CounterVec
	HookDuration prometheus.Histogram

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot

	mu sync.RWMutex
}

// MetricsSnapshot holds current metric values for JSON API
type MetricsSnapshot struct {
	TotalRequests     int64   `json:"total_requests"`
	TotalErrors       int64   `json:"total_errors"`
	OpenWindows       int64   `json:"open_windows"`
	ActiveConnections int64   `json:"active_connections"`
	AverageLatencyMs  float64 `json:"average_latency_ms"`
	UptimeSeconds     float64 `json:"uptime_seconds"`

	totalDuration float64
}

// NewMetrics creates a metrics collector on its own registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webdesk_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webdesk_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),

		// Window metrics
		WindowsOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "webdesk_windows_open",
				Help: "Number of open windows",
			},
		),
		WindowsOpened: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "webdesk_windows_opened_total",
				Help: "Total number of windows opened",
			},
		),
		WindowOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_window_operations_total",
				Help: "Total number of window operations by kind",
			},
			[]string{"op"},
		),

		// Registry metrics
		RegistryApps: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "webdesk_registry_apps",
				Help: "Number of apps in registry",
			},
		),

		// Hook metrics
		HookRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_hook_runs_total",
				Help: "Total number of scripted hook runs by outcome",
			},
			[]string{"status"},
		),
		HookDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "webdesk_hook_duration_seconds",
				Help:    "Scripted hook duration in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 2},
			},
		),

		// WebSocket metrics
		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "webdesk_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "webdesk_uptime_seconds",
			Help: "Process uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, respSize int64) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.totalDuration += duration.Seconds()
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordWindowOp counts one window operation.
func (m *Metrics) RecordWindowOp(op string) {
	if m == nil {
		return
	}
	m.WindowOps.WithLabelValues(op).Inc()
}

// IncWindowsOpened counts a newly opened window.
func (m *Metrics) IncWindowsOpened() {
	if m == nil {
		return
	}
	m.WindowsOpened.Inc()
}

// SetWindowsOpen sets the number of open windows
func (m *Metrics) SetWindowsOpen(count int) {
	if m == nil {
		return
	}
	m.WindowsOpen.Set(float64(count))
	m.mu.Lock()
	m.snapshot.OpenWindows = int64(count)
	m.mu.Unlock()
}

// SetRegistryApps sets the number of apps in registry
func (m *Metrics) SetRegistryApps(count int) {
	if m == nil {
		return
	}
	m.RegistryApps.Set(float64(count))
}

// RecordHookRun records a scripted hook execution.
func (m *Metrics) RecordHookRun(status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.HookRuns.WithLabelValues(status).Inc()
	m.HookDuration.Observe(duration.Seconds())
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	if m == nil {
		return
	}
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	if m == nil {
		return
	}
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.ActiveConnections++
	m.mu.Unlock()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	if m == nil {
		return
	}
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.ActiveConnections--
	m.mu.Unlock()
}

// Snapshot returns current values for the JSON stats endpoint.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := m.snapshot
	if snap.TotalRequests > 0 {
		snap.AverageLatencyMs = snap.totalDuration / float64(snap.TotalRequests) * 1000
	}
	snap.UptimeSeconds = time.Since(m.startTime).Seconds()
	return snap
}
