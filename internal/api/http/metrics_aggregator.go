package http

import (
	"net/http"
	"time"

	"github.com/GriffinCanCode/webdesk/internal/domain/registry"
	"github.com/GriffinCanCode/webdesk/internal/domain/window"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/webdesk/internal/shared/types"
	"github.com/gin-gonic/gin"
)

// MetricsAggregator joins request metrics with desktop state
type MetricsAggregator struct {
	metrics  *monitoring.Metrics
	registry *registry.Registry
	store    *window.Store
}

// NewMetricsAggregator creates a metrics aggregator
func NewMetricsAggregator(metrics *monitoring.Metrics, registry *registry.Registry, store *window.Store) *MetricsAggregator {
	return &MetricsAggregator{
		metrics:  metrics,
		registry: registry,
		store:    store,
	}
}

// MetricsSnapshot represents a snapshot of all desktop metrics
type MetricsSnapshot struct {
	Timestamp time.Time                  `json:"timestamp"`
	Server    monitoring.MetricsSnapshot `json:"server"`
	Windows   types.WindowStats          `json:"windows"`
	Registry  types.RegistryStats        `json:"registry"`
	Summary   MetricsSummary             `json:"summary"`
}

// MetricsSummary provides high-level metrics
type MetricsSummary struct {
	TotalRequests     int64   `json:"total_requests"`
	AverageLatencyMs  float64 `json:"average_latency_ms"`
	ErrorRate         float64 `json:"error_rate"`
	ActiveConnections int64   `json:"active_connections"`
	UptimeSeconds     float64 `json:"uptime_seconds"`
}

// GetAggregatedMetrics returns the combined snapshot
func (ma *MetricsAggregator) GetAggregatedMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, ma.Snapshot())
}

// Snapshot collects the current values
func (ma *MetricsAggregator) Snapshot() MetricsSnapshot {
	server := ma.metrics.Snapshot()
	return MetricsSnapshot{
		Timestamp: time.Now(),
		Server:    server,
		Windows:   ma.store.Stats(),
		Registry:  ma.registry.Stats(),
		Summary:   summarize(server),
	}
}

// summarize derives the summary block from server metrics
func summarize(s monitoring.MetricsSnapshot) MetricsSummary {
	summary := MetricsSummary{
		TotalRequests:     s.TotalRequests,
		AverageLatencyMs:  s.AverageLatencyMs,
		ActiveConnections: s.ActiveConnections,
		UptimeSeconds:     s.UptimeSeconds,
	}
	if s.TotalRequests > 0 {
		summary.ErrorRate = float64(s.TotalErrors) / float64(s.TotalRequests)
	}
	return summary
}
