/*
Package monitoring provides Prometheus metrics for the desktop server.

# Overview

Each Metrics value owns a private registry, so several desktops (or tests)
can live in one process without duplicate registration panics.

# Metrics

  - HTTP requests (count, latency, response size) labelled by route
  - Open windows, windows opened, window operations by kind
  - Registered apps
  - Scripted hook runs and duration
  - WebSocket connections and messages

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	store := window.NewStore(reg, oracle, port).WithMetrics(metrics)
*/
package monitoring
