// Package main runs the webdesk server.
//
// The server keeps the desktop state (registered apps and open windows)
// and serves it to browser views over a WebSocket stream at /stream,
// alongside a REST API under /api.
//
// Configuration:
//   - Environment variables (see internal/infrastructure/config)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	./server -port 8000 -apps ./apps -options ./options.yaml
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
