// Package http provides HTTP handlers and routing for the desktop REST API.
//
// Endpoints:
//   - Health: / and /health
//   - Options: /api/options
//   - Apps: /api/launcher, /api/apps, /api/apps/:packageId{,/launch,/open}
//   - Windows: /api/windows, /api/windows/:id and its actions
//     (activate, move, resize, maximize, minimize, dock, children)
//   - Logs: /api/logs (desktop view log forwarding)
//
// Domain errors map to status codes: unknown app or window is 404,
// duplicate registration is 409, anything else is 400. Window actions on
// a window that is not open answer 200 with success=false.
//
// Example Usage:
//
//	handlers := http.NewHandlers(registry, store, options, logger)
//	http.RegisterRoutes(router, handlers)
package http
