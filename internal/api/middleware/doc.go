// Package middleware provides HTTP middleware for the desktop server.
//
// Middleware stack includes:
//   - CORS: Cross-origin resource sharing with configurable origins
//   - RateLimit: Per-IP token bucket rate limiting
//   - Compress: gzip for REST responses, bypassed for the stream endpoint
//
// Rate Limiting:
//   - Per-IP tracking with idle cleanup
//   - Token bucket algorithm
//   - Configurable RPS and burst capacity
//   - Skipped prefixes for long-lived and health check endpoints
//
// Example Usage:
//
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig("http://localhost:3000")))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
//	handler, err := middleware.Compress(router, "/stream")
package middleware
