package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// desk returns a router answering 200 on every path behind mw
func desk(mw gin.HandlerFunc, paths ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(mw)
	for _, path := range paths {
		router.Any(path, func(c *gin.Context) {
			c.Header("X-Trace-ID", "req_1")
			c.Status(http.StatusOK)
		})
	}
	return router
}

// serve sends one request from addr with an optional Origin header
func serve(router http.Handler, method, path, addr, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = addr
	if origin != "" {
		req.Header.Set("Origin", origin)
		if method == http.MethodOptions {
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCORS(t *testing.T) {
	const view = "http://localhost:3000"

	tests := []struct {
		name       string
		origins    []string
		method     string
		origin     string
		wantStatus int
		wantAllow  string
	}{
		{"any origin", nil, http.MethodPost, view, http.StatusOK, "*"},
		{"any origin preflight", nil, http.MethodOptions, view, http.StatusNoContent, "*"},
		{"same origin", nil, http.MethodPost, "", http.StatusOK, ""},
		{"listed origin", []string{"http://desk.local"}, http.MethodPost, "http://desk.local", http.StatusOK, "http://desk.local"},
		{"unlisted origin", []string{"http://desk.local"}, http.MethodPost, view, http.StatusForbidden, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := desk(CORS(DefaultCORSConfig(tt.origins...)), "/api/windows/:id/maximize")
			w := serve(router, tt.method, "/api/windows/1/maximize", "192.168.1.1:1234", tt.origin)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantAllow, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}

	t.Run("exposes trace headers", func(t *testing.T) {
		router := desk(CORS(DefaultCORSConfig()), "/api/windows")
		w := serve(router, http.MethodGet, "/api/windows", "192.168.1.1:1234", view)

		exposed := w.Header().Get("Access-Control-Expose-Headers")
		assert.Contains(t, exposed, "X-Trace-Id")
		assert.Contains(t, exposed, "X-Span-Id")
	})
}

func TestRateLimit(t *testing.T) {
	router := desk(RateLimit(RateLimitConfig{RequestsPerSecond: 1, Burst: 2}), "/api/windows")

	steps := []struct {
		addr string
		want int
	}{
		{"192.168.1.1:1234", http.StatusOK},
		{"192.168.1.1:1234", http.StatusOK},
		{"192.168.1.1:1234", http.StatusTooManyRequests},
		// Buckets are per client IP
		{"192.168.1.2:1234", http.StatusOK},
		{"192.168.1.1:5678", http.StatusTooManyRequests},
	}

	for i, step := range steps {
		w := serve(router, http.MethodGet, "/api/windows", step.addr, "")
		assert.Equal(t, step.want, w.Code, "request %d from %s", i+1, step.addr)
	}

	w := serve(router, http.MethodGet, "/api/windows", "192.168.1.1:1234", "")
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, w.Body.String())
}

func TestRateLimitSkipsPrefixes(t *testing.T) {
	cfg := RateLimitConfig{RequestsPerSecond: 1, Burst: 1, Skip: []string{"/stream", "/health"}}
	router := desk(RateLimit(cfg), "/api/windows", "/stream", "/health", "/health/ready")

	tests := []struct {
		path    string
		addr    string
		limited bool
	}{
		{"/api/windows", "10.0.0.1:1234", true},
		{"/stream", "10.0.0.2:1234", false},
		{"/health", "10.0.0.3:1234", false},
		{"/health/ready", "10.0.0.4:1234", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			codes := make([]int, 0, 3)
			for i := 0; i < 3; i++ {
				codes = append(codes, serve(router, http.MethodGet, tt.path, tt.addr, "").Code)
			}

			if tt.limited {
				assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
			} else {
				assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusOK}, codes)
			}
		})
	}
}

func TestRateLimitSkippedRequestsKeepBucket(t *testing.T) {
	cfg := RateLimitConfig{RequestsPerSecond: 1, Burst: 1, Skip: []string{"/stream"}}
	router := desk(RateLimit(cfg), "/api/windows", "/stream")

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/stream", "192.168.1.1:1234", "").Code)
	}
	// Stream traffic never spent the API token
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/windows", "192.168.1.1:1234", "").Code)
}

func TestRateLimitIdleSweep(t *testing.T) {
	tests := []struct {
		name    string
		idleTTL time.Duration
		want    int
	}{
		{"swept after idle", 20 * time.Millisecond, http.StatusOK},
		{"kept without a ttl", 0, http.StatusTooManyRequests},
		{"kept within the ttl", time.Hour, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := RateLimitConfig{RequestsPerSecond: 1, Burst: 1, IdleTTL: tt.idleTTL}
			router := desk(RateLimit(cfg), "/api/windows")

			require.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/windows", "192.168.1.1:1234", "").Code)
			require.Equal(t, http.StatusTooManyRequests, serve(router, http.MethodGet, "/api/windows", "192.168.1.1:1234", "").Code)

			time.Sleep(50 * time.Millisecond)
			// Another client's request runs the sweep
			assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/windows", "192.168.1.2:1234", "").Code)
			assert.Equal(t, tt.want, serve(router, http.MethodGet, "/api/windows", "192.168.1.1:1234", "").Code)
		})
	}
}

func TestDefaults(t *testing.T) {
	rl := DefaultRateLimitConfig()
	assert.Equal(t, RateLimitConfig{RequestsPerSecond: 100, Burst: 200, IdleTTL: 10 * time.Minute}, rl)

	cc := DefaultCORSConfig()
	assert.Equal(t, []string{"*"}, cc.AllowOrigins)
	assert.ElementsMatch(t, []string{"GET", "POST", "DELETE", "OPTIONS"}, cc.AllowMethods)
	assert.Contains(t, cc.AllowHeaders, "X-Trace-ID")
	assert.False(t, cc.AllowCredentials)
}

func TestCompress(t *testing.T) {
	large := strings.Repeat("window ", 1024)
	mux := http.NewServeMux()
	for _, path := range []string{"/api/windows", "/stream", "/streams"} {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(large))
		})
	}
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	handler, err := Compress(mux, "/stream")
	require.NoError(t, err)

	tests := []struct {
		name         string
		path         string
		wantEncoding string
	}{
		{"compressed route", "/api/windows", "gzip"},
		{"skipped prefix", "/stream", ""},
		{"prefix match", "/streams", ""},
		{"below min size", "/api/health", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set("Accept-Encoding", "gzip")
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantEncoding, w.Header().Get("Content-Encoding"))
			if tt.wantEncoding != "" {
				assert.Less(t, w.Body.Len(), len(large))
			}
		})
	}
}

func BenchmarkRateLimit(b *testing.B) {
	router := desk(RateLimit(RateLimitConfig{RequestsPerSecond: 1 << 20, Burst: 1 << 20, IdleTTL: time.Minute}), "/api/windows")
	req := httptest.NewRequest(http.MethodGet, "/api/windows", nil)
	req.RemoteAddr = "192.168.1.1:1234"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		router.ServeHTTP(httptest.NewRecorder(), req)
	}
}
