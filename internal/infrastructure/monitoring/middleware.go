package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware for metrics collection.
// Requests are labelled by route pattern so window ids do not explode
// label cardinality.
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.RecordHTTPRequest(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
			int64(c.Writer.Size()),
		)
	}
}

// Timer measures hook duration
type Timer struct {
	start   time.Time
	metrics *Metrics
}

// NewTimer creates a new timer
func NewTimer(metrics *Metrics) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
	}
}

// Stop stops the timer and records the hook run
func (t *Timer) Stop(status string) {
	t.metrics.RecordHookRun(status, time.Since(t.start))
}
