package tracing

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HTTPMiddleware creates Gin middleware for HTTP tracing.
// Incoming X-Trace-ID and X-Span-ID headers are honoured and the
// resulting ids are echoed on the response.
func HTTPMiddleware(tracer *Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if traceID := c.GetHeader(HeaderTraceID); traceID != "" {
			ctx = WithTraceID(ctx, TraceID(traceID))
		}
		if parentID := c.GetHeader(HeaderSpanID); parentID != "" {
			ctx = WithParentSpan(ctx, SpanID(parentID))
		}

		name := c.FullPath()
		if name == "" {
			name = c.Request.URL.Path
		}

		span, ctx := tracer.StartSpan(ctx, c.Request.Method+" "+name)
		span.Annotate(zap.String("path", c.Request.URL.Path))
		if id := c.Param("id"); id != "" {
			span.Annotate(zap.String("window_id", id))
		}
		if pkg := c.Param("packageId"); pkg != "" {
			span.Annotate(zap.String("package_id", pkg))
		}

		c.Request = c.Request.WithContext(ctx)

		c.Header(HeaderTraceID, string(span.TraceID))
		c.Header(HeaderSpanID, string(span.SpanID))

		c.Next()

		span.SetStatus(c.Writer.Status())
		if len(c.Errors) > 0 {
			span.SetError(c.Errors.Last())
		}

		span.Finish()
		tracer.Submit(span)
	}
}
