/*
Package tracing provides lightweight tracing for API requests and stream
messages.

Every HTTP request and every inbound stream message gets a span with
ULID-based trace and span ids ("req_..." and "span_..."). Spans are handed
to a buffered collector and logged through zap, so tracing never blocks a
handler or the stream reader. Spans slower than the slow threshold log at
info, failed spans at error, the rest at debug.

Callers may pass X-Trace-ID and X-Span-ID to join an existing trace; both
ids are echoed back on the response.

# Usage

	tracer := tracing.New("webdesk", logger)
	defer tracer.Close()
	router.Use(tracing.HTTPMiddleware(tracer))

	err := tracer.Trace(ctx, "stream.bounds", func(ctx context.Context) error {
		return apply(msg)
	})
*/
package tracing
