package tracing

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// TraceID identifies one API request or stream message and everything
// it causes
type TraceID string

// SpanID identifies a single traced operation
type SpanID string

// Header names used for propagation.
const (
	HeaderTraceID = "X-Trace-ID"
	HeaderSpanID  = "X-Span-ID"
)

// DefaultSlowThreshold promotes spans to info level
const DefaultSlowThreshold = 250 * time.Millisecond

// Span represents a single traced operation
type Span struct {
	TraceID    TraceID
	SpanID     SpanID
	ParentID   SpanID
	Name       string
	StartTime  time.Time
	Duration   time.Duration
	Fields     []zap.Field
	Error      error
	StatusCode int
}

// Tracer collects finished spans and logs them off the request path.
type Tracer struct {
	service string
	logger  *zap.Logger
	slow    time.Duration
	spans   chan *Span

	mu     sync.RWMutex
	closed bool // Protected by mu
	done   chan struct{}
}

// New creates a tracer and starts its collector
func New(service string, logger *zap.Logger) *Tracer {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Tracer{
		service: service,
		logger:  logger.With(zap.String("service", service)),
		slow:    DefaultSlowThreshold,
		spans:   make(chan *Span, 1000),
		done:    make(chan struct{}),
	}

	go t.collectSpans()

	return t
}

// WithSlowThreshold sets the duration above which spans log at info
func (t *Tracer) WithSlowThreshold(d time.Duration) *Tracer {
	t.slow = d
	return t
}

// StartSpan starts a span, continuing the trace carried by ctx if any
func (t *Tracer) StartSpan(ctx context.Context, name string) (*Span, context.Context) {
	traceID := GetTraceID(ctx)
	if traceID == "" {
		traceID = TraceID(newID(TracePrefix))
	}

	span := &Span{
		TraceID:   traceID,
		SpanID:    SpanID(newID(SpanPrefix)),
		ParentID:  GetSpanID(ctx),
		Name:      name,
		StartTime: time.Now(),
	}

	ctx = context.WithValue(ctx, traceIDKey, traceID)
	ctx = context.WithValue(ctx, spanIDKey, span.SpanID)

	return span, ctx
}

// Trace runs fn inside a span named name and submits it
func (t *Tracer) Trace(ctx context.Context, name string, fn func(context.Context) error, fields ...zap.Field) error {
	span, ctx := t.StartSpan(ctx, name)
	span.Annotate(fields...)
	err := fn(ctx)
	span.SetError(err)
	span.Finish()
	t.Submit(span)
	return err
}

// Finish marks the span as complete
func (s *Span) Finish() {
	s.Duration = time.Since(s.StartTime)
}

// Annotate attaches log fields to the span
func (s *Span) Annotate(fields ...zap.Field) {
	s.Fields = append(s.Fields, fields...)
}

// SetError records an error in the span
func (s *Span) SetError(err error) {
	s.Error = err
}

// SetStatus sets the HTTP status code
func (s *Span) SetStatus(code int) {
	s.StatusCode = code
}

func (t *Tracer) collectSpans() {
	defer close(t.done)
	for span := range t.spans {
		t.logSpan(span)
	}
}

func (t *Tracer) logSpan(span *Span) {
	fields := make([]zap.Field, 0, len(span.Fields)+6)
	fields = append(fields,
		zap.String("trace_id", string(span.TraceID)),
		zap.String("span_id", string(span.SpanID)),
		zap.String("operation", span.Name),
		zap.Duration("duration", span.Duration),
	)
	if span.StatusCode != 0 {
		fields = append(fields, zap.Int("status", span.StatusCode))
	}
	if span.ParentID != "" {
		fields = append(fields, zap.String("parent_id", string(span.ParentID)))
	}
	fields = append(fields, span.Fields...)

	switch {
	case span.Error != nil:
		t.logger.Error("span completed with error", append(fields, zap.Error(span.Error))...)
	case span.Duration >= t.slow:
		t.logger.Info("slow span completed", fields...)
	default:
		t.logger.Debug("span completed", fields...)
	}
}

// Submit queues a finished span for logging. Full queues drop spans.
// After Close spans are logged directly.
func (t *Tracer) Submit(span *Span) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.closed {
		t.logSpan(span)
		return
	}
	select {
	case t.spans <- span:
	default:
		t.logger.Warn("span buffer full, dropping span",
			zap.String("trace_id", string(span.TraceID)),
			zap.String("operation", span.Name),
		)
	}
}

// Close stops the collector after draining queued spans
func (t *Tracer) Close() {
	t.mu.Lock()
	if !t.closed {
		t.closed = true
		close(t.spans)
	}
	t.mu.Unlock()
	<-t.done
}

type contextKey string

const (
	traceIDKey contextKey = "trace_id"
	spanIDKey  contextKey = "span_id"
)

// GetTraceID retrieves the trace ID from context
func GetTraceID(ctx context.Context) TraceID {
	traceID, _ := ctx.Value(traceIDKey).(TraceID)
	return traceID
}

// GetSpanID retrieves the span ID from context
func GetSpanID(ctx context.Context) SpanID {
	spanID, _ := ctx.Value(spanIDKey).(SpanID)
	return spanID
}

// WithTraceID continues an upstream trace
func WithTraceID(ctx context.Context, traceID TraceID) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// WithParentSpan makes the next span a child of spanID
func WithParentSpan(ctx context.Context, spanID SpanID) context.Context {
	return context.WithValue(ctx, spanIDKey, spanID)
}
