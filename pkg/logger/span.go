package logger

import (
	"context"
	"log/slog"

	tracectx "github.com/arcentrix/workpipe/pkg/trace/context"
	"go.opentelemetry.io/otel/trace"
)

// spanHandler stamps records with trace_id/span_id. Dispatcher workers
// receive tasks without the submitter's context threaded through the
// pipe, so when the record's own context carries no span the handler
// falls back to a goroutine-local one installed via tracectx.SetContext
// or tracectx.RunWithContext. The dispatcher itself installs none.
type spanHandler struct {
	next slog.Handler
}

func newSpanHandler(next slog.Handler) slog.Handler {
	return spanHandler{next: next}
}

func (h spanHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h spanHandler) Handle(ctx context.Context, record slog.Record) error {
	if sc := activeSpan(ctx); sc.IsValid() {
		record.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	return h.next.Handle(ctx, record)
}

func (h spanHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return spanHandler{next: h.next.WithAttrs(attrs)}
}

func (h spanHandler) WithGroup(name string) slog.Handler {
	return spanHandler{next: h.next.WithGroup(name)}
}

// activeSpan resolves the span context for a record: the explicit
// context wins, the goroutine-local store is the fallback.
func activeSpan(ctx context.Context) trace.SpanContext {
	if ctx != nil {
		if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
			return sc
		}
	}
	if local := tracectx.GetContext(); local != nil {
		return trace.SpanFromContext(local).SpanContext()
	}
	return trace.SpanContext{}
}
