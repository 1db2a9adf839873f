package preview

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "vtree/preview"

// Tracing creates middleware that starts a server span per request. The
// span travels in the request context, so render spans started by
// handlers become its children.
func Tracing(tracer trace.Tracer) func(http.Handler) http.Handler {
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracer.Start(r.Context(), spanName(r),
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.target", r.URL.Path),
				),
			)
			defer span.End()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			span.SetAttributes(attribute.Int("http.status_code", status))
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}
		})
	}
}

func spanName(r *http.Request) string {
	path := r.URL.Path
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("preview %s %s", r.Method, path)
}

// traceEvent wraps the dispatch of a browser event in a span.
func (s *Server) traceEvent(r *http.Request, ev EventMessage, dispatch func(context.Context) (bool, error)) (bool, error) {
	ctx, span := s.tracer.Start(r.Context(), "vtree.event",
		trace.WithAttributes(
			attribute.String("vtree.event_type", ev.Type),
			attribute.IntSlice("vtree.event_target", ev.Target),
		),
	)
	defer span.End()

	handled, err := dispatch(ctx)
	span.SetAttributes(attribute.Bool("vtree.handled", handled))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	return handled, err
}
