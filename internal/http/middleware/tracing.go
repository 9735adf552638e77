package middleware

import (
	"context"
	"net/http"

	"go.opencensus.io/trace"

	"github.com/relaydesk/relaydesk/pkg/tracing"
)

// TracingMiddleware starts a span per request and records request details
// and the response status on it
func TracingMiddleware(next http.Handler) http.Handler {
	annotate := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if span := trace.FromContext(ctx); span != nil {
			span.AddAttributes(
				trace.StringAttribute("http.host", r.Host),
				trace.StringAttribute("http.user_agent", r.UserAgent()),
				trace.StringAttribute("http.method", r.Method),
				trace.StringAttribute("http.path", r.URL.Path),
			)
			if requestID := r.Header.Get("X-Request-ID"); requestID != "" {
				span.AddAttributes(trace.StringAttribute("http.request_id", requestID))
			}
		}

		next.ServeHTTP(&traceResponseWriter{ResponseWriter: w, ctx: ctx}, r)
	})

	return tracing.HTTPHandler(annotate)
}

// traceResponseWriter captures the status code for tracing purposes
type traceResponseWriter struct {
	http.ResponseWriter
	ctx        context.Context
	statusCode int
}

// WriteHeader captures the status code for tracing
func (trw *traceResponseWriter) WriteHeader(code int) {
	trw.statusCode = code

	if span := trace.FromContext(trw.ctx); span != nil {
		span.AddAttributes(trace.Int64Attribute("http.status_code", int64(code)))

		// Mark error spans for 4xx and 5xx status codes
		if code >= 400 {
			span.SetStatus(trace.Status{
				Code:    trace.StatusCodeUnknown,
				Message: http.StatusText(code),
			})
		}
	}

	trw.ResponseWriter.WriteHeader(code)
}

var _ http.ResponseWriter = (*traceResponseWriter)(nil)
