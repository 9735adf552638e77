package tracing

import (
	"fmt"
	"net/http"

	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/trace"

	"github.com/relaydesk/relaydesk/config"
	"github.com/relaydesk/relaydesk/pkg/logger"
)

// logExporter writes finished spans to the application log, one line per
// span. Failed spans are logged at warn level, the rest at debug.
type logExporter struct {
	logger logger.Logger
}

func (e *logExporter) ExportSpan(sd *trace.SpanData) {
	fields := map[string]interface{}{
		"trace_id":    sd.TraceID.String(),
		"span_id":     sd.SpanID.String(),
		"span":        sd.Name,
		"duration_ms": sd.EndTime.Sub(sd.StartTime).Milliseconds(),
	}
	for key, value := range sd.Attributes {
		fields["attr."+key] = value
	}

	l := e.logger.WithFields(fields)
	if sd.Code != trace.StatusCodeOK {
		l.WithField("error", sd.Message).Warn("span failed")
		return
	}
	l.Debug("span finished")
}

// InitTracing installs the sampler and the log exporter. The returned
// function unregisters the exporter and is never nil.
func InitTracing(cfg *config.TracingConfig, log logger.Logger) (func(), error) {
	if cfg == nil || !cfg.Enabled {
		return func() {}, nil
	}
	if cfg.SamplingProbability < 0 || cfg.SamplingProbability > 1 {
		return nil, fmt.Errorf("tracing sampling probability must be between 0 and 1, got %v", cfg.SamplingProbability)
	}

	trace.ApplyConfig(trace.Config{
		DefaultSampler: trace.ProbabilitySampler(cfg.SamplingProbability),
	})

	exporter := &logExporter{logger: log.WithField("service", cfg.ServiceName)}
	trace.RegisterExporter(exporter)

	log.WithField("sampling_probability", cfg.SamplingProbability).Info("Tracing initialized with log exporter")

	return func() {
		trace.UnregisterExporter(exporter)
		trace.ApplyConfig(trace.Config{DefaultSampler: trace.NeverSample()})
	}, nil
}

// HTTPHandler starts a span for every request, named after method and path.
func HTTPHandler(h http.Handler) http.Handler {
	return &ochttp.Handler{
		Handler: h,
		FormatSpanName: func(r *http.Request) string {
			return fmt.Sprintf("%s %s", r.Method, r.URL.Path)
		},
	}
}
