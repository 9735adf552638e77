package tracing

import (
	"fmt"
	"net/http"
	"strings"

	"contrib.go.opencensus.io/exporter/prometheus"
	"contrib.go.opencensus.io/integrations/ocsql"
	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/stats/view"

	"github.com/relaydesk/relaydesk/config"
	"github.com/relaydesk/relaydesk/pkg/logger"
)

// InitMetrics registers the HTTP server and database views and returns the
// Prometheus scrape handler. It returns a nil handler when metrics are
// disabled. The returned function is never nil.
func InitMetrics(cfg *config.TracingConfig, log logger.Logger) (http.Handler, func(), error) {
	if cfg == nil || !cfg.MetricsEnabled {
		return nil, func() {}, nil
	}

	pe, err := prometheus.NewExporter(prometheus.Options{
		Namespace: metricsNamespace(cfg.ServiceName),
		OnError: func(err error) {
			log.WithField("error", err.Error()).Warn("Prometheus exporter error")
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	views := append([]*view.View{}, ochttp.DefaultServerViews...)
	views = append(views, ocsql.DefaultViews...)
	if err := view.Register(views...); err != nil {
		return nil, nil, fmt.Errorf("failed to register metric views: %w", err)
	}
	view.RegisterExporter(pe)

	log.WithField("namespace", metricsNamespace(cfg.ServiceName)).Info("Prometheus metrics enabled")

	return pe, func() {
		view.UnregisterExporter(pe)
		view.Unregister(views...)
	}, nil
}

// metricsNamespace turns a service name into a valid Prometheus namespace
func metricsNamespace(serviceName string) string {
	ns := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, serviceName)
	if ns == "" {
		return "relaydesk"
	}
	return ns
}

// SQLDriver returns the driver name to open connections with. When tracing
// is enabled the postgres driver is wrapped so every query gets a span.
func SQLDriver(cfg *config.TracingConfig, driverName string) (string, error) {
	if cfg == nil || !cfg.Enabled {
		return driverName, nil
	}
	wrapped, err := ocsql.Register(driverName, ocsql.WithAllTraceOptions())
	if err != nil {
		return "", fmt.Errorf("failed to register opencensus sql driver: %w", err)
	}
	return wrapped, nil
}
