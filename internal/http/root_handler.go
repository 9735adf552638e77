package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/relaydesk/relaydesk/pkg/logger"
)

// HealthCheck reports whether a backing service answers.
type HealthCheck func(ctx context.Context) error

type RootHandler struct {
	logger  logger.Logger
	version string
	checks  map[string]HealthCheck
	timeout time.Duration
}

// NewRootHandler serves the API root and the health endpoint. checks are
// keyed by the name reported in /healthz.
func NewRootHandler(logger logger.Logger, version string, checks map[string]HealthCheck) *RootHandler {
	return &RootHandler{
		logger:  logger,
		version: version,
		checks:  checks,
		timeout: 2 * time.Second,
	}
}

func (h *RootHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api") {
		if r.URL.Path == "/api" || r.URL.Path == "/api/" {
			writeJSON(w, http.StatusOK, map[string]string{
				"status":  "api running",
				"version": h.version,
			})
			return
		}
		WriteJSONError(w, "Unknown endpoint", http.StatusNotFound)
		return
	}

	http.NotFound(w, r)
}

// handleHealth runs every check and answers 503 when one of them fails.
func (h *RootHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.WithField("check", name).WithField("error", err.Error()).Warn("Health check failed")
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	writeJSON(w, status, map[string]interface{}{
		"version": h.version,
		"checks":  results,
	})
}

func (h *RootHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.HandleFunc("/", h.Handle)
}
