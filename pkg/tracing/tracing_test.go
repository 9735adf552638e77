package tracing

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opencensus.io/trace"

	"github.com/relaydesk/relaydesk/config"
	"github.com/relaydesk/relaydesk/pkg/logger"
)

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing(&config.TracingConfig{Enabled: false}, logger.NewMockLogger(t))
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	shutdown()

	shutdown, err = InitTracing(nil, logger.NewMockLogger(t))
	require.NoError(t, err)
	shutdown()
}

func TestInitTracing_InvalidProbability(t *testing.T) {
	_, err := InitTracing(&config.TracingConfig{Enabled: true, SamplingProbability: 1.5}, logger.NewMockLogger(t))
	assert.Error(t, err)
}

func TestInitTracing_ExportsSpansToLog(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLoggerWithWriter(&buf, "debug")

	shutdown, err := InitTracing(&config.TracingConfig{
		Enabled:             true,
		ServiceName:         "relaydesk-test",
		SamplingProbability: 1,
	}, log)
	require.NoError(t, err)
	defer shutdown()

	_, span := StartServiceSpan(context.Background(), "SignatureTemplateService", "Create")
	EndSpan(span, nil)
	_, span = StartServiceSpan(context.Background(), "BuilderService", "Save")
	EndSpan(span, errors.New("name is required"))

	out := buf.String()
	assert.Contains(t, out, `"span":"SignatureTemplateService.Create"`)
	assert.Contains(t, out, `"service":"relaydesk-test"`)
	assert.Contains(t, out, `"span":"BuilderService.Save"`)
	assert.Contains(t, out, `"error":"name is required"`)
	assert.Contains(t, out, `"level":"warn"`)
}

func TestHTTPHandler(t *testing.T) {
	rec := recordSpans(t)

	h := HTTPHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotNil(t, trace.FromContext(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/palette.list", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotNil(t, rec.byName("GET /api/palette.list"))
}
