package ops

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *Readiness, *Metrics) {
	t.Helper()
	readiness := &Readiness{}
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)
	return NewServer(":0", readiness, registry), readiness, metrics
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := get(t, srv.routes(), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestReadyzTracksReadiness(t *testing.T) {
	srv, readiness, _ := newTestServer(t)
	h := srv.routes()

	rec := get(t, h, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	readiness.MarkReady()
	rec = get(t, h, "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", rec.Body.String())

	readiness.MarkDown()
	rec = get(t, h, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStatusEndpoint(t *testing.T) {
	srv, readiness, _ := newTestServer(t)
	readiness.MarkReady()

	rec := get(t, srv.routes(), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Service string `json:"service"`
		Ready   bool   `json:"ready"`
		Uptime  string `json:"uptime"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "tanlovbot", body.Service)
	assert.True(t, body.Ready)
	assert.NotEmpty(t, body.Uptime)
}

func TestMetricsEndpointExposesCounters(t *testing.T) {
	srv, _, metrics := newTestServer(t)

	metrics.UpdatesReceived.Inc()
	metrics.RegistrationCompleted()
	metrics.SubmissionRelayed()
	metrics.RelayFailed()

	rec := get(t, srv.routes(), "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)

	out, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "tanlovbot_updates_received_total 1")
	assert.Contains(t, text, "tanlovbot_registrations_completed_total 1")
	assert.Contains(t, text, "tanlovbot_submissions_relayed_total 1")
	assert.Contains(t, text, "tanlovbot_relay_failures_total 1")
}
