package api_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"numerology/internal/api"
	"numerology/internal/api/handler/v1handler"
	"numerology/internal/calculator"
	"numerology/internal/config"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, opts api.Options) http.Handler {
	t.Helper()

	reg := prometheus.NewRegistry()
	opts.Registerer, opts.Gatherer = reg, reg

	calc := calculator.New(calculator.Options{MaxBatchSize: 5, BatchConcurrency: 2}, nil)
	srv, err := api.NewServer(api.Deps{Deps: v1handler.Deps{Calculator: calc}}, opts)
	require.NoError(t, err)

	return srv.Handler
}

func get(t *testing.T, h http.Handler, path string) (*http.Response, string) {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	res := rec.Result()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return res, string(body)
}

func TestNewServer_Routes(t *testing.T) {
	h := newTestHandler(t, api.Options{RequestTimeout: time.Second, Version: "test"})

	res, body := get(t, h, "/health")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, body, `"version":"test"`)
	require.NotEmpty(t, res.Header.Get("X-Request-Id"))
	require.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))

	res, body = get(t, h, "/specs/v1.yaml")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "application/yaml", res.Header.Get("Content-Type"))
	require.Contains(t, body, "openapi:")

	res, _ = get(t, h, "/v1/docs/")
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, body = get(t, h, "/v1/tools")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, body, `"life_path"`)

	// request metrics go through the otel prometheus exporter
	res, body = get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, body, "numerology_http_requests")
}

func TestNewServer_Profile(t *testing.T) {
	h := newTestHandler(t, api.Options{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/profiles",
		strings.NewReader(`{"name":"John","day":15,"month":3,"year":1990}`))
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"life_path":1`)
	require.Contains(t, rec.Body.String(), `"karmic_debt":null`)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/v1/profiles",
		strings.NewReader(`{"name":"John","day":30,"month":2,"year":1990}`))
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `"code":"BAD_REQUEST"`)
}

func TestNewServer_MethodNotAllowed(t *testing.T) {
	h := newTestHandler(t, api.Options{})

	res, _ := get(t, h, "/v1/profiles")
	require.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}

func TestNewServer_BadPublicKey(t *testing.T) {
	_, err := api.NewServer(api.Deps{}, api.Options{
		SecHandlerOptions: &v1handler.SecHandlerOptions{PublicKey: "garbage"},
		Registerer:        prometheus.NewRegistry(),
		Gatherer:          prometheus.NewRegistry(),
	})
	require.Error(t, err)
}

func TestNewOptions(t *testing.T) {
	cfg := &config.Config{}
	cfg.HTTP.Addr = ":9090"
	cfg.HTTP.RequestTimeout = 5 * time.Second
	cfg.HTTP.CORSOrigins = []string{"https://app.example.com"}
	cfg.Auth.PublicKey = "pem"

	opts := api.NewOptions(cfg)
	require.Equal(t, ":9090", opts.Addr)
	require.Equal(t, 5*time.Second, opts.RequestTimeout)
	require.Equal(t, []string{"https://app.example.com"}, opts.CORSOrigins)
	require.Equal(t, "pem", opts.SecHandlerOptions.PublicKey)
}
