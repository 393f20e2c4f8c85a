package e2e

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/asakaida/annostore/internal/handlers"
	"github.com/asakaida/annostore/internal/handlers/middleware"
	"github.com/asakaida/annostore/internal/infrastructure/config"
	"github.com/asakaida/annostore/internal/infrastructure/metrics"
	"github.com/asakaida/annostore/internal/repositories/memory"
	"github.com/asakaida/annostore/internal/services"
)

const (
	annoContext = "http://www.w3.org/ns/anno.jsonld"
)

// E2ETestServer represents an E2E test server
type E2ETestServer struct {
	Server   *httptest.Server
	Store    *memory.Store
	Exporter *metrics.PrometheusExporter
	Registry *prometheus.Registry
	Client   *http.Client
}

// SetupE2ETest starts the full middleware chain and router on an httptest server
func SetupE2ETest(t *testing.T) *E2ETestServer {
	t.Helper()

	// Initialize config for test environment
	require.NoError(t, config.InitConfig("test"))
	cfg, err := config.Load()
	require.NoError(t, err, "failed to load config")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := memory.NewStore()
	targetService := services.NewTargetService(store.Targets(), logger)
	annotationService := services.NewAnnotationService(store.Targets(), store.Annotations(), logger)

	collector := metrics.NewCollector()
	collector.SetStore(store)
	registry := prometheus.NewRegistry()
	exporter := metrics.NewPrometheusExporter(collector, registry)

	router := handlers.NewRouter(targetService, annotationService, handlers.RouterConfig{
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		Instrument:   metrics.Middleware(collector, exporter),
		Logger:       logger,
	})

	srv := httptest.NewServer(middleware.Chain(router,
		middleware.RequestLogger(logger),
		middleware.Recover(logger),
		middleware.CORS(cfg.CORS),
		middleware.WorkerPool(cfg.Server.Workers),
	))
	t.Cleanup(srv.Close)

	return &E2ETestServer{
		Server:   srv,
		Store:    store,
		Exporter: exporter,
		Registry: registry,
		Client:   srv.Client(),
	}
}

// Response is a fully read HTTP response
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Do sends a request to the test server. rawPath is sent as-is.
func (s *E2ETestServer) Do(t *testing.T, method, rawPath, body string) *Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, s.Server.URL+rawPath, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: bytes.TrimSpace(data)}
}

// AnnotationBody builds a valid annotation document
func AnnotationBody(id, target string) string {
	return `{"@context":"` + annoContext + `","type":"Annotation","id":"` + id + `","target":"` + target + `"}`
}

// TargetBody builds a valid target document
func TargetBody(id string) string {
	return `{"id":"` + id + `"}`
}
