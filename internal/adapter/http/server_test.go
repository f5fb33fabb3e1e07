package http_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/couchcryptid/heritage-explorer/internal/adapter/http"
	"github.com/couchcryptid/heritage-explorer/internal/domain"
	"github.com/couchcryptid/heritage-explorer/internal/observability"
	"github.com/couchcryptid/heritage-explorer/internal/pipeline"
	"github.com/couchcryptid/heritage-explorer/internal/recommend"
	"github.com/couchcryptid/heritage-explorer/internal/source"
)

const fixturePath = "../../../data/mock/heritage_tables.json"

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type failingLoader struct{}

func (failingLoader) Dataset(context.Context) (domain.Dataset, error) {
	return domain.Dataset{}, errors.New("fixture missing")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testOptions() httpadapter.Options {
	return httpadapter.Options{
		Addr:               ":0",
		AppTitle:           "India Cultural Heritage Explorer",
		AppIcon:            "🎭",
		DataSource:         "file",
		Selection:          recommend.SelectionTop,
		CORSAllowedOrigins: []string{"*"},
	}
}

func newTestServer(t *testing.T, readyErr error) (*httpadapter.Server, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetricsForTesting()
	builder := pipeline.NewBuilder(source.NewFile(fixturePath), nil, 42, discardLogger(), metrics)
	return httpadapter.NewServer(testOptions(), builder, &mockReadiness{err: readyErr}, discardLogger(), metrics), metrics
}

func get(t *testing.T, srv http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthzReturns200(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := get(t, srv, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode[map[string]string](t, rec)["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := get(t, srv, "/readyz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", decode[map[string]string](t, rec)["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv, _ := newTestServer(t, fmt.Errorf("not ready yet"))
	rec := get(t, srv, "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "not ready yet", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := get(t, srv, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestConfig(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := get(t, srv, "/api/v1/config")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "India Cultural Heritage Explorer", body["title"])
	assert.Equal(t, "file", body["data_source"])
	assert.Equal(t, "top", body["itinerary_selection"])
	assert.Len(t, body["interests"], 5)
}

func TestSummary(t *testing.T) {
	srv, metrics := newTestServer(t, nil)
	rec := get(t, srv, "/api/v1/summary")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Stats struct {
			ArtForms  int `json:"art_forms"`
			Sites     int `json:"heritage_sites"`
			Festivals int `json:"festivals"`
		} `json:"stats"`
		Provenance map[string]string `json:"provenance"`
		Ingest     struct {
			Clamped int `json:"clamped"`
		} `json:"ingest"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, 6, body.Stats.ArtForms)
	assert.Equal(t, 6, body.Stats.Sites)
	assert.Equal(t, 4, body.Stats.Festivals)
	assert.Equal(t, source.KindFile, body.Provenance[domain.TableTourism])
	assert.Equal(t, 1, body.Ingest.Clamped)
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.ComputeDuration))
}

func TestTableFilters(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	tests := []struct {
		target string
		want   int
	}{
		{"/api/v1/art-forms", 6},
		{"/api/v1/art-forms?risk=endangered", 2},
		{"/api/v1/art-forms?category=Dance&risk=Safe", 1},
		{"/api/v1/sites?unesco=Inscribed", 4},
		{"/api/v1/sites?state=rajasthan", 2},
		{"/api/v1/tourism?site=Hampi", 2},
		{"/api/v1/festivals?month=11", 2},
		{"/api/v1/festivals", 5},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(t, srv, tt.target)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Len(t, decode[[]map[string]any](t, rec), tt.want)
		})
	}
}

func TestBadParametersReturn400(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	for _, target := range []string{
		"/api/v1/festivals?month=13",
		"/api/v1/analytics/heritage-index?limit=abc",
		"/api/v1/recommendations/itinerary?duration=20",
		"/api/v1/recommendations/itinerary?interest=Beaches",
		"/api/v1/recommendations/itinerary?selection=best",
		"/api/v1/recommendations/itinerary?seed=-1",
		"/api/v1/recommendations/similar",
		"/api/v1/recommendations/similar?site=Hampi&n=0",
	} {
		t.Run(target, func(t *testing.T) {
			rec := get(t, srv, target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decode[map[string]string](t, rec)["error"])
		})
	}
}

func TestHeritageIndexLimit(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := get(t, srv, "/api/v1/analytics/heritage-index?limit=2")

	require.Equal(t, http.StatusOK, rec.Code)
	rows := decode[[]map[string]any](t, rec)
	require.Len(t, rows, 2)
	assert.Equal(t, "Rajasthan", rows[0]["state"])
}

func TestItinerary(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	tests := []struct {
		target string
		sites  int
		cost   float64
	}{
		{"/api/v1/recommendations/itinerary", 2, 4000},
		{"/api/v1/recommendations/itinerary?budget=Mid-range", 5, 15000},
		{"/api/v1/recommendations/itinerary?budget=Luxury&duration=5", 5, 30000},
		{"/api/v1/recommendations/itinerary?budget=Luxury&selection=sample&seed=3", 5, 30000},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(t, srv, tt.target)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			it := decode[recommend.Itinerary](t, rec)
			assert.Len(t, it.Sites, tt.sites)
			assert.InDelta(t, tt.cost, it.EstimatedCost, 1e-9)
			assert.NotEmpty(t, it.BestTime)
		})
	}
}

func TestAnalyticsEndpoints(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	for _, target := range []string{
		"/api/v1/analytics/sustainability",
		"/api/v1/analytics/trends",
		"/api/v1/analytics/festival-impact",
		"/api/v1/analytics/digital-presence",
		"/api/v1/analytics/insights",
		"/api/v1/recommendations/hidden-gems",
		"/api/v1/recommendations/sustainable",
		"/api/v1/recommendations/similar?site=Hampi&n=2",
		"/api/v1/routes",
		"/api/v1/maps/art-forms?category=Dance",
		"/api/v1/maps/sites?unesco=Inscribed",
		"/api/v1/maps/tourism",
		"/api/v1/maps/routes",
	} {
		t.Run(target, func(t *testing.T) {
			rec := get(t, srv, target)
			assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestSimilarUnknownSiteIsUnavailable(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := get(t, srv, "/api/v1/recommendations/similar?site=Atlantis")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode[map[string]any](t, rec)["available"])
}

func TestMapSitesMarkers(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := get(t, srv, "/api/v1/maps/sites")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 6)
}

func TestUnknownMapLayerReturns404(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := get(t, srv, "/api/v1/maps/rivers")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDatasetFailureReturns503(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	srv := httpadapter.NewServer(testOptions(), failingLoader{}, &mockReadiness{}, discardLogger(), metrics)

	rec := get(t, srv, "/api/v1/summary")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "dataset unavailable", decode[map[string]string](t, rec)["error"])

	rec = get(t, srv, "/api/v1/config")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/summary", nil)
	req.Header.Set("Origin", "https://dashboard.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
