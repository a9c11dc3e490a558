package observability

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	require.NotNil(t, metrics)
	assert.NotNil(t, metrics.HTTPRequestsTotal)
	assert.NotNil(t, metrics.EntriesRendered)
	assert.NotNil(t, metrics.PagesWritten)
	assert.NotNil(t, metrics.PagesUnchanged)

	// registering twice on the same registry panics
	assert.Panics(t, func() { NewMetrics(registry) })
}

func TestMetrics_RecordRender(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())

	metrics.RecordRender("man", 12, 20*time.Millisecond, nil)
	metrics.RecordRender("man", 3, 5*time.Millisecond, nil)
	metrics.RecordRender("markdown", 0, 0, errors.New("bad input"))

	assert.Equal(t, float64(15), testutil.ToFloat64(metrics.EntriesRendered.WithLabelValues("man")))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.EntriesRendered.WithLabelValues("markdown")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.RenderErrors.WithLabelValues("markdown")))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.RenderDuration))
}

func TestMetrics_RecordPage(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())

	metrics.RecordPage(true, false)
	metrics.RecordPage(false, false)
	metrics.RecordPage(false, true)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.PagesWritten))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.PagesUnchanged))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.DigestCacheHits))
}

func TestMetrics_NilSafe(t *testing.T) {
	var metrics *Metrics
	assert.NotPanics(t, func() {
		metrics.RecordRender("man", 1, time.Second, nil)
		metrics.RecordPage(true, false)
		metrics.RecordLoad(4)
	})
}

func TestMetrics_WriteTextfile(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())
	metrics.RecordLoad(7)
	metrics.RecordPage(true, false)

	path := filepath.Join(t.TempDir(), "apiman.prom")
	require.NoError(t, metrics.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "apiman_entries_loaded 7")
	assert.Contains(t, string(data), "apiman_pages_written_total 1")
}

func TestMetrics_WriteTextfile_BadPath(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())

	err := metrics.WriteTextfile(filepath.Join(t.TempDir(), "missing", "apiman.prom"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write metrics file")
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	router := mux.NewRouter()
	router.Use(HTTPMetricsMiddleware(metrics))
	router.HandleFunc("/man/{name}", func(w http.ResponseWriter, r *http.Request) {
		if mux.Vars(r)["name"] == "missing" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Write([]byte("page"))
	}).Methods("GET")

	for _, path := range []string{"/man/abs", "/man/Text.split", "/man/missing"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", path, nil))
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/man/{name}", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/man/{name}", "404")))
}

func TestRegisterMetricsEndpoint(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)
	metrics.RecordLoad(3)

	router := mux.NewRouter()
	RegisterMetricsEndpoint(router, registry)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "apiman_entries_loaded 3"))
}
