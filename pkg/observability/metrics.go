package observability

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Rendering metrics
	EntriesRendered *prometheus.CounterVec
	RenderDuration  *prometheus.HistogramVec
	RenderErrors    *prometheus.CounterVec

	// Output metrics
	PagesWritten    prometheus.Counter
	PagesUnchanged  prometheus.Counter
	DigestCacheHits prometheus.Counter

	// Input metrics
	EntriesLoaded prometheus.Gauge
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,

		// HTTP metrics
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "apiman_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "apiman_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPResponseSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "apiman_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 8),
			},
			[]string{"method", "path"},
		),

		// Rendering metrics
		EntriesRendered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "apiman_entries_rendered_total",
				Help: "Total number of rendered entries and type pages",
			},
			[]string{"format"},
		),
		RenderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "apiman_render_duration_seconds",
				Help:    "Duration of a full render run in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"format"},
		),
		RenderErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "apiman_render_errors_total",
				Help: "Total number of failed render runs",
			},
			[]string{"format"},
		),

		// Output metrics
		PagesWritten: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "apiman_pages_written_total",
				Help: "Total number of output files written",
			},
		),
		PagesUnchanged: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "apiman_pages_unchanged_total",
				Help: "Total number of output files left untouched because their body did not change",
			},
		),
		DigestCacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "apiman_digest_cache_hits_total",
				Help: "Total number of unchanged pages detected without reading the output",
			},
		),

		// Input metrics
		EntriesLoaded: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "apiman_entries_loaded",
				Help: "Number of entries in the last loaded API description",
			},
		),
	}

	// Register all metrics
	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPResponseSize,
		m.EntriesRendered,
		m.RenderDuration,
		m.RenderErrors,
		m.PagesWritten,
		m.PagesUnchanged,
		m.DigestCacheHits,
		m.EntriesLoaded,
	)

	return m
}

// RecordRender records a finished render run. A nil Metrics records nothing.
func (m *Metrics) RecordRender(format string, entries int, duration time.Duration, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.RenderErrors.WithLabelValues(format).Inc()
		return
	}
	m.EntriesRendered.WithLabelValues(format).Add(float64(entries))
	m.RenderDuration.WithLabelValues(format).Observe(duration.Seconds())
}

// RecordPage records the outcome of one change-aware write
func (m *Metrics) RecordPage(changed, cached bool) {
	if m == nil {
		return
	}
	if changed {
		m.PagesWritten.Inc()
		return
	}
	m.PagesUnchanged.Inc()
	if cached {
		m.DigestCacheHits.Inc()
	}
}

// RecordLoad records the size of a freshly loaded API description
func (m *Metrics) RecordLoad(entries int) {
	if m == nil {
		return
	}
	m.EntriesLoaded.Set(float64(entries))
}

// WriteTextfile writes every registered metric to path in the Prometheus
// text format, as read by the node_exporter textfile collector
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}

// responseWriter wraps http.ResponseWriter to capture status code and size
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

// HTTPMetricsMiddleware instruments HTTP requests with Prometheus metrics.
// Requests are labelled with the route template so entry names do not
// create a series each.
func HTTPMetricsMiddleware(metrics *Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			path := routePath(r)
			duration := time.Since(start).Seconds()
			status := strconv.Itoa(rw.statusCode)

			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
			metrics.HTTPResponseSize.WithLabelValues(r.Method, path).Observe(float64(rw.bytesWritten))
		})
	}
}

func routePath(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if template, err := route.GetPathTemplate(); err == nil {
			return template
		}
	}
	return r.URL.Path
}

// RegisterMetricsEndpoint registers the /metrics endpoint
func RegisterMetricsEndpoint(router *mux.Router, registry *prometheus.Registry) {
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods("GET")
}
