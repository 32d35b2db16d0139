// Package metrics exposes Prometheus collectors for the HTTP surface, the
// staging pipeline and the chat assistant.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"twins-digital-web/internal/staging"
)

const namespace = "twins"

// Metrics owns its registry so independent instances never collide.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	httpInflight prometheus.Gauge

	stagingItems        *prometheus.CounterVec
	stagingItemDuration *prometheus.HistogramVec
	stagingRuns         prometheus.Counter
	stagingRunDuration  prometheus.Histogram

	chatMessages *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"path", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path", "method", "status"}),
		httpInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "In-flight HTTP requests",
		}),
		stagingItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "staging",
			Name:      "items_total",
			Help:      "Images processed by the staging pipeline",
		}, []string{"action", "status"}),
		stagingItemDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "staging",
			Name:      "item_duration_seconds",
			Help:      "Time spent on one remote image transformation",
			Buckets:   []float64{1, 2, 5, 10, 20, 30, 60, 120, 240},
		}, []string{"action"}),
		stagingRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "staging",
			Name:      "runs_total",
			Help:      "Completed generation runs",
		}),
		stagingRunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "staging",
			Name:      "run_duration_seconds",
			Help:      "Wall time of a full generation run",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),
		chatMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "assistant",
			Name:      "messages_total",
			Help:      "Chat messages answered, by outcome",
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpDuration, m.httpInflight,
		m.stagingItems, m.stagingItemDuration, m.stagingRuns, m.stagingRunDuration,
		m.chatMessages,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware instruments requests. The path label is the chi route pattern,
// read after routing so that URL parameters never become label values.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.httpInflight.Inc()
		defer m.httpInflight.Dec()

		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sr, r)

		path := routePatternOrPath(r)
		status := strconv.Itoa(sr.status)
		m.httpRequests.WithLabelValues(path, r.Method, status).Inc()
		m.httpDuration.WithLabelValues(path, r.Method, status).Observe(time.Since(start).Seconds())
	})
}

// StagingHooks feeds pipeline events into the staging collectors.
func (m *Metrics) StagingHooks() staging.Hooks {
	return staging.Hooks{
		ItemFinished: func(action staging.Action, status staging.Status, elapsed time.Duration) {
			m.stagingItems.WithLabelValues(string(action), string(status)).Inc()
			if action != staging.ActionNone {
				m.stagingItemDuration.WithLabelValues(string(action)).Observe(elapsed.Seconds())
			}
		},
		RunFinished: func(_ int, elapsed time.Duration) {
			m.stagingRuns.Inc()
			m.stagingRunDuration.Observe(elapsed.Seconds())
		},
	}
}

// ChatAnswered records one assistant reply: "ok", "empty" or "error".
func (m *Metrics) ChatAnswered(outcome string) {
	if outcome == "" {
		outcome = "unspecified"
	}
	m.chatMessages.WithLabelValues(outcome).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.wroteHeader {
		sr.status = code
		sr.wroteHeader = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	sr.wroteHeader = true
	return sr.ResponseWriter.Write(b)
}

// Flush keeps server-sent event streams working through the recorder.
func (sr *statusRecorder) Flush() {
	if f, ok := sr.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (sr *statusRecorder) Unwrap() http.ResponseWriter {
	return sr.ResponseWriter
}

func routePatternOrPath(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}
