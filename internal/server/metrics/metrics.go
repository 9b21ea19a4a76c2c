// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the server collectors around a private registry.
type Metrics struct {
	reg *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	sessionsIssued  prometheus.Counter
	entriesCreated  *prometheus.CounterVec
	blobBytes       prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		reg: reg,
		requestsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "files_manager_http_requests_total",
				Help: "Total number of HTTP requests by route, method and status",
			},
			[]string{"route", "method", "status"},
		),
		requestDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "files_manager_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		sessionsIssued: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "files_manager_sessions_issued_total",
				Help: "Total number of session tokens issued",
			},
		),
		entriesCreated: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "files_manager_entries_created_total",
				Help: "Total number of file entries created by type",
			},
			[]string{"type"},
		),
		blobBytes: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "files_manager_blob_bytes_written_total",
				Help: "Total bytes of file content persisted",
			},
		),
	}
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(route, method string, status int, took time.Duration) {
	m.requestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(took.Seconds())
}

func (m *Metrics) SessionIssued() {
	m.sessionsIssued.Inc()
}

// EntryCreated counts a new entry and, for files and images, its content size.
func (m *Metrics) EntryCreated(entryType string, size int) {
	m.entriesCreated.WithLabelValues(entryType).Inc()
	if size > 0 {
		m.blobBytes.Add(float64(size))
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Registry is exposed for tests and for embedding extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}
