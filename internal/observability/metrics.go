package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the relay's Prometheus collectors
type Metrics struct {
	// SessionsCreated counts session creations by mode: auto, explicit
	// or implicit (created on the fly by an upload).
	SessionsCreated *prometheus.CounterVec
	SessionsSwept   prometheus.Counter
	ActiveSessions  prometheus.Gauge
	Uploads         prometheus.Counter
	UploadBytes     prometheus.Counter
	Fetches         prometheus.Counter

	handler http.Handler
}

// InitMetrics creates the relay's metrics on a dedicated registry, so
// tests can initialize independent instances without collector
// collisions.
func InitMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		SessionsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "relay_sessions_created_total",
			Help: "Sessions created, by creation mode.",
		}, []string{"mode"}),
		SessionsSwept: factory.NewCounter(prometheus.CounterOpts{
			Name: "relay_sessions_swept_total",
			Help: "Sessions removed by the expiry sweep.",
		}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "relay_active_sessions",
			Help: "Sessions currently live in the registry.",
		}),
		Uploads: factory.NewCounter(prometheus.CounterOpts{
			Name: "relay_uploads_total",
			Help: "Files accepted for relay.",
		}),
		UploadBytes: factory.NewCounter(prometheus.CounterOpts{
			Name: "relay_upload_bytes_total",
			Help: "Declared bytes accepted for relay.",
		}),
		Fetches: factory.NewCounter(prometheus.CounterOpts{
			Name: "relay_fetches_total",
			Help: "File payloads served back to clients.",
		}),
	}
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return m
}

// Handler returns the HTTP handler for the /metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return m.handler
}
