package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the service.
type Metrics struct {
	ChatOutcomes *prometheus.CounterVec
	ChatDuration prometheus.Histogram
	ChatErrors   *prometheus.CounterVec
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		ChatOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_outcomes_total",
			Help:      "Chat turns by action tag.",
		}, []string{"action"}),
		ChatDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chat_duration_seconds",
			Help:      "End-to-end chat turn duration, generative call included.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 90},
		}),
		ChatErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_errors_total",
			Help:      "Chat failures by kind.",
		}, []string{"kind"}),
	}
}

func (m *Metrics) ObserveChat(action string, d time.Duration) {
	m.ChatOutcomes.WithLabelValues(action).Inc()
	m.ChatDuration.Observe(d.Seconds())
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
