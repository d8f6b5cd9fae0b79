package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	outcomeOK      = "ok"
	outcomeInvalid = "invalid"
	outcomeFailed  = "backend_error"
)

// metrics owns a registry per server instead of the global default.
type metrics struct {
	registry   *prometheus.Registry
	aiRequests *prometheus.CounterVec
	aiDuration prometheus.Histogram
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		aiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "todoai",
			Name:      "ai_help_requests_total",
			Help:      "AI help requests by outcome.",
		}, []string{"outcome"}),
		aiDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "todoai",
			Name:      "ai_help_duration_seconds",
			Help:      "Time spent waiting on the AI backend.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
	}
	m.registry.MustRegister(
		m.aiRequests,
		m.aiDuration,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *metrics) observeAIHelp(outcome string, elapsed time.Duration) {
	m.aiRequests.WithLabelValues(outcome).Inc()
	if outcome != outcomeInvalid {
		m.aiDuration.Observe(elapsed.Seconds())
	}
}

func (m *metrics) handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
