package metrics

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// aiRequestsTotal counts AI chat requests by provider and status (SUCCESS/ERROR/NOT_CONFIGURED)
	aiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tjsl_ai_requests_total",
		Help: "Total AI chat requests by provider and status",
	}, []string{"provider", "status"})

	// aiRequestDuration tracks end-to-end provider latency
	aiRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tjsl_ai_request_duration_seconds",
		Help:    "AI provider request duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 10), // 250ms to ~2m
	}, []string{"provider"})

	// lifecycleTransitions counts proposal/program status changes
	lifecycleTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tjsl_lifecycle_transitions_total",
		Help: "Total proposal/program status transitions by entity and target status",
	}, []string{"entity", "to"})

	// reportsCreated counts progress reports by type
	reportsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tjsl_reports_created_total",
		Help: "Total progress reports created by type",
	}, []string{"type"})
)

func ObserveAIRequest(provider, status string, latency time.Duration) {
	if provider == "" {
		provider = "NONE"
	}
	aiRequestsTotal.WithLabelValues(provider, status).Inc()
	if latency > 0 {
		aiRequestDuration.WithLabelValues(provider).Observe(latency.Seconds())
	}
}

func CountTransition(entity, to string) {
	lifecycleTransitions.WithLabelValues(entity, to).Inc()
}

func CountReport(reportType string) {
	reportsCreated.WithLabelValues(reportType).Inc()
}

// Handler menyajikan registry default di /metrics.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
