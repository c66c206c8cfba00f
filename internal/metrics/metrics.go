package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portfolio_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	// Business metrics
	ContactSubmissions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portfolio_contact_submissions_total",
			Help: "Total contact submissions accepted",
		},
	)

	ChatRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portfolio_chat_requests_total",
			Help: "Total chat requests forwarded upstream",
		},
	)

	RealtimeSessions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portfolio_realtime_sessions_total",
			Help: "Total realtime voice sessions created",
		},
	)

	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_validation_failures_total",
			Help: "Total payload validation failures",
		},
		[]string{"endpoint"},
	)

	AntiAutomationRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portfolio_antiautomation_rejections_total",
			Help: "Total submissions rejected by anti-automation checks",
		},
	)

	// Rate limit metrics
	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_rate_limit_hits_total",
			Help: "Total rate limit hits",
		},
		[]string{"endpoint"},
	)

	// Upstream metrics
	UpstreamErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_upstream_errors_total",
			Help: "Total AI gateway failures",
		},
		[]string{"kind"},
	)
)
