package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP 请求延迟（秒）
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// 业务事件计数
	ProjectEventCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "project_event_count",
			Help: "Total number of project write events",
		},
		[]string{"event"}, // event: created, updated, plan_created, plans_replaced
	)

	// 认证结果计数
	AuthAttemptCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempt_count",
			Help: "Total number of signup/signin attempts",
		},
		[]string{"action", "result"}, // action: signup, signin; result: success, failed
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func IncrementProjectEvent(event string) {
	ProjectEventCount.WithLabelValues(event).Inc()
}

func IncrementAuthAttempt(action, result string) {
	AuthAttemptCount.WithLabelValues(action, result).Inc()
}
