// Package metrics содержит Prometheus метрики HTTP API трекера.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTP метрики
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tracker_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tracker_http_requests_in_flight",
			Help: "Current number of HTTP requests in flight",
		},
	)
	// RateLimited запросы, отклонённые ограничителем частоты.
	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tracker_http_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)

var registerOnce sync.Once

// InitMetrics регистрирует метрики в реестре по умолчанию. Повторные вызовы ничего не делают.
func InitMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(HTTPRequestsTotal)
		prometheus.MustRegister(HTTPRequestDuration)
		prometheus.MustRegister(HTTPRequestsInFlight)
		prometheus.MustRegister(RateLimited)
	})
}
