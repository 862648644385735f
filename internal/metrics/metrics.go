package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	RecogidasCompletadasTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recogidas_completadas_total",
			Help: "Pickup records marked completed by the batch routine",
		},
	)

	LitrosRecogidosTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "litros_recogidos_total",
			Help: "Liters of oil recorded as collected",
		},
	)

	SystemCPUPercent = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "system_cpu_percent",
			Help: "Host CPU usage percent",
		},
	)

	SystemMemPercent = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "system_mem_percent",
			Help: "Host memory usage percent",
		},
	)
)
