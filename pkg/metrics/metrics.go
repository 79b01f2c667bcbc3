package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_api_requests_total",
			Help: "Total number of HTTP requests handled by the API",
		},
		[]string{"method", "path", "status"},
	)

	requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_api_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	salesRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "inventory_api_sales_recorded_total",
			Help: "Total number of sales successfully recorded",
		},
	)
)

func init() {
	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(salesRecorded)
}

// Middleware records request count and latency per route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		// Route pattern, not raw path, to keep label cardinality bounded
		path := c.Route().Path
		requestCounter.WithLabelValues(c.Method(), path, strconv.Itoa(c.Response().StatusCode())).Inc()
		requestLatency.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())

		return err
	}
}

// ObserveSale increments the recorded-sales counter.
func ObserveSale() {
	salesRecorded.Inc()
}
