package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "alumni",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "The total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "alumni",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// StorageOperations counts object storage calls by operation and result.
	StorageOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "alumni",
		Subsystem: "storage",
		Name:      "operations_total",
		Help:      "The total number of object storage operations",
	}, []string{"op", "result"})

	// StorageCleanupFailures counts best-effort deletes that failed and left an
	// orphaned object behind.
	StorageCleanupFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "alumni",
		Subsystem: "storage",
		Name:      "cleanup_failures_total",
		Help:      "The total number of failed best-effort object deletions",
	})
)

// Middleware records request counts and latency per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequestsCounter.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
