package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersCreated counts orders accepted through any entry path.
	OrdersCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chakula_orders_created_total",
		Help: "Orders created, by order type.",
	}, []string{"order_type"})

	// StatusTransitions counts kitchen board status advances.
	StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chakula_order_status_transitions_total",
		Help: "Order status transitions, by target status.",
	}, []string{"status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chakula_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)

// Timing observes request latency per route. Registered routes are
// labeled by pattern, not raw path, to keep cardinality bounded.
func Timing() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		requestDuration.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Observe(time.Since(start).Seconds())
	}
}
