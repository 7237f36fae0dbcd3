// Package monitoring exposes Prometheus metrics for the HTTP surface and
// the workflow engines.
package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "comanda_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "comanda_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	ordersCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "comanda_orders_created_total",
			Help: "Orders created, by order type",
		},
		[]string{"type"},
	)

	itemTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "comanda_item_transitions_total",
			Help: "Item status transitions, by station and target status",
		},
		[]string{"station", "status"},
	)

	cascadePromotions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "comanda_cascade_promotions_total",
			Help: "Orders promoted to LISTO_PARA_EMPACAR by the item completion cascade",
		},
	)

	cleanupDeleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "comanda_cleanup_deleted_rows_total",
			Help: "Rows removed by the retention cleanup, by relation",
		},
		[]string{"relation"},
	)
)

// Middleware collects request counts and latencies per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
	}
}

// RecordOrderCreated counts a successful order creation.
func RecordOrderCreated(orderType string) {
	ordersCreated.WithLabelValues(orderType).Inc()
}

// RecordItemTransition counts a successful item status write.
func RecordItemTransition(station, status string) {
	itemTransitions.WithLabelValues(station, status).Inc()
}

// RecordCascadePromotion counts one completion-cascade promotion.
func RecordCascadePromotion() {
	cascadePromotions.Inc()
}

// RecordCleanup counts rows removed by a retention purge.
func RecordCleanup(orders, items, payments int64) {
	cleanupDeleted.WithLabelValues("orders").Add(float64(orders))
	cleanupDeleted.WithLabelValues("order_items").Add(float64(items))
	cleanupDeleted.WithLabelValues("payments").Add(float64(payments))
}
