package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/orders-api/metrics"
)

// Metrics records request counts and latencies per route on m
func Metrics(m *metrics.HTTPMetrics) gin.HandlerFunc {
	if m == nil {
		m = metrics.HTTP()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveRequest(c.Request.Method, routeOf(c), c.Writer.Status(), time.Since(start))
	}
}
