package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/geo-directory/backend/internal/metrics"
)

// Metrics records request latency by matched route template, so /organizations/:org_id is one series.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
